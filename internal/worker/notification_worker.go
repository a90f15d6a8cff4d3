package worker

import (
	"github.com/spec-kit/realty-service/internal/service"
)

// StartNotificationWorker subscribes the notification service to every domain event.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}
