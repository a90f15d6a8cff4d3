package handlers

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/realty-service/internal/api/dto"
	"github.com/spec-kit/realty-service/internal/auth"
	"github.com/spec-kit/realty-service/internal/domain"
	"github.com/spec-kit/realty-service/internal/service"
	apperrors "github.com/spec-kit/realty-service/pkg/util/errorutil"
)

// Authenticator is the subset of service.AuthService used by handlers.
type Authenticator interface {
	Register(ctx context.Context, in service.RegisterInput) error
	Login(ctx context.Context, email, password string) (*domain.UserView, *domain.Token, error)
}

// Accounts is the subset of service.AccountService used by handlers.
type Accounts interface {
	ListAll(ctx context.Context) ([]domain.UserView, error)
	GetByID(ctx context.Context, id int64) (*domain.UserView, error)
	Create(ctx context.Context, in service.CreateUserInput) (*domain.UserView, error)
	Update(ctx context.Context, id int64, in service.UpdateUserInput) (*domain.UserView, error)
	GetFavorites(ctx context.Context, userID int64) ([]domain.PropertyView, error)
	AddFavorite(ctx context.Context, userID, propertyID int64) error
	RemoveFavorite(ctx context.Context, userID, propertyID int64) error
}

// Listings is the subset of service.ListingService used by handlers.
type Listings interface {
	Create(ctx context.Context, actor *domain.User, in service.PropertyInput) (*domain.PropertyView, error)
	Update(ctx context.Context, actor *domain.User, id int64, in service.PropertyUpdateInput) (*domain.PropertyView, error)
	ToggleStatus(ctx context.Context, actor *domain.User, id int64) (*domain.PropertyView, error)
	Delete(ctx context.Context, actor *domain.User, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.PropertyView, error)
	ListAll(ctx context.Context) ([]domain.PropertyView, error)
	ListByBroker(ctx context.Context, brokerID int64) ([]domain.PropertyView, error)
}

func bind(c *fiber.Ctx, req any) error {
	if err := c.BodyParser(req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if problems := dto.Validate(req); problems != nil {
		return apperrors.NewValidationError("validation failed", problems)
	}
	return nil
}

func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid "+name, map[string]any{name: c.Params(name)})
	}
	return id, nil
}

func currentUser(c *fiber.Ctx) (*domain.User, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	return principal.User, nil
}
