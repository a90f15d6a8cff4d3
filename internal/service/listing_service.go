package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/realty-service/internal/domain"
	"github.com/spec-kit/realty-service/internal/events"
	"github.com/spec-kit/realty-service/internal/persistence"
	"github.com/spec-kit/realty-service/internal/repository"
	apperrors "github.com/spec-kit/realty-service/pkg/util/errorutil"
)

// ListingService owns property listings and their broker relationship.
type ListingService struct {
	properties repository.PropertyRepository
	tx         persistence.TxManager
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// ListingDependencies bundles collaborators for the listing service.
type ListingDependencies struct {
	PropertyRepo repository.PropertyRepository
	TxManager    persistence.TxManager
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
}

// PropertyInput describes a new listing.
type PropertyInput struct {
	Name        string
	Description string
	Type        domain.PropertyType
	Value       float64
	Area        int
	Bedrooms    int
	Address     string
	City        string
	State       string
}

// PropertyUpdateInput is a partial update; nil fields are left unchanged. The broker cannot change.
type PropertyUpdateInput struct {
	Name        *string
	Description *string
	Type        *domain.PropertyType
	Value       *float64
	Area        *int
	Bedrooms    *int
	Address     *string
	City        *string
	State       *string
}

// NewListingService constructs the service.
func NewListingService(deps ListingDependencies) *ListingService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ListingService{
		properties: deps.PropertyRepo,
		tx:         deps.TxManager,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// Create adds a listing owned by actor, who must be a broker or an admin.
func (s *ListingService) Create(ctx context.Context, actor *domain.User, in PropertyInput) (*domain.PropertyView, error) {
	if actor == nil || !actor.Role.CanOwnListings() {
		return nil, apperrors.NewForbidden("only brokers may create listings")
	}

	property := &domain.Property{
		Name:        in.Name,
		Description: in.Description,
		Type:        in.Type,
		Active:      true,
		Value:       in.Value,
		Area:        in.Area,
		Bedrooms:    in.Bedrooms,
		Address:     in.Address,
		City:        in.City,
		State:       in.State,
		Broker:      domain.BrokerRef{ID: actor.ID, Name: actor.Name},
	}
	if problems := property.Validate(); problems != nil {
		return nil, apperrors.NewValidationError("invalid listing", problems)
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		return apperrors.MapError(s.properties.Create(ctx, property))
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventPropertyCreated, actor.ID, propertyPayload(property))
	view := domain.NewPropertyView(property)
	return &view, nil
}

// Update applies a partial update. Only the owning broker or an admin may edit.
func (s *ListingService) Update(ctx context.Context, actor *domain.User, id int64, in PropertyUpdateInput) (*domain.PropertyView, error) {
	var property *domain.Property
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		property, err = s.loadEditable(ctx, actor, id)
		if err != nil {
			return err
		}

		applyString(&property.Name, in.Name)
		applyString(&property.Description, in.Description)
		applyString(&property.Address, in.Address)
		applyString(&property.City, in.City)
		applyString(&property.State, in.State)
		if in.Type != nil {
			property.Type = *in.Type
		}
		if in.Value != nil {
			property.Value = *in.Value
		}
		if in.Area != nil {
			property.Area = *in.Area
		}
		if in.Bedrooms != nil {
			property.Bedrooms = *in.Bedrooms
		}
		if problems := property.Validate(); problems != nil {
			return apperrors.NewValidationError("invalid listing", problems)
		}
		return notFoundOr(s.properties.Update(ctx, property), "property", map[string]any{"id": id})
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventPropertyUpdated, actor.ID, propertyPayload(property))
	view := domain.NewPropertyView(property)
	return &view, nil
}

// ToggleStatus flips the listing's active flag.
func (s *ListingService) ToggleStatus(ctx context.Context, actor *domain.User, id int64) (*domain.PropertyView, error) {
	var property *domain.Property
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		property, err = s.loadEditable(ctx, actor, id)
		if err != nil {
			return err
		}
		property.Active = !property.Active
		return notFoundOr(s.properties.Update(ctx, property), "property", map[string]any{"id": id})
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventPropertyStatusChanged, actor.ID, propertyPayload(property))
	view := domain.NewPropertyView(property)
	return &view, nil
}

// Delete removes a listing.
func (s *ListingService) Delete(ctx context.Context, actor *domain.User, id int64) error {
	var property *domain.Property
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		property, err = s.loadEditable(ctx, actor, id)
		if err != nil {
			return err
		}
		return notFoundOr(s.properties.Delete(ctx, id), "property", map[string]any{"id": id})
	})
	if err != nil {
		return err
	}

	s.publish(ctx, events.EventPropertyDeleted, actor.ID, propertyPayload(property))
	return nil
}

// GetByID returns one listing.
func (s *ListingService) GetByID(ctx context.Context, id int64) (*domain.PropertyView, error) {
	property, err := s.properties.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "property", map[string]any{"id": id})
	}
	view := domain.NewPropertyView(property)
	return &view, nil
}

// ListAll returns every listing.
func (s *ListingService) ListAll(ctx context.Context) ([]domain.PropertyView, error) {
	properties, err := s.properties.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return domain.NewPropertyViews(properties), nil
}

// ListByBroker returns the listings owned by brokerID.
func (s *ListingService) ListByBroker(ctx context.Context, brokerID int64) ([]domain.PropertyView, error) {
	properties, err := s.properties.ListByBroker(ctx, brokerID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return domain.NewPropertyViews(properties), nil
}

func (s *ListingService) loadEditable(ctx context.Context, actor *domain.User, id int64) (*domain.Property, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	property, err := s.properties.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "property", map[string]any{"id": id})
	}
	if actor.Role != domain.UserRoleAdmin && !property.OwnedBy(actor) {
		return nil, apperrors.NewForbidden("listing belongs to another broker")
	}
	return property, nil
}

func (s *ListingService) publish(ctx context.Context, eventType events.EventType, actorID int64, payload any) {
	publish(ctx, s.dispatcher, s.logger, eventType, actorID, payload)
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func propertyPayload(p *domain.Property) events.PropertyPayload {
	return events.PropertyPayload{PropertyID: p.ID, BrokerID: p.Broker.ID, Name: p.Name, Active: p.Active}
}
