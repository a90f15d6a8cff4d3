package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/realty-service/internal/domain"
	"github.com/spec-kit/realty-service/internal/events"
	"github.com/spec-kit/realty-service/internal/persistence"
	"github.com/spec-kit/realty-service/internal/repository"
	apperrors "github.com/spec-kit/realty-service/pkg/util/errorutil"
)

// PasswordHasher is a one-way salted hash with verification.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hashed, plain string) bool
}

// AccountService enforces identity invariants and mediates reads and writes of users.
type AccountService struct {
	users      repository.UserRepository
	properties repository.PropertyRepository
	tx         persistence.TxManager
	hasher     PasswordHasher
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// AccountDependencies bundles collaborators for the account service.
type AccountDependencies struct {
	UserRepo     repository.UserRepository
	PropertyRepo repository.PropertyRepository
	TxManager    persistence.TxManager
	Hasher       PasswordHasher
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
}

// CreateUserInput is the administrative creation payload.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.UserRole
}

// UpdateUserInput is a partial update; nil fields are left unchanged.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
	Role     *domain.UserRole
}

// RegisterInput is the self-service signup payload. It has no role.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// NewAccountService constructs the service.
func NewAccountService(deps AccountDependencies) *AccountService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountService{
		users:      deps.UserRepo,
		properties: deps.PropertyRepo,
		tx:         deps.TxManager,
		hasher:     deps.Hasher,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// ListAll returns every account.
func (s *AccountService) ListAll(ctx context.Context) ([]domain.UserView, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return domain.NewUserViews(users), nil
}

// GetByID returns one account.
func (s *AccountService) GetByID(ctx context.Context, id int64) (*domain.UserView, error) {
	user, err := s.loadUser(ctx, id)
	if err != nil {
		return nil, err
	}
	view := domain.NewUserView(user)
	return &view, nil
}

// Create registers an account with a caller-chosen role.
func (s *AccountService) Create(ctx context.Context, in CreateUserInput) (*domain.UserView, error) {
	if !in.Role.Valid() {
		return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": string(in.Role)})
	}
	user, err := s.createAccount(ctx, in.Name, in.Email, in.Password, in.Role)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventUserCreated, 0, userPayload(user))
	view := domain.NewUserView(user)
	return &view, nil
}

// Register is self-service signup. The role is always CLIENT.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) error {
	user, err := s.createAccount(ctx, in.Name, in.Email, in.Password, domain.UserRoleClient)
	if err != nil {
		return err
	}
	s.publish(ctx, events.EventUserRegistered, user.ID, userPayload(user))
	return nil
}

// Update applies a partial update. Re-submitting the current email is not a conflict.
func (s *AccountService) Update(ctx context.Context, id int64, in UpdateUserInput) (*domain.UserView, error) {
	if in.Role != nil && !in.Role.Valid() {
		return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": string(*in.Role)})
	}

	// Hash before the transaction so bcrypt never runs while holding row locks.
	var newHash string
	if in.Password != nil {
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		newHash = hash
	}

	var (
		user    *domain.User
		changed bool
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		user, err = s.loadUser(ctx, id)
		if err != nil {
			return err
		}

		if in.Name != nil && *in.Name != user.Name {
			user.Name = *in.Name
			changed = true
		}
		if in.Email != nil && *in.Email != user.Email {
			if err := s.ensureEmailFree(ctx, *in.Email, user.ID); err != nil {
				return err
			}
			user.Email = *in.Email
			changed = true
		}
		if in.Password != nil {
			user.PasswordHash = newHash
			changed = true
		}
		if in.Role != nil && *in.Role != user.Role {
			user.Role = *in.Role
			changed = true
		}

		if !changed {
			return nil
		}
		return translateWriteErr(s.users.Update(ctx, user), user.Email)
	})
	if err != nil {
		return nil, err
	}

	if changed {
		s.publish(ctx, events.EventUserUpdated, user.ID, userPayload(user))
	}
	view := domain.NewUserView(user)
	return &view, nil
}

// GetFavorites returns the listings the user has favorited. Zero favorites is an empty slice.
func (s *AccountService) GetFavorites(ctx context.Context, userID int64) ([]domain.PropertyView, error) {
	if _, err := s.loadUser(ctx, userID); err != nil {
		return nil, err
	}
	favorites, err := s.users.ListFavorites(ctx, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return domain.NewPropertyViews(favorites), nil
}

// AddFavorite marks a listing as favorite. Adding an existing favorite is a no-op.
func (s *AccountService) AddFavorite(ctx context.Context, userID, propertyID int64) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.loadUser(ctx, userID); err != nil {
			return err
		}
		if _, err := s.properties.GetByID(ctx, propertyID); err != nil {
			return notFoundOr(err, "property", map[string]any{"id": propertyID})
		}
		return apperrors.MapError(s.users.AddFavorite(ctx, userID, propertyID))
	})
	if err != nil {
		return err
	}
	s.publish(ctx, events.EventFavoriteAdded, userID, events.FavoritePayload{UserID: userID, PropertyID: propertyID})
	return nil
}

// RemoveFavorite unmarks a listing. Removing a missing favorite is a no-op.
func (s *AccountService) RemoveFavorite(ctx context.Context, userID, propertyID int64) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.loadUser(ctx, userID); err != nil {
			return err
		}
		return apperrors.MapError(s.users.RemoveFavorite(ctx, userID, propertyID))
	})
	if err != nil {
		return err
	}
	s.publish(ctx, events.EventFavoriteRemoved, userID, events.FavoritePayload{UserID: userID, PropertyID: propertyID})
	return nil
}

// FindByEmail returns the raw user including its password hash.
// Only for in-process credential checks; never expose the result to callers.
func (s *AccountService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, notFoundOr(err, "user", map[string]any{"email": email})
	}
	return user, nil
}

func (s *AccountService) createAccount(ctx context.Context, name, email, password string, role domain.UserRole) (*domain.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.ensureEmailFree(ctx, email, 0); err != nil {
			return err
		}
		return translateWriteErr(s.users.Create(ctx, user), email)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ensureEmailFree is the fast-path uniqueness check; the store constraint remains authoritative.
func (s *AccountService) ensureEmailFree(ctx context.Context, email string, selfID int64) error {
	existing, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.ID != selfID {
			return apperrors.NewEmailTaken(email)
		}
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		return nil
	default:
		return apperrors.MapError(err)
	}
}

func (s *AccountService) loadUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "user", map[string]any{"id": id})
	}
	return user, nil
}

func (s *AccountService) publish(ctx context.Context, eventType events.EventType, actorID int64, payload any) {
	publish(ctx, s.dispatcher, s.logger, eventType, actorID, payload)
}

func translateWriteErr(err error, email string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrEmailTaken) {
		return apperrors.NewEmailTaken(email)
	}
	return apperrors.MapError(err)
}

func notFoundOr(err error, resource string, details map[string]any) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound(resource, details)
	}
	return apperrors.MapError(err)
}

func userPayload(u *domain.User) events.UserPayload {
	return events.UserPayload{UserID: u.ID, Email: u.Email, Name: u.Name, Role: string(u.Role)}
}
