package service

import (
	"context"

	"github.com/spec-kit/realty-service/internal/auth"
	"github.com/spec-kit/realty-service/internal/domain"
	apperrors "github.com/spec-kit/realty-service/pkg/util/errorutil"
)

// AuthService coordinates registration and login flows.
type AuthService struct {
	accounts *AccountService
	hasher   PasswordHasher
	tokenMgr *auth.TokenManager
}

// NewAuthService builds the service.
func NewAuthService(accounts *AccountService, hasher PasswordHasher, tokens *auth.TokenManager) *AuthService {
	return &AuthService{accounts: accounts, hasher: hasher, tokenMgr: tokens}
}

// Register creates a CLIENT account.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) error {
	return s.accounts.Register(ctx, in)
}

// Login verifies credentials and issues an access token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.UserView, *domain.Token, error) {
	user, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, nil, err
	}
	if !s.hasher.Verify(user.PasswordHash, password) {
		return nil, nil, apperrors.NewUnauthorized("invalid credentials")
	}

	token, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, nil, apperrors.NewInternalError(err)
	}
	view := domain.NewUserView(user)
	return &view, token, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
