package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Ananth-NQI/bteam-backend/internal/apperrors"
	"github.com/Ananth-NQI/bteam-backend/internal/auth"
	"github.com/Ananth-NQI/bteam-backend/internal/models"
	"github.com/Ananth-NQI/bteam-backend/internal/storage"
)

type AuthService struct {
	store  storage.Store
	tokens *auth.TokenIssuer
}

func NewAuthService(store storage.Store, tokens *auth.TokenIssuer) *AuthService {
	return &AuthService{store: store, tokens: tokens}
}

// Login checks the credentials and returns a signed session token.
// Unknown email and wrong password fail the same way.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	invalid := apperrors.New(apperrors.ErrInvalidCredentials, "Invalid email or password")
	if models.NormalizeEmail(email) == "" || password == "" {
		return "", nil, invalid
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", nil, invalid
		}
		return "", nil, fmt.Errorf("lookup user: %w", err)
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", nil, invalid
	}

	token, err := s.tokens.Issue(IdentityOf(user))
	if err != nil {
		return "", nil, fmt.Errorf("issue session token: %w", err)
	}
	return token, user, nil
}

// IdentityOf is the session identity for a stored user
func IdentityOf(u *models.User) auth.Identity {
	return auth.Identity{
		UserID: u.ID,
		Email:  u.Email,
		Name:   u.Name,
		Role:   u.Role,
	}
}
