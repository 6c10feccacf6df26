package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Ananth-NQI/bteam-backend/internal/apperrors"
	"github.com/Ananth-NQI/bteam-backend/internal/auth"
	"github.com/Ananth-NQI/bteam-backend/internal/logger"
	"github.com/Ananth-NQI/bteam-backend/internal/mailer"
	"github.com/Ananth-NQI/bteam-backend/internal/models"
	"github.com/Ananth-NQI/bteam-backend/internal/storage"
	"github.com/Ananth-NQI/bteam-backend/internal/utils"
)

// RegistrationRequest is the verify step's payload: the code plus the
// new account's profile.
type RegistrationRequest struct {
	Email        string `json:"email"`
	OTP          string `json:"otp"`
	Name         string `json:"name"`
	Password     string `json:"password"`
	Designation  string `json:"designation"`
	Mobile       string `json:"mobile"`
	EmployeeCode string `json:"employeeCode"`
	DOJ          string `json:"doj"`
}

// RegistrationService runs OTP based self registration
type RegistrationService struct {
	store      storage.Store
	mailer     mailer.Mailer
	ttl        time.Duration
	bcryptCost int
	now        func() time.Time
	newCode    func() (string, error)
}

func NewRegistrationService(store storage.Store, m mailer.Mailer, ttl time.Duration, bcryptCost int) *RegistrationService {
	return &RegistrationService{
		store:      store,
		mailer:     m,
		ttl:        ttl,
		bcryptCost: bcryptCost,
		now:        time.Now,
		newCode:    utils.GenerateSecureOTP,
	}
}

// GenerateOTP issues a fresh code for email, replacing any pending one,
// and emails it.
func (s *RegistrationService) GenerateOTP(ctx context.Context, email string) error {
	email = models.NormalizeEmail(email)
	if email == "" {
		return apperrors.Validation("Email required")
	}

	_, err := s.store.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return apperrors.New(apperrors.ErrAlreadyRegistered, "User already registered")
	case !errors.Is(err, apperrors.ErrNotFound):
		return fmt.Errorf("lookup user: %w", err)
	}

	code, err := s.newCode()
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}

	token := &models.VerificationToken{
		Identifier: email,
		Token:      code,
		Expires:    s.now().Add(s.ttl),
	}
	if err := s.store.ReplaceVerificationToken(ctx, token); err != nil {
		return fmt.Errorf("save verification token: %w", err)
	}

	if err := s.mailer.Send(ctx, mailer.OTPMessage(email, code, s.ttl)); err != nil {
		return fmt.Errorf("send otp email: %w", err)
	}

	logger.InfoContext(ctx, "registration otp issued", "email", email)
	return nil
}

// VerifyOTP checks the code and creates the employee account. The token
// is consumed only once the user row exists.
func (s *RegistrationService) VerifyOTP(ctx context.Context, req RegistrationRequest) (*models.User, error) {
	email := models.NormalizeEmail(req.Email)
	code := strings.TrimSpace(req.OTP)
	if email == "" || code == "" {
		return nil, apperrors.Validation("Missing data")
	}

	token, err := s.store.GetVerificationToken(ctx, email, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.New(apperrors.ErrInvalidOTP, "Invalid OTP")
		}
		return nil, fmt.Errorf("lookup verification token: %w", err)
	}
	if token.IsExpired(s.now()) {
		return nil, apperrors.New(apperrors.ErrOTPExpired, "OTP Expired")
	}

	if strings.TrimSpace(req.Name) == "" || req.Password == "" {
		return nil, apperrors.Validation("Name and password are required")
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	var doj *time.Time
	if req.DOJ != "" {
		d, err := models.ParseDate(req.DOJ)
		if err != nil {
			return nil, apperrors.Validation("Invalid date of joining")
		}
		doj = &d
	}

	hash, err := auth.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		Designation:  req.Designation,
		Mobile:       req.Mobile,
		EmployeeCode: req.EmployeeCode,
		DOJ:          doj,
		Role:         models.RoleEmployee,
	}
	if err := s.store.RegisterUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.New(apperrors.ErrAlreadyRegistered, "User already registered")
		}
		return nil, fmt.Errorf("register user: %w", err)
	}

	logger.InfoContext(ctx, "user registered", "user_id", user.ID, "email", email)
	return user, nil
}
