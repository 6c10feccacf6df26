package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Ananth-NQI/bteam-backend/internal/apperrors"
	"github.com/Ananth-NQI/bteam-backend/internal/auth"
	"github.com/Ananth-NQI/bteam-backend/internal/models"
	"github.com/Ananth-NQI/bteam-backend/internal/storage"
	"github.com/Ananth-NQI/bteam-backend/internal/utils"
)

// EmployeeInput is the admin create payload and the body of both updates.
// Dates travel as "2006-01-02" strings.
type EmployeeInput struct {
	Name         *string `json:"name"`
	Email        *string `json:"email"`
	Password     *string `json:"password"`
	Designation  *string `json:"designation"`
	Department   *string `json:"department"`
	Mobile       *string `json:"mobile"`
	Whatsapp     *string `json:"whatsapp"`
	Location     *string `json:"location"`
	EmployeeCode *string `json:"employeeCode"`
	Role         *string `json:"role"`
	DOB          *string `json:"dob"`
	DOJ          *string `json:"doj"`
}

// DirectoryService manages employee accounts
type DirectoryService struct {
	store      storage.Store
	bcryptCost int
}

func NewDirectoryService(store storage.Store, bcryptCost int) *DirectoryService {
	return &DirectoryService{store: store, bcryptCost: bcryptCost}
}

func (s *DirectoryService) Employees(ctx context.Context) ([]*models.User, error) {
	return s.store.GetEmployees(ctx)
}

func (s *DirectoryService) Users(ctx context.Context) ([]models.UserSummary, error) {
	users, err := s.store.GetAllUsers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, models.UserSummary{
			ID:          u.ID,
			Name:        u.Name,
			Email:       u.Email,
			Role:        u.Role,
			Mobile:      u.Mobile,
			Designation: u.Designation,
		})
	}
	return out, nil
}

func (s *DirectoryService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.store.GetUser(ctx, id)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.NotFound("User not found")
	}
	return user, err
}

// Create adds an account on an admin's behalf. Without a password the
// account gets a random one and cannot log in until it is reset.
func (s *DirectoryService) Create(ctx context.Context, in EmployeeInput) (*models.User, error) {
	name, email := deref(in.Name), models.NormalizeEmail(deref(in.Email))
	if strings.TrimSpace(name) == "" || email == "" {
		return nil, apperrors.Validation("Name and email are required")
	}

	role := deref(in.Role)
	if role == "" {
		role = models.RoleEmployee
	}
	if !isValidRole(role) {
		return nil, apperrors.Validation("Invalid role")
	}

	password := deref(in.Password)
	if password == "" {
		generated, err := utils.GenerateSecurePassword()
		if err != nil {
			return nil, fmt.Errorf("generate password: %w", err)
		}
		password = generated
	}
	if err := auth.ValidatePassword(password); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	dob, err := optionalDate(in.DOB, "Invalid date of birth")
	if err != nil {
		return nil, err
	}
	doj, err := optionalDate(in.DOJ, "Invalid date of joining")
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
		Designation:  deref(in.Designation),
		Department:   deref(in.Department),
		Mobile:       deref(in.Mobile),
		Whatsapp:     deref(in.Whatsapp),
		Location:     deref(in.Location),
		EmployeeCode: deref(in.EmployeeCode),
		Role:         role,
		DOB:          dob,
		DOJ:          doj,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.New(apperrors.ErrConflict, "Email already in use")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Update applies an admin's partial edit
func (s *DirectoryService) Update(ctx context.Context, id string, in EmployeeInput) (*models.User, error) {
	upd := &models.EmployeeUpdate{
		Name:         in.Name,
		Designation:  in.Designation,
		Department:   in.Department,
		Mobile:       in.Mobile,
		Whatsapp:     in.Whatsapp,
		Location:     in.Location,
		EmployeeCode: in.EmployeeCode,
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, apperrors.Validation("Name cannot be empty")
	}
	if in.Email != nil {
		if models.NormalizeEmail(*in.Email) == "" {
			return nil, apperrors.Validation("Email cannot be empty")
		}
		upd.Email = in.Email
	}
	if in.Role != nil {
		if !isValidRole(*in.Role) {
			return nil, apperrors.Validation("Invalid role")
		}
		upd.Role = in.Role
	}
	if err := s.applyDates(upd, in); err != nil {
		return nil, err
	}
	return s.update(ctx, id, upd)
}

// UpdateProfile applies a user's edit of their own contact details.
// Identity fields (name, email, role) are not editable here.
func (s *DirectoryService) UpdateProfile(ctx context.Context, id string, in EmployeeInput) (*models.User, error) {
	upd := &models.EmployeeUpdate{
		Mobile:   in.Mobile,
		Whatsapp: in.Whatsapp,
		Location: in.Location,
	}
	if err := s.applyDates(upd, EmployeeInput{DOB: in.DOB}); err != nil {
		return nil, err
	}
	return s.update(ctx, id, upd)
}

func (s *DirectoryService) update(ctx context.Context, id string, upd *models.EmployeeUpdate) (*models.User, error) {
	if err := s.store.UpdateUser(ctx, id, upd); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			return nil, apperrors.NotFound("User not found")
		case errors.Is(err, apperrors.ErrConflict):
			return nil, apperrors.New(apperrors.ErrConflict, "Email already in use")
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return s.store.GetUser(ctx, id)
}

func (s *DirectoryService) applyDates(upd *models.EmployeeUpdate, in EmployeeInput) error {
	dob, err := optionalDate(in.DOB, "Invalid date of birth")
	if err != nil {
		return err
	}
	doj, err := optionalDate(in.DOJ, "Invalid date of joining")
	if err != nil {
		return err
	}
	upd.DOB, upd.DOJ = dob, doj
	return nil
}

// Delete ensures the user is gone; their tickets go with them
func (s *DirectoryService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.Validation("ID required")
	}
	return s.store.DeleteUser(ctx, id)
}

func isValidRole(role string) bool {
	return role == models.RoleAdmin || role == models.RoleEmployee
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optionalDate(value *string, msg string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	d, err := models.ParseDate(*value)
	if err != nil {
		return nil, apperrors.Validation(msg)
	}
	return &d, nil
}
