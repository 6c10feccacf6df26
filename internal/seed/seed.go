package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Ananth-NQI/bteam-backend/internal/apperrors"
	"github.com/Ananth-NQI/bteam-backend/internal/auth"
	"github.com/Ananth-NQI/bteam-backend/internal/config"
	"github.com/Ananth-NQI/bteam-backend/internal/logger"
	"github.com/Ananth-NQI/bteam-backend/internal/models"
	"github.com/Ananth-NQI/bteam-backend/internal/storage"
	"github.com/Ananth-NQI/bteam-backend/internal/utils"
)

var demoPolicies = []models.Policy{
	{ID: "seed-policy-1", Title: "Employee Handbook", Version: "1.0", FileURL: "#", Description: "General guidelines"},
	{ID: "seed-policy-2", Title: "Leave Policy", Version: "2.1", FileURL: "#", Description: "Rules regarding leaves"},
	{ID: "seed-policy-3", Title: "IT Security Policy", Version: "1.0", FileURL: "#", Description: "Security protocols"},
}

var demoHolidays = []struct {
	id, name, date string
}{
	{"seed-holiday-1", "New Year's Day", "2024-01-01"},
	{"seed-holiday-2", "Independence Day", "2024-07-04"},
	{"seed-holiday-3", "Labor Day", "2024-09-02"},
}

var demoEmployees = []models.User{
	{Name: "Sarah Smith", Designation: "HR Manager", Mobile: "+1 234 567 8901", Email: "sarah@bullows.com", EmployeeCode: "EMP001"},
	{Name: "Mike Johnson", Designation: "Senior Developer", Mobile: "+1 234 567 8902", Email: "mike@bullows.com", EmployeeCode: "EMP002"},
	{Name: "Emily Davis", Designation: "Product Designer", Mobile: "+1 234 567 8903", Email: "emily@bullows.com", EmployeeCode: "EMP003"},
}

// Run creates the bootstrap admin and, when enabled, demo content.
// Rows that already exist are left alone, so it is safe on every start.
func Run(ctx context.Context, store storage.Store, cfg config.SeedConfig, bcryptCost int) error {
	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if err := seedAdmin(ctx, store, cfg, bcryptCost); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
	}

	if !cfg.DemoData {
		return nil
	}
	logger.Info("🌱 Seeding demo data...")

	for _, p := range demoPolicies {
		policy := p
		if err := skipExisting(store.CreatePolicy(ctx, &policy)); err != nil {
			return fmt.Errorf("seed policy %q: %w", p.Title, err)
		}
	}

	for _, h := range demoHolidays {
		date, err := time.Parse(models.DateLayout, h.date)
		if err != nil {
			return err
		}
		holiday := &models.Holiday{ID: h.id, Name: h.name, Date: date, Type: models.HolidayPublic}
		if err := skipExisting(store.CreateHoliday(ctx, holiday)); err != nil {
			return fmt.Errorf("seed holiday %q: %w", h.name, err)
		}
	}

	for _, e := range demoEmployees {
		password, err := utils.GenerateSecurePassword()
		if err != nil {
			return err
		}
		hash, err := auth.HashPassword(password, bcryptCost)
		if err != nil {
			return err
		}
		employee := e
		employee.PasswordHash = hash
		employee.Role = models.RoleEmployee
		if err := skipExisting(store.CreateUser(ctx, &employee)); err != nil {
			return fmt.Errorf("seed employee %q: %w", e.Email, err)
		}
	}

	logger.Info("✅ Demo data seeded")
	return nil
}

func seedAdmin(ctx context.Context, store storage.Store, cfg config.SeedConfig, bcryptCost int) error {
	_, err := store.GetUserByEmail(ctx, cfg.AdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	hash, err := auth.HashPassword(cfg.AdminPassword, bcryptCost)
	if err != nil {
		return err
	}
	admin := &models.User{
		Name:         cfg.AdminName,
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}
	if err := skipExisting(store.CreateUser(ctx, admin)); err != nil {
		return err
	}
	logger.Info("👤 Bootstrap admin created", "email", admin.Email)
	return nil
}

func skipExisting(err error) error {
	if errors.Is(err, apperrors.ErrConflict) {
		return nil
	}
	return err
}
