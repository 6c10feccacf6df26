package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ananth-NQI/bteam-backend/internal/auth"
	"github.com/Ananth-NQI/bteam-backend/internal/config"
	"github.com/Ananth-NQI/bteam-backend/internal/models"
	"github.com/Ananth-NQI/bteam-backend/internal/storage"
)

func TestRun_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	cfg := config.SeedConfig{
		AdminEmail:    "Admin@Bullows.com",
		AdminPassword: "admin123",
		AdminName:     "Admin User",
		DemoData:      true,
	}

	require.NoError(t, Run(ctx, store, cfg, config.MinBcryptCost))
	require.NoError(t, Run(ctx, store, cfg, config.MinBcryptCost))

	admin, err := store.GetUserByEmail(ctx, "admin@bullows.com")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin())
	assert.True(t, auth.CheckPassword(admin.PasswordHash, "admin123"))

	policies, err := store.GetPolicies(ctx)
	require.NoError(t, err)
	assert.Len(t, policies, len(demoPolicies))

	holidays, err := store.GetHolidays(ctx)
	require.NoError(t, err)
	require.Len(t, holidays, len(demoHolidays))
	assert.Equal(t, "New Year's Day", holidays[0].Name)

	employees, err := store.GetEmployees(ctx)
	require.NoError(t, err)
	assert.Len(t, employees, len(demoEmployees))
	for _, e := range employees {
		assert.Equal(t, models.RoleEmployee, e.Role)
	}
}

func TestRun_NothingConfigured(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()

	require.NoError(t, Run(ctx, store, config.SeedConfig{}, config.MinBcryptCost))

	users, err := store.GetAllUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}
