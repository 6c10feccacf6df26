package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// clearEnv unsets keys for the test; t.Setenv restores them afterwards
func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t, "PORT", "OTP_TTL", "BCRYPT_COST", "SESSION_COOKIE", "TICKET_RECIPIENTS_IT", "TICKET_RECIPIENTS_HR", "TICKET_RECIPIENTS_OTHER")
	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 10*time.Minute, cfg.Auth.OTPTTL)
	assert.Equal(t, MinBcryptCost, cfg.Auth.BcryptCost)
	assert.Equal(t, "bteam_session", cfg.Auth.SessionCookie)
	assert.Equal(t, []string{"erp@bullows.com", "prwaghulade@bullows.com"}, cfg.Tickets.Recipients["IT"])
	assert.Equal(t, cfg.Tickets.Recipients["HR"], cfg.Tickets.Recipients["Other"])
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("OTP_TTL", "5m")
	t.Setenv("USE_MEMORY_STORE", "true")
	t.Setenv("TICKET_RECIPIENTS_IT", " ops@co.com , , help@co.com")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 5*time.Minute, cfg.Auth.OTPTTL)
	assert.True(t, cfg.Server.UseMemoryStore)
	assert.Equal(t, []string{"ops@co.com", "help@co.com"}, cfg.Tickets.Recipients["IT"])
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("RATE_LIMIT_MAX", "lots")
	t.Setenv("SESSION_TTL", "forever")
	t.Setenv("BCRYPT_COST", "4")

	cfg := Load()

	assert.Equal(t, 5, cfg.Limits.Max)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, MinBcryptCost, cfg.Auth.BcryptCost, "cost below the floor is raised")
}

func TestIsProduction(t *testing.T) {
	cfg := &Config{}
	assert.False(t, cfg.IsProduction())

	cfg.Database.InstanceConnectionName = "proj:region:db"
	assert.True(t, cfg.IsProduction())
}
