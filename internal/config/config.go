package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime settings, read from the environment
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Email    EmailConfig
	Twilio   TwilioConfig
	Limits   RateLimitConfig
	Tickets  TicketRoutingConfig
	Seed     SeedConfig
}

type ServerConfig struct {
	Port           string
	Environment    string
	AppURL         string
	UseMemoryStore bool
}

type DatabaseConfig struct {
	URL                    string
	User                   string
	Password               string
	Name                   string
	Host                   string
	Port                   int
	InstanceConnectionName string
}

type AuthConfig struct {
	JWTSecret     string
	SessionTTL    time.Duration
	SessionCookie string
	OTPTTL        time.Duration
	BcryptCost    int
}

type EmailConfig struct {
	MailerSendKey string
	FromName      string
	FromEmail     string
}

type TwilioConfig struct {
	AccountSID   string
	AuthToken    string
	WhatsAppFrom string
}

type RateLimitConfig struct {
	RedisURL string
	Max      int
	Window   time.Duration
}

// TicketRoutingConfig maps ticket categories to notification recipients.
// Categories without an entry fall back to "Other".
type TicketRoutingConfig struct {
	Recipients map[string][]string
}

type SeedConfig struct {
	AdminEmail    string
	AdminPassword string
	AdminName     string
	DemoData      bool
}

// Minimum bcrypt work factor accepted for password hashes.
const MinBcryptCost = 10

var hrAdminList = []string{"smbhuwad@bullows.com", "pbdhamal@bullows.com", "rnnile@bullows.com", "prwaghulade@bullows.com"}

// DefaultRecipients is the built-in category routing table.
func DefaultRecipients() map[string][]string {
	return map[string][]string{
		"HR":      hrAdminList,
		"Admin":   hrAdminList,
		"Other":   hrAdminList,
		"IT":      {"erp@bullows.com", "prwaghulade@bullows.com"},
		"Payroll": {"rnnile@bullows.com", "prwaghulade@bullows.com"},
	}
}

// Load builds the config from environment variables, falling back to
// development defaults.
func Load() *Config {
	bcryptCost := getInt("BCRYPT_COST", MinBcryptCost)
	if bcryptCost < MinBcryptCost {
		bcryptCost = MinBcryptCost
	}

	return &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			Environment:    getEnv("ENVIRONMENT", "development"),
			AppURL:         getEnv("APP_URL", "https://b-team-app.vercel.app"),
			UseMemoryStore: getBool("USE_MEMORY_STORE", false),
		},
		Database: DatabaseConfig{
			URL:                    getEnv("DATABASE_URL", ""),
			User:                   getEnv("DB_USER", "postgres"),
			Password:               getEnv("DB_PASS", ""),
			Name:                   getEnv("DB_NAME", "b_team_db"),
			Host:                   getEnv("DB_HOST", "localhost"),
			Port:                   getInt("DB_PORT", 5432),
			InstanceConnectionName: getEnv("INSTANCE_CONNECTION_NAME", ""),
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET", "dev-only-secret-change-in-prod"),
			SessionTTL:    getDuration("SESSION_TTL", 24*time.Hour),
			SessionCookie: getEnv("SESSION_COOKIE", "bteam_session"),
			OTPTTL:        getDuration("OTP_TTL", 10*time.Minute),
			BcryptCost:    bcryptCost,
		},
		Email: EmailConfig{
			MailerSendKey: getEnv("MAILERSEND_API_KEY", ""),
			FromName:      getEnv("MAIL_FROM_NAME", "B Team"),
			FromEmail:     getEnv("MAIL_FROM_EMAIL", "noreply@bullows.com"),
		},
		Twilio: TwilioConfig{
			AccountSID:   getEnv("TWILIO_ACCOUNT_SID", ""),
			AuthToken:    getEnv("TWILIO_AUTH_TOKEN", ""),
			WhatsAppFrom: getEnv("TWILIO_WHATSAPP_FROM", ""),
		},
		Limits: RateLimitConfig{
			RedisURL: getEnv("REDIS_URL", ""),
			Max:      getInt("RATE_LIMIT_MAX", 5),
			Window:   getDuration("RATE_LIMIT_WINDOW", time.Minute),
		},
		Tickets: TicketRoutingConfig{
			Recipients: loadRecipients(),
		},
		Seed: SeedConfig{
			AdminEmail:    getEnv("ADMIN_EMAIL", ""),
			AdminPassword: getEnv("ADMIN_PASSWORD", ""),
			AdminName:     getEnv("ADMIN_NAME", "Admin User"),
			DemoData:      getBool("SEED_DEMO_DATA", false),
		},
	}
}

// IsProduction reports whether the service runs on Cloud Run / Cloud SQL
func (c *Config) IsProduction() bool {
	return c.Database.InstanceConnectionName != "" || c.Server.Environment == "production"
}

func loadRecipients() map[string][]string {
	recipients := DefaultRecipients()
	for category, key := range map[string]string{
		"IT":      "TICKET_RECIPIENTS_IT",
		"HR":      "TICKET_RECIPIENTS_HR",
		"Admin":   "TICKET_RECIPIENTS_ADMIN",
		"Payroll": "TICKET_RECIPIENTS_PAYROLL",
		"Other":   "TICKET_RECIPIENTS_OTHER",
	} {
		if list := getList(key); len(list) > 0 {
			recipients[category] = list
		}
	}
	return recipients
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getList(key string) []string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
