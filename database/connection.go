package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Ananth-NQI/bteam-backend/internal/config"
	"github.com/Ananth-NQI/bteam-backend/internal/logger"
	"github.com/Ananth-NQI/bteam-backend/internal/models"
)

// For Cloud Run with Cloud SQL
const socketDir = "/cloudsql"

// DSN builds the postgres connection string. DATABASE_URL wins, then the
// Cloud SQL socket, then plain TCP.
func DSN(cfg config.DatabaseConfig) string {
	switch {
	case cfg.URL != "":
		return cfg.URL
	case cfg.InstanceConnectionName != "":
		return fmt.Sprintf("host=%s/%s user=%s password=%s dbname=%s sslmode=disable",
			socketDir, cfg.InstanceConnectionName, cfg.User, cfg.Password, cfg.Name)
	default:
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
			cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port)
	}
}

// Connect opens the database. Errors are translated so unique violations
// surface as gorm.ErrDuplicatedKey.
func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	if cfg.InstanceConnectionName != "" {
		logger.Info("Connecting to Cloud SQL via socket", "instance", cfg.InstanceConnectionName)
	} else {
		logger.Info("Connecting to PostgreSQL", "host", cfg.Host, "database", cfg.Name)
	}

	db, err := gorm.Open(postgres.Open(DSN(cfg)), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logger.Info("✅ Database connected successfully!")
	return db, nil
}

// Migrate creates or updates every table the service uses
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.VerificationToken{},
		&models.Policy{},
		&models.Holiday{},
		&models.Announcement{},
		&models.Ticket{},
	)
}
