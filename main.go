package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"

	"github.com/Ananth-NQI/bteam-backend/database"
	"github.com/Ananth-NQI/bteam-backend/internal/auth"
	"github.com/Ananth-NQI/bteam-backend/internal/config"
	"github.com/Ananth-NQI/bteam-backend/internal/handlers"
	"github.com/Ananth-NQI/bteam-backend/internal/logger"
	"github.com/Ananth-NQI/bteam-backend/internal/mailer"
	"github.com/Ananth-NQI/bteam-backend/internal/middleware"
	"github.com/Ananth-NQI/bteam-backend/internal/routes"
	"github.com/Ananth-NQI/bteam-backend/internal/seed"
	"github.com/Ananth-NQI/bteam-backend/internal/services"
	"github.com/Ananth-NQI/bteam-backend/internal/storage"
)

const version = "1.0.0"

func main() {
	// Load .env file for local development
	if os.Getenv("INSTANCE_CONNECTION_NAME") == "" {
		if err := godotenv.Load(".env"); err != nil {
			if err := godotenv.Load("environments/.env.development"); err != nil {
				logger.Warn("⚠️  No .env file found - checking environment variables")
			}
		}
	}

	cfg := config.Load()
	if cfg.IsProduction() && cfg.Auth.JWTSecret == "dev-only-secret-change-in-prod" {
		logger.Error("JWT_SECRET must be set in production")
		os.Exit(1)
	}

	// Initialize storage
	var store storage.Store
	storageType := "PostgreSQL Database"
	if cfg.Server.UseMemoryStore {
		logger.Warn("⚠️  Using in-memory storage (not for production!)")
		store = storage.NewMemoryStore()
		storageType = "In-Memory (Testing)"
	} else {
		logger.Info("📦 Connecting to PostgreSQL database...")
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logger.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}

		logger.Info("🔄 Running database migrations...")
		if err := database.Migrate(db); err != nil {
			logger.Error("Failed to migrate database", "error", err)
			os.Exit(1)
		}
		logger.Info("✅ Database migrations completed!")

		store = storage.NewDatabaseStore(db)
	}

	if err := seed.Run(context.Background(), store, cfg.Seed, cfg.Auth.BcryptCost); err != nil {
		logger.Error("Failed to seed database", "error", err)
		os.Exit(1)
	}

	// Outbound channels
	var mail mailer.Mailer = mailer.NewLogMailer()
	if cfg.Email.MailerSendKey != "" {
		mail = mailer.NewMailerSend(cfg.Email.MailerSendKey, cfg.Email.FromName, cfg.Email.FromEmail)
		logger.Info("✅ MailerSend configured")
	} else {
		logger.Warn("⚠️  MAILERSEND_API_KEY not set - emails will be logged only")
	}

	var whatsapp services.WhatsAppSender
	twilioService, err := services.NewTwilioService(cfg.Twilio)
	if err != nil {
		logger.Warn("⚠️  Twilio credentials not found - WhatsApp notifications disabled")
	} else {
		whatsapp = twilioService
		logger.Info("✅ Twilio service initialized")
	}

	// Services
	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL)
	notifier := services.NewNotifier(mail, whatsapp, cfg.Tickets.Recipients, cfg.Server.AppURL)

	// Rate limiting, shared through redis when configured
	var limiterStorage fiber.Storage
	if cfg.Limits.RedisURL != "" {
		redisStorage, err := middleware.NewRedisStorage(cfg.Limits.RedisURL, "bteam:limiter:")
		if err != nil {
			logger.Warn("⚠️  Redis unavailable - rate limits are per instance", "error", err)
		} else {
			limiterStorage = redisStorage
			defer redisStorage.Close()
		}
	}

	// Create fiber app
	app := fiber.New(fiber.Config{
		AppName:      "B Team Backend v" + version,
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))
	app.Use(middleware.RequestContext())

	routes.SetupRoutes(app, routes.Dependencies{
		Store:         store,
		Tokens:        tokens,
		Auth:          services.NewAuthService(store, tokens),
		Registration:  services.NewRegistrationService(store, mail, cfg.Auth.OTPTTL, cfg.Auth.BcryptCost),
		Directory:     services.NewDirectoryService(store, cfg.Auth.BcryptCost),
		Tickets:       services.NewTicketService(store, notifier),
		Health:        handlers.NewHealthHandler(store, version, storageType, cfg.Server.Environment, whatsapp != nil),
		SessionCookie: cfg.Auth.SessionCookie,
		SecureCookies: cfg.IsProduction(),
		AuthLimiter:   middleware.RateLimit(cfg.Limits.Max, cfg.Limits.Window, limiterStorage),
	})

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		logger.Info("🛑 Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	logger.Info("🚀 B Team Backend starting",
		"port", cfg.Server.Port,
		"storage", storageType,
		"environment", cfg.Server.Environment,
		"whatsapp", whatsapp != nil,
	)

	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		logger.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
