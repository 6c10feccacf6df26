package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Ananth-NQI/bteam-backend/internal/auth"
	"github.com/Ananth-NQI/bteam-backend/internal/handlers"
	"github.com/Ananth-NQI/bteam-backend/internal/middleware"
	"github.com/Ananth-NQI/bteam-backend/internal/services"
	"github.com/Ananth-NQI/bteam-backend/internal/storage"
)

// Dependencies is everything the route table needs
type Dependencies struct {
	Store         storage.Store
	Tokens        *auth.TokenIssuer
	Auth          *services.AuthService
	Registration  *services.RegistrationService
	Directory     *services.DirectoryService
	Tickets       *services.TicketService
	Health        *handlers.HealthHandler
	SessionCookie string
	SecureCookies bool
	// AuthLimiter throttles login and OTP endpoints; nil disables it
	AuthLimiter   fiber.Handler
}

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, deps Dependencies) {
	authHandler := handlers.NewAuthHandler(deps.Auth, deps.Registration, deps.Directory,
		deps.SessionCookie, deps.Tokens.TTL(), deps.SecureCookies)
	employeeHandler := handlers.NewEmployeeHandler(deps.Directory)
	contentHandler := handlers.NewContentHandler(deps.Store)
	supportHandler := handlers.NewSupportHandler(deps.Tickets)
	adminHandler := handlers.NewAdminHandler(deps.Tickets)

	app.Use(middleware.Session(deps.Tokens, deps.SessionCookie))

	app.Get("/", deps.Health.Info)
	app.Get("/health", deps.Health.Check)

	limit := deps.AuthLimiter
	if limit == nil {
		limit = func(c *fiber.Ctx) error { return c.Next() }
	}

	api := app.Group("/api")

	// ========== PUBLIC ==========
	authGroup := api.Group("/auth")
	authGroup.Post("/login", limit, authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Post("/otp/generate", limit, authHandler.GenerateOTP)
	authGroup.Post("/otp/verify", limit, authHandler.VerifyOTP)

	// ========== SIGNED IN ==========
	session := middleware.RequireSession()
	admin := middleware.RequireAdmin(deps.Store)

	authGroup.Get("/me", session, authHandler.Me)

	api.Get("/profile", session, employeeHandler.GetProfile)
	api.Put("/profile", session, employeeHandler.UpdateProfile)

	api.Get("/policies", session, contentHandler.ListPolicies)
	api.Post("/policies", admin, contentHandler.CreatePolicy)
	api.Delete("/policies", admin, contentHandler.DeletePolicy)

	api.Get("/holidays", session, contentHandler.ListHolidays)
	api.Post("/holidays", admin, contentHandler.CreateHoliday)
	api.Delete("/holidays", admin, contentHandler.DeleteHoliday)

	api.Get("/news", session, contentHandler.ListNews)
	api.Post("/news", admin, contentHandler.CreateNews)
	api.Delete("/news", admin, contentHandler.DeleteNews)

	api.Get("/employees", session, employeeHandler.List)
	api.Post("/employees", admin, employeeHandler.Create)
	api.Put("/employees/:id", admin, employeeHandler.Update)
	api.Delete("/employees/:id", admin, employeeHandler.Delete)

	api.Get("/users", admin, employeeHandler.ListUsers)

	api.Get("/tickets", session, supportHandler.GetUserTickets)
	api.Post("/tickets", session, supportHandler.CreateTicket)

	// ========== ADMIN ROUTES ==========
	adminGroup := api.Group("/admin", admin)
	adminGroup.Get("/tickets", adminHandler.GetTickets)
	adminGroup.Get("/tickets/:id", adminHandler.GetTicket)
	adminGroup.Put("/tickets/:id", adminHandler.UpdateTicketStatus)

	// ========== BROWSER GATEWAY ==========
	dashboard := app.Group("/dashboard", middleware.LoginRedirect("/login"))
	dashboard.Get("/", handlers.Dashboard)
	dashboard.Get("/*", handlers.Dashboard)
}
