package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Ananth-NQI/bteam-backend/internal/services"
)

// AuthHandler handles login, logout and OTP registration
type AuthHandler struct {
	auth          *services.AuthService
	registration  *services.RegistrationService
	directory     *services.DirectoryService
	cookieName    string
	sessionTTL    time.Duration
	secureCookies bool
}

func NewAuthHandler(
	authService *services.AuthService,
	registration *services.RegistrationService,
	directory *services.DirectoryService,
	cookieName string,
	sessionTTL time.Duration,
	secureCookies bool,
) *AuthHandler {
	return &AuthHandler{
		auth:          authService,
		registration:  registration,
		directory:     directory,
		cookieName:    cookieName,
		sessionTTL:    sessionTTL,
		secureCookies: secureCookies,
	}
}

// Login checks credentials and sets the session cookie
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badBody()
	}

	token, user, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return fail(c, err, "Login failed")
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.sessionTTL),
		HTTPOnly: true,
		Secure:   h.secureCookies,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
		"user":    user,
	})
}

// Logout clears the session cookie. Tokens are stateless, so a copied
// bearer token stays valid until it expires.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.ClearCookie(h.cookieName)
	return c.JSON(fiber.Map{"success": true})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	user, err := h.directory.Get(c.UserContext(), id.UserID)
	if err != nil {
		return fail(c, err, "Failed to fetch user")
	}
	return c.JSON(user)
}

// GenerateOTP starts registration for an email
func (h *AuthHandler) GenerateOTP(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badBody()
	}

	if err := h.registration.GenerateOTP(c.UserContext(), req.Email); err != nil {
		return fail(c, err, "Failed to generate OTP")
	}
	return c.JSON(fiber.Map{"success": true})
}

// VerifyOTP completes registration
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req services.RegistrationRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody()
	}

	if _, err := h.registration.VerifyOTP(c.UserContext(), req); err != nil {
		return fail(c, err, "Verification Failed")
	}
	return c.JSON(fiber.Map{"success": true})
}
