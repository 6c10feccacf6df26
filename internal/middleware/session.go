package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Ananth-NQI/bteam-backend/internal/apperrors"
	"github.com/Ananth-NQI/bteam-backend/internal/auth"
	"github.com/Ananth-NQI/bteam-backend/internal/logger"
	"github.com/Ananth-NQI/bteam-backend/internal/models"
)

const identityKey = "identity"

// Session resolves the caller from a Bearer token or the session cookie.
// It never rejects; RequireSession and RequireAdmin do the gating.
func Session(tokens *auth.TokenIssuer, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := bearerToken(c.Get(fiber.HeaderAuthorization))
		if raw == "" {
			raw = c.Cookies(cookieName)
		}
		if raw == "" {
			return c.Next()
		}

		id, err := tokens.Parse(raw)
		if err != nil {
			logger.Debug("session token rejected", "error", err, "path", c.Path())
			return c.Next()
		}

		c.Locals(identityKey, id)
		c.SetUserContext(context.WithValue(c.UserContext(), logger.UserIDKey, id.UserID))
		return c.Next()
	}
}

func bearerToken(header string) string {
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

// IdentityFrom returns the caller resolved by Session
func IdentityFrom(c *fiber.Ctx) (auth.Identity, bool) {
	id, ok := c.Locals(identityKey).(auth.Identity)
	return id, ok
}

func RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := IdentityFrom(c); !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}
		return c.Next()
	}
}

// UserLookup resolves the stored account behind a session
type UserLookup interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
}

// RequireAdmin fails with 401 without a session or when the account no
// longer exists, and 403 unless the stored role is admin. The role in the
// token is replaced with the stored one for the rest of the request.
func RequireAdmin(users UserLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := IdentityFrom(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}

		user, err := users.GetUser(c.UserContext(), id.UserID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				logger.WarnContext(c.UserContext(), "session for missing user", "user_id", id.UserID)
				return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
			}
			logger.ErrorContext(c.UserContext(), "admin check failed", "error", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
		}
		if !user.IsAdmin() {
			return fiber.NewError(fiber.StatusForbidden, "Forbidden")
		}

		id.Role = user.Role
		c.Locals(identityKey, id)
		return c.Next()
	}
}

// RequestContext copies the request id assigned by the requestid
// middleware into the user context for logging.
func RequestContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			c.SetUserContext(context.WithValue(c.UserContext(), logger.RequestIDKey, rid))
		}
		return c.Next()
	}
}
