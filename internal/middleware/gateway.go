package middleware

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
)

// LoginRedirect sends browser navigations without a session to the login
// page, carrying the requested path as callbackUrl.
func LoginRedirect(loginPath string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodGet {
			return c.Next()
		}
		if _, ok := IdentityFrom(c); ok {
			return c.Next()
		}
		return c.Redirect(loginPath+"?callbackUrl="+url.QueryEscape(c.Path()), fiber.StatusTemporaryRedirect)
	}
}
