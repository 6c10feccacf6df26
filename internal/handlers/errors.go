package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Ananth-NQI/bteam-backend/internal/apperrors"
	"github.com/Ananth-NQI/bteam-backend/internal/auth"
	"github.com/Ananth-NQI/bteam-backend/internal/logger"
	"github.com/Ananth-NQI/bteam-backend/internal/middleware"
)

var statusByKind = []struct {
	kind   error
	status int
}{
	{apperrors.ErrUnauthorized, fiber.StatusUnauthorized},
	{apperrors.ErrInvalidCredentials, fiber.StatusUnauthorized},
	{apperrors.ErrForbidden, fiber.StatusForbidden},
	{apperrors.ErrNotFound, fiber.StatusNotFound},
	{apperrors.ErrValidation, fiber.StatusBadRequest},
	{apperrors.ErrConflict, fiber.StatusBadRequest},
	{apperrors.ErrAlreadyRegistered, fiber.StatusBadRequest},
	{apperrors.ErrInvalidOTP, fiber.StatusBadRequest},
	{apperrors.ErrOTPExpired, fiber.StatusBadRequest},
}

// fail converts a service error into a *fiber.Error. Known kinds keep
// their message; anything else is logged and reported as fallback.
func fail(c *fiber.Ctx, err error, fallback string) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe
	}

	for _, m := range statusByKind {
		if errors.Is(err, m.kind) {
			msg := m.kind.Error()
			var appErr *apperrors.Error
			if errors.As(err, &appErr) {
				msg = appErr.Message
			}
			return fiber.NewError(m.status, msg)
		}
	}

	logger.ErrorContext(c.UserContext(), fallback, "error", err, "path", c.Path())
	return fiber.NewError(fiber.StatusInternalServerError, fallback)
}

// ErrorHandler renders every error as {"error": message}
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Internal Server Error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	} else {
		logger.ErrorContext(c.UserContext(), "unhandled error", "error", err, "path", c.Path())
	}

	return c.Status(code).JSON(fiber.Map{
		"error": msg,
	})
}

func caller(c *fiber.Ctx) (auth.Identity, error) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return auth.Identity{}, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	return id, nil
}

func badBody() error {
	return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
}
