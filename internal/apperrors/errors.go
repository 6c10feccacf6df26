package apperrors

import "errors"

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")

	// registration
	ErrAlreadyRegistered = errors.New("user already registered")
	ErrInvalidOTP        = errors.New("invalid otp")
	ErrOTPExpired        = errors.New("otp expired")

	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Error carries a client-facing message for one of the sentinel kinds above.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func New(kind error, message string) error {
	return &Error{Kind: kind, Message: message}
}

func Validation(message string) error {
	return New(ErrValidation, message)
}

func NotFound(message string) error {
	return New(ErrNotFound, message)
}
