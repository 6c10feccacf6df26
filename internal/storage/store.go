package storage

import (
	"context"

	"github.com/Ananth-NQI/bteam-backend/internal/models"
)

// Store defines the interface for storage operations.
//
// Lookups of a missing row return apperrors.ErrNotFound, inserts that
// collide with a unique key return apperrors.ErrConflict. Deletes ensure
// absence and succeed for unknown ids.
type Store interface {
	// User operations
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]*models.User, error)
	GetEmployees(ctx context.Context) ([]*models.User, error)
	UpdateUser(ctx context.Context, id string, upd *models.EmployeeUpdate) error
	DeleteUser(ctx context.Context, id string) error

	// Registration operations
	ReplaceVerificationToken(ctx context.Context, token *models.VerificationToken) error
	GetVerificationToken(ctx context.Context, identifier, code string) (*models.VerificationToken, error)
	// RegisterUser inserts the user and consumes the token for its email
	// atomically; a failed insert leaves the token in place.
	RegisterUser(ctx context.Context, user *models.User) error

	// Policy operations
	GetPolicies(ctx context.Context) ([]*models.Policy, error)
	CreatePolicy(ctx context.Context, policy *models.Policy) error
	DeletePolicy(ctx context.Context, id string) error

	// Holiday operations
	GetHolidays(ctx context.Context) ([]*models.Holiday, error)
	CreateHoliday(ctx context.Context, holiday *models.Holiday) error
	DeleteHoliday(ctx context.Context, id string) error

	// Announcement operations
	GetAnnouncements(ctx context.Context) ([]*models.Announcement, error)
	CreateAnnouncement(ctx context.Context, announcement *models.Announcement) error
	DeleteAnnouncement(ctx context.Context, id string) error

	// Ticket operations
	CreateTicket(ctx context.Context, ticket *models.Ticket) error
	GetTicketsByUser(ctx context.Context, userID string) ([]*models.Ticket, error)
	GetAllTicketDetails(ctx context.Context) ([]*models.TicketDetail, error)
	GetTicketDetail(ctx context.Context, id string) (*models.TicketDetail, error)
	UpdateTicketStatus(ctx context.Context, id, status string) error

	Ping(ctx context.Context) error
}

var (
	_ Store = (*DatabaseStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
