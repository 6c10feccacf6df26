package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Ananth-NQI/bteam-backend/internal/apperrors"
	"github.com/Ananth-NQI/bteam-backend/internal/auth"
	"github.com/Ananth-NQI/bteam-backend/internal/logger"
	"github.com/Ananth-NQI/bteam-backend/internal/models"
	"github.com/Ananth-NQI/bteam-backend/internal/storage"
)

// TicketInput is what an employee submits; the owner always comes from
// the session.
type TicketInput struct {
	Subject       string `json:"subject"`
	Category      string `json:"category"`
	Description   string `json:"description"`
	AttachmentURL string `json:"attachmentUrl"`
}

type TicketService struct {
	store    storage.Store
	notifier *Notifier
}

func NewTicketService(store storage.Store, notifier *Notifier) *TicketService {
	return &TicketService{store: store, notifier: notifier}
}

// Submit creates an Open ticket owned by caller and notifies the
// category's support list. Notification failures do not fail the submit.
func (s *TicketService) Submit(ctx context.Context, caller auth.Identity, in TicketInput) (*models.Ticket, error) {
	subject := strings.TrimSpace(in.Subject)
	description := strings.TrimSpace(in.Description)
	if subject == "" || description == "" || in.Category == "" {
		return nil, apperrors.Validation("Subject, category and description are required")
	}
	if !models.IsValidCategory(in.Category) {
		return nil, apperrors.Validation("Invalid category")
	}

	owner, err := s.store.GetUser(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.New(apperrors.ErrUnauthorized, "User not found")
		}
		return nil, fmt.Errorf("lookup owner: %w", err)
	}

	ticket := &models.Ticket{
		UserID:        owner.ID,
		Subject:       subject,
		Category:      in.Category,
		Description:   description,
		Status:        models.TicketStatusOpen,
		AttachmentURL: in.AttachmentURL,
	}
	if err := s.store.CreateTicket(ctx, ticket); err != nil {
		return nil, fmt.Errorf("create ticket: %w", err)
	}

	if s.notifier != nil {
		_ = s.notifier.TicketCreated(ctx, ticket, owner)
	}
	return ticket, nil
}

func (s *TicketService) ListMine(ctx context.Context, caller auth.Identity) ([]*models.Ticket, error) {
	return s.store.GetTicketsByUser(ctx, caller.UserID)
}

func (s *TicketService) ListAll(ctx context.Context) ([]*models.TicketDetail, error) {
	return s.store.GetAllTicketDetails(ctx)
}

func (s *TicketService) Get(ctx context.Context, id string) (*models.TicketDetail, error) {
	detail, err := s.store.GetTicketDetail(ctx, id)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.NotFound("Ticket not found")
	}
	return detail, err
}

// SetStatus moves a ticket to any valid status; backwards moves are allowed
// and repeating the current status succeeds.
func (s *TicketService) SetStatus(ctx context.Context, id, status string) (*models.TicketDetail, error) {
	if !models.IsValidTicketStatus(status) {
		return nil, apperrors.Validation("Invalid status")
	}

	if err := s.store.UpdateTicketStatus(ctx, id, status); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("Ticket not found")
		}
		return nil, fmt.Errorf("update ticket status: %w", err)
	}

	detail, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if owner, err := s.store.GetUser(ctx, detail.UserID); err == nil {
			_ = s.notifier.TicketStatusChanged(ctx, detail, owner.Whatsapp)
		} else {
			logger.WarnContext(ctx, "ticket owner lookup failed", "ticket_id", id, "error", err)
		}
	}
	return detail, nil
}
