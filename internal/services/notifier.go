package services

import (
	"context"
	"fmt"

	"github.com/Ananth-NQI/bteam-backend/internal/logger"
	"github.com/Ananth-NQI/bteam-backend/internal/mailer"
	"github.com/Ananth-NQI/bteam-backend/internal/models"
)

// Notifier fans ticket events out to the support team and the ticket owner.
// Every method is best effort: failures are logged and returned, never
// retried.
type Notifier struct {
	mailer     mailer.Mailer
	whatsapp   WhatsAppSender
	recipients map[string][]string
	appURL     string
}

// NewNotifier builds a notifier. whatsapp may be nil when Twilio is not
// configured.
func NewNotifier(m mailer.Mailer, whatsapp WhatsAppSender, recipients map[string][]string, appURL string) *Notifier {
	return &Notifier{
		mailer:     m,
		whatsapp:   whatsapp,
		recipients: recipients,
		appURL:     appURL,
	}
}

// RecipientsFor returns the support list for a ticket category. Unknown
// categories go to the "Other" list.
func (n *Notifier) RecipientsFor(category string) []string {
	if list, ok := n.recipients[category]; ok && len(list) > 0 {
		return list
	}
	return n.recipients[models.CategoryOther]
}

func (n *Notifier) TicketCreated(ctx context.Context, ticket *models.Ticket, owner *models.User) error {
	recipients := n.RecipientsFor(ticket.Category)
	if len(recipients) == 0 {
		return fmt.Errorf("no recipients configured for category %q", ticket.Category)
	}

	msg := mailer.TicketMessage(recipients, mailer.TicketEmail{
		TicketID:      ticket.ID,
		Subject:       ticket.Subject,
		Category:      ticket.Category,
		Description:   ticket.Description,
		EmployeeName:  owner.Name,
		EmployeeEmail: owner.Email,
	}, n.appURL)

	if err := n.mailer.Send(ctx, msg); err != nil {
		logger.ErrorContext(ctx, "ticket notification failed", "ticket_id", ticket.ID, "error", err)
		return err
	}
	logger.InfoContext(ctx, "ticket notification sent", "ticket_id", ticket.ID, "category", ticket.Category, "recipients", len(recipients))
	return nil
}

// TicketStatusChanged pings the owner on WhatsApp, if both a sender and a
// number are available.
func (n *Notifier) TicketStatusChanged(ctx context.Context, ticket *models.TicketDetail, whatsappNumber string) error {
	if n.whatsapp == nil || whatsappNumber == "" {
		return nil
	}

	body := fmt.Sprintf("B Team Support: your ticket \"%s\" is now %s.", ticket.Subject, ticket.Status)
	if err := n.whatsapp.SendWhatsAppMessage(whatsappNumber, body); err != nil {
		logger.WarnContext(ctx, "ticket status ping failed", "ticket_id", ticket.ID, "error", err)
		return err
	}
	return nil
}
