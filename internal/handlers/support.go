package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Ananth-NQI/bteam-backend/internal/services"
)

// SupportHandler serves an employee's own tickets
type SupportHandler struct {
	tickets *services.TicketService
}

func NewSupportHandler(tickets *services.TicketService) *SupportHandler {
	return &SupportHandler{tickets: tickets}
}

// CreateTicket files a ticket for the caller; any owner in the body is ignored
func (h *SupportHandler) CreateTicket(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return err
	}

	var in services.TicketInput
	if err := c.BodyParser(&in); err != nil {
		return badBody()
	}

	ticket, err := h.tickets.Submit(c.UserContext(), id, in)
	if err != nil {
		return fail(c, err, "Failed to create ticket")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"id":      ticket.ID,
		"ticket":  ticket,
	})
}

func (h *SupportHandler) GetUserTickets(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return err
	}

	tickets, err := h.tickets.ListMine(c.UserContext(), id)
	if err != nil {
		return fail(c, err, "Failed to fetch tickets")
	}
	return c.JSON(tickets)
}
