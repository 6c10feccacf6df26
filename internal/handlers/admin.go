package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Ananth-NQI/bteam-backend/internal/logger"
	"github.com/Ananth-NQI/bteam-backend/internal/services"
)

// AdminHandler handles the admin ticket desk
type AdminHandler struct {
	tickets *services.TicketService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(tickets *services.TicketService) *AdminHandler {
	return &AdminHandler{tickets: tickets}
}

// GetTickets lists every ticket with its owner's details, newest first
func (h *AdminHandler) GetTickets(c *fiber.Ctx) error {
	tickets, err := h.tickets.ListAll(c.UserContext())
	if err != nil {
		return fail(c, err, "Failed to fetch tickets")
	}
	return c.JSON(tickets)
}

func (h *AdminHandler) GetTicket(c *fiber.Ctx) error {
	ticket, err := h.tickets.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err, "Failed to fetch ticket")
	}
	return c.JSON(ticket)
}

// UpdateTicketStatus moves a ticket to Open, In Progress or Closed
func (h *AdminHandler) UpdateTicketStatus(c *fiber.Ctx) error {
	ticketID := c.Params("id")

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badBody()
	}

	ticket, err := h.tickets.SetStatus(c.UserContext(), ticketID, req.Status)
	if err != nil {
		return fail(c, err, "Failed to update ticket")
	}

	logger.InfoContext(c.UserContext(), "ticket status updated", "ticket_id", ticketID, "status", ticket.Status)
	return c.JSON(fiber.Map{
		"success": true,
		"ticket":  ticket,
	})
}
