package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Ananth-NQI/bteam-backend/internal/models"
	"github.com/Ananth-NQI/bteam-backend/internal/storage"
)

// ContentHandler serves policies, holidays and news. Writes are admin-only
// at the route level.
type ContentHandler struct {
	store storage.Store
}

func NewContentHandler(store storage.Store) *ContentHandler {
	return &ContentHandler{store: store}
}

func created(c *fiber.Ctx, id string) error {
	return c.JSON(fiber.Map{
		"success": true,
		"id":      id,
	})
}

func deleted(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true})
}

func requireID(c *fiber.Ctx) (string, error) {
	id := strings.TrimSpace(c.Query("id"))
	if id == "" {
		return "", fiber.NewError(fiber.StatusBadRequest, "ID required")
	}
	return id, nil
}

// Policies

func (h *ContentHandler) ListPolicies(c *fiber.Ctx) error {
	policies, err := h.store.GetPolicies(c.UserContext())
	if err != nil {
		return fail(c, err, "Failed to fetch policies")
	}
	return c.JSON(policies)
}

func (h *ContentHandler) CreatePolicy(c *fiber.Ctx) error {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Version     string `json:"version"`
		FileURL     string `json:"fileUrl"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badBody()
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.FileURL) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Title and file URL are required")
	}

	policy := &models.Policy{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Version:     strings.TrimSpace(req.Version),
		FileURL:     strings.TrimSpace(req.FileURL),
	}
	if err := h.store.CreatePolicy(c.UserContext(), policy); err != nil {
		return fail(c, err, "Failed to create policy")
	}
	return created(c, policy.ID)
}

func (h *ContentHandler) DeletePolicy(c *fiber.Ctx) error {
	id, err := requireID(c)
	if err != nil {
		return err
	}
	if err := h.store.DeletePolicy(c.UserContext(), id); err != nil {
		return fail(c, err, "Failed to delete policy")
	}
	return deleted(c)
}

// Holidays

func (h *ContentHandler) ListHolidays(c *fiber.Ctx) error {
	holidays, err := h.store.GetHolidays(c.UserContext())
	if err != nil {
		return fail(c, err, "Failed to fetch holidays")
	}
	return c.JSON(holidays)
}

func (h *ContentHandler) CreateHoliday(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
		Date string `json:"date"`
		Type string `json:"type"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badBody()
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Date) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Name and date are required")
	}

	date, err := models.ParseDate(req.Date)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid date")
	}
	if req.Type == "" {
		req.Type = models.HolidayPublic
	}
	if !models.IsValidHolidayType(req.Type) {
		return fiber.NewError(fiber.StatusBadRequest, "Type must be 'public' or 'optional'")
	}

	holiday := &models.Holiday{
		Name: strings.TrimSpace(req.Name),
		Date: date,
		Type: req.Type,
	}
	if err := h.store.CreateHoliday(c.UserContext(), holiday); err != nil {
		return fail(c, err, "Failed to create holiday")
	}
	return created(c, holiday.ID)
}

func (h *ContentHandler) DeleteHoliday(c *fiber.Ctx) error {
	id, err := requireID(c)
	if err != nil {
		return err
	}
	if err := h.store.DeleteHoliday(c.UserContext(), id); err != nil {
		return fail(c, err, "Failed to delete holiday")
	}
	return deleted(c)
}

// News

func (h *ContentHandler) ListNews(c *fiber.Ctx) error {
	news, err := h.store.GetAnnouncements(c.UserContext())
	if err != nil {
		return fail(c, err, "Failed to fetch news")
	}
	return c.JSON(news)
}

func (h *ContentHandler) CreateNews(c *fiber.Ctx) error {
	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badBody()
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Title and content are required")
	}

	announcement := &models.Announcement{
		Title:   strings.TrimSpace(req.Title),
		Content: req.Content,
	}
	if err := h.store.CreateAnnouncement(c.UserContext(), announcement); err != nil {
		return fail(c, err, "Failed to create news")
	}
	return created(c, announcement.ID)
}

func (h *ContentHandler) DeleteNews(c *fiber.Ctx) error {
	id, err := requireID(c)
	if err != nil {
		return err
	}
	if err := h.store.DeleteAnnouncement(c.UserContext(), id); err != nil {
		return fail(c, err, "Failed to delete news")
	}
	return deleted(c)
}
