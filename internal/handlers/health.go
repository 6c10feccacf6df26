package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Ananth-NQI/bteam-backend/internal/storage"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	store       storage.Store
	Version     string
	StorageType string
	Environment string
	WhatsApp    bool
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(store storage.Store, version, storageType, environment string, whatsapp bool) *HealthHandler {
	return &HealthHandler{
		store:       store,
		Version:     version,
		StorageType: storageType,
		Environment: environment,
		WhatsApp:    whatsapp,
	}
}

// Info describes the running service
func (h *HealthHandler) Info(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"service":     "B Team Backend API",
		"version":     h.Version,
		"environment": h.Environment,
		"storage":     h.StorageType,
		"whatsapp": fiber.Map{
			"configured": h.WhatsApp,
		},
	})
}

// Check returns 503 when the store does not answer a ping
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status, code := "healthy", fiber.StatusOK
	if err := h.store.Ping(ctx); err != nil {
		status, code = "unhealthy", fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(fiber.Map{
		"status":  status,
		"version": h.Version,
		"services": fiber.Map{
			"database": code == fiber.StatusOK,
			"whatsapp": h.WhatsApp,
		},
	})
}
