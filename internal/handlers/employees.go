package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Ananth-NQI/bteam-backend/internal/services"
)

// EmployeeHandler serves the directory, admin employee management and
// the caller's own profile.
type EmployeeHandler struct {
	directory *services.DirectoryService
}

func NewEmployeeHandler(directory *services.DirectoryService) *EmployeeHandler {
	return &EmployeeHandler{directory: directory}
}

func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	employees, err := h.directory.Employees(c.UserContext())
	if err != nil {
		return fail(c, err, "Failed to fetch employees")
	}
	return c.JSON(employees)
}

func (h *EmployeeHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.directory.Users(c.UserContext())
	if err != nil {
		return fail(c, err, "Failed to fetch users")
	}
	return c.JSON(users)
}

func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var in services.EmployeeInput
	if err := c.BodyParser(&in); err != nil {
		return badBody()
	}

	user, err := h.directory.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, err, "Failed to create employee")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"id":      user.ID,
	})
}

func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	var in services.EmployeeInput
	if err := c.BodyParser(&in); err != nil {
		return badBody()
	}

	if _, err := h.directory.Update(c.UserContext(), c.Params("id"), in); err != nil {
		return fail(c, err, "Failed to update employee")
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	if err := h.directory.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err, "Failed to delete employee")
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *EmployeeHandler) GetProfile(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	user, err := h.directory.Get(c.UserContext(), id.UserID)
	if err != nil {
		return fail(c, err, "Failed to fetch profile")
	}
	return c.JSON(user)
}

func (h *EmployeeHandler) UpdateProfile(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	var in services.EmployeeInput
	if err := c.BodyParser(&in); err != nil {
		return badBody()
	}

	user, err := h.directory.UpdateProfile(c.UserContext(), id.UserID, in)
	if err != nil {
		return fail(c, err, "Failed to update profile")
	}
	return c.JSON(user)
}
