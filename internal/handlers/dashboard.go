package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

type feature struct {
	Title string `json:"title"`
	Href  string `json:"href"`
}

var employeeFeatures = []feature{
	{Title: "Employee Policy", Href: "/dashboard/policies"},
	{Title: "Holiday List", Href: "/dashboard/holidays"},
	{Title: "Employee Directory", Href: "/dashboard/directory"},
	{Title: "Support", Href: "/dashboard/support"},
	{Title: "News", Href: "/dashboard/news"},
}

var adminFeatures = []feature{
	{Title: "Manage Employees", Href: "/dashboard/admin/employees"},
	{Title: "Support Tickets", Href: "/dashboard/admin/tickets"},
}

// Dashboard returns the landing data for a signed-in user
func Dashboard(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return err
	}

	features := append([]feature{}, employeeFeatures...)
	if id.IsAdmin() {
		features = append(features, adminFeatures...)
	}

	greeting := "Team"
	if first := strings.Fields(id.Name); len(first) > 0 {
		greeting = first[0]
	}

	return c.JSON(fiber.Map{
		"greeting": greeting,
		"role":     id.Role,
		"features": features,
	})
}
