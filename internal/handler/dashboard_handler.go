package handler

import (
	"go-freight-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetDashboardStats returns overview statistics for the operator's account
func (h *DashboardHandler) GetDashboardStats(c *fiber.Ctx) error {
	account, err := accountID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid account"})
	}

	stats, err := h.service.GetDashboardStats(account)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch dashboard stats"})
	}
	return c.JSON(stats)
}
