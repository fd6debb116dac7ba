package handler

import (
	"errors"

	"go-freight-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

// GetLoadReport returns loads booked in the requested period.
// Query params: period (daily|weekly|monthly, default daily)
func (h *ReportHandler) GetLoadReport(c *fiber.Ctx) error {
	account, err := accountID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid account"})
	}

	period := service.ReportPeriod(c.Query("period", string(service.PeriodDaily)))
	report, err := h.service.GetLoadReport(account, period)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPeriod) {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid period. Use: daily, weekly, or monthly"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch load report"})
	}
	return c.JSON(report)
}

// GetTransactionReport returns payments recorded in the requested period.
func (h *ReportHandler) GetTransactionReport(c *fiber.Ctx) error {
	account, err := accountID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid account"})
	}

	period := service.ReportPeriod(c.Query("period", string(service.PeriodDaily)))
	report, err := h.service.GetTransactionReport(account, period)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPeriod) {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid period. Use: daily, weekly, or monthly"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch transaction report"})
	}
	return c.JSON(report)
}
