package handler

import (
	"errors"

	"go-freight-ws/internal/ledger"
	"go-freight-ws/internal/model"
	"go-freight-ws/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type LoadHandler struct {
	loads    service.LoadService
	payments service.PaymentService
}

func NewLoadHandler(loads service.LoadService, payments service.PaymentService) *LoadHandler {
	return &LoadHandler{loads: loads, payments: payments}
}

func (h *LoadHandler) GetLoads(c *fiber.Ctx) error {
	account, err := accountID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid account"})
	}
	loads, err := h.loads.GetLoads(account)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(loads)
}

func (h *LoadHandler) GetLoad(c *fiber.Ctx) error {
	account, err := accountID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid account"})
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid load ID"})
	}

	load, err := h.loads.GetLoad(account, id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Load not found"})
	}
	return c.JSON(load)
}

// GetKatha returns the load with its transaction timeline and recomputed
// totals: the per-load account book.
func (h *LoadHandler) GetKatha(c *fiber.Ctx) error {
	account, err := accountID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid account"})
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid load ID"})
	}

	katha, err := h.loads.GetKatha(account, id)
	if err != nil {
		if errors.Is(err, service.ErrLoadNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Load not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(katha)
}

func (h *LoadHandler) CreateLoad(c *fiber.Ctx) error {
	account, err := accountID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid account"})
	}

	var load model.Load
	if err := c.BodyParser(&load); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.loads.CreateLoad(&load, account, userName(c)); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(fiber.Map{"message": "Load created", "data": load})
}

func (h *LoadHandler) AssignTruck(c *fiber.Ctx) error {
	account, err := accountID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid account"})
	}
	loadID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid load ID"})
	}

	var body struct {
		TruckID uuid.UUID `json:"truck_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	load, err := h.loads.AssignTruck(account, loadID, body.TruckID, userName(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLoadNotFound), errors.Is(err, service.ErrTruckNotFound):
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
	}
	return c.JSON(fiber.Map{"message": "Truck assigned", "data": load})
}

func (h *LoadHandler) UpdateStatus(c *fiber.Ctx) error {
	account, err := accountID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid account"})
	}
	loadID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid load ID"})
	}

	var body struct {
		Status model.LoadStatus `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	load, err := h.loads.AdvanceStatus(account, loadID, body.Status, userName(c))
	if err != nil {
		if errors.Is(err, service.ErrLoadNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Load not found"})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Status updated", "data": load})
}

func (h *LoadHandler) RecordPayment(c *fiber.Ctx) error {
	account, err := accountID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid account"})
	}
	loadID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid load ID"})
	}

	var req service.RecordPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	receipt, err := h.payments.RecordPayment(account, loadID, &req, userName(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLoadNotFound):
			return c.Status(404).JSON(fiber.Map{"error": "Load not found"})
		case errors.Is(err, ledger.ErrExceedsProviderFreight), errors.Is(err, ledger.ErrExceedsTruckFreight):
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
	}
	return c.Status(201).JSON(fiber.Map{"message": "Payment recorded", "data": receipt})
}

func (h *LoadHandler) GetTimeline(c *fiber.Ctx) error {
	account, err := accountID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid account"})
	}
	loadID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid load ID"})
	}

	entries, err := h.payments.GetTimeline(account, loadID)
	if err != nil {
		if errors.Is(err, service.ErrLoadNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Load not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(entries)
}

func (h *LoadHandler) GetCashLedger(c *fiber.Ctx) error {
	account, err := accountID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid account"})
	}
	entries, err := h.payments.GetCashLedger(account)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(entries)
}
