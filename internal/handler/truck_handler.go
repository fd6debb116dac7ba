package handler

import (
	"fmt"

	"go-freight-ws/internal/model"
	"go-freight-ws/internal/repository"
	"go-freight-ws/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// TruckHandler serves fleet directory CRUD. Availability itself is never set
// through these endpoints; assignment and settlement own that flag.
type TruckHandler struct {
	trucks repository.TruckRepository
}

func NewTruckHandler(trucks repository.TruckRepository) *TruckHandler {
	return &TruckHandler{trucks: trucks}
}

func (h *TruckHandler) GetTrucks(c *fiber.Ctx) error {
	account, err := accountID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid account"})
	}

	// ?available=true narrows to trucks that can take a new load
	var trucks []model.Truck
	if c.Query("available") == "true" {
		trucks, err = h.trucks.FindAvailable(account)
	} else {
		trucks, err = h.trucks.FindAll(account)
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(trucks)
}

func (h *TruckHandler) CreateTruck(c *fiber.Ctx) error {
	account, err := accountID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid account"})
	}

	var truck model.Truck
	if err := c.BodyParser(&truck); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if errs := validator.ValidateStruct(&truck); len(errs) > 0 {
		firstErr := errs[0]
		return c.Status(400).JSON(fiber.Map{
			"error": fmt.Sprintf("Validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag),
		})
	}

	truck.AccountID = account
	truck.IsActive = true
	truck.CreatedBy = account.String()
	truck.UpdatedBy = account.String()

	if err := h.trucks.Create(&truck); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(fiber.Map{"message": "Truck created", "data": truck})
}

func (h *TruckHandler) UpdateTruck(c *fiber.Ctx) error {
	account, err := accountID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid account"})
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid truck ID"})
	}

	existing, err := h.trucks.FindByID(account, id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Truck not found"})
	}

	var req model.Truck
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(&req); len(errs) > 0 {
		firstErr := errs[0]
		return c.Status(400).JSON(fiber.Map{
			"error": fmt.Sprintf("Validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag),
		})
	}

	existing.TruckNumber = req.TruckNumber
	existing.TruckType = req.TruckType
	existing.DriverName = req.DriverName
	existing.DriverPhone = req.DriverPhone
	existing.OwnerName = req.OwnerName
	existing.OwnerPhone = req.OwnerPhone
	existing.ContactPerson = req.ContactPerson
	existing.ContactPersonPhone = req.ContactPersonPhone
	existing.TruckLength = req.TruckLength
	existing.CarryingCapacity = req.CarryingCapacity
	existing.UpdatedBy = account.String()

	if err := h.trucks.Update(existing); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Truck updated", "data": existing})
}

func (h *TruckHandler) DeleteTruck(c *fiber.Ctx) error {
	account, err := accountID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid account"})
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid truck ID"})
	}

	truck, err := h.trucks.FindByID(account, id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Truck not found"})
	}
	if !truck.IsActive {
		return c.Status(400).JSON(fiber.Map{"error": "Truck is on an active load and cannot be deleted"})
	}

	if err := h.trucks.Delete(account, id); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete truck"})
	}
	return c.JSON(fiber.Map{"message": "Truck deleted"})
}
