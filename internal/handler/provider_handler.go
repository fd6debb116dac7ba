package handler

import (
	"fmt"

	"go-freight-ws/internal/model"
	"go-freight-ws/internal/repository"
	"go-freight-ws/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProviderHandler struct {
	providers repository.ProviderRepository
}

func NewProviderHandler(providers repository.ProviderRepository) *ProviderHandler {
	return &ProviderHandler{providers: providers}
}

func (h *ProviderHandler) GetProviders(c *fiber.Ctx) error {
	account, err := accountID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid account"})
	}
	providers, err := h.providers.FindAll(account)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(providers)
}

func (h *ProviderHandler) CreateProvider(c *fiber.Ctx) error {
	account, err := accountID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid account"})
	}

	var provider model.LoadProvider
	if err := c.BodyParser(&provider); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(&provider); len(errs) > 0 {
		firstErr := errs[0]
		return c.Status(400).JSON(fiber.Map{
			"error": fmt.Sprintf("Validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag),
		})
	}

	provider.AccountID = account
	provider.CreatedBy = account.String()
	provider.UpdatedBy = account.String()

	if err := h.providers.Create(&provider); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(fiber.Map{"message": "Load provider created", "data": provider})
}

func (h *ProviderHandler) UpdateProvider(c *fiber.Ctx) error {
	account, err := accountID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid account"})
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid provider ID"})
	}

	existing, err := h.providers.FindByID(account, id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Load provider not found"})
	}

	var req model.LoadProvider
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(&req); len(errs) > 0 {
		firstErr := errs[0]
		return c.Status(400).JSON(fiber.Map{
			"error": fmt.Sprintf("Validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag),
		})
	}

	existing.CompanyName = req.CompanyName
	existing.ContactPerson = req.ContactPerson
	existing.ContactPhone = req.ContactPhone
	existing.Email = req.Email
	existing.Address = req.Address
	existing.UpdatedBy = account.String()

	if err := h.providers.Update(existing); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Load provider updated", "data": existing})
}

func (h *ProviderHandler) DeleteProvider(c *fiber.Ctx) error {
	account, err := accountID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid account"})
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid provider ID"})
	}

	if _, err := h.providers.FindByID(account, id); err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Load provider not found"})
	}
	if err := h.providers.Delete(account, id); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete load provider"})
	}
	return c.JSON(fiber.Map{"message": "Load provider deleted"})
}
