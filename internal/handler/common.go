package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// accountID extracts the operator's account id set by the auth middleware.
// Engine calls always take it as an explicit argument; nothing downstream
// reads session state.
func accountID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := c.Locals("account_id").(string)
	return uuid.Parse(raw)
}

func userName(c *fiber.Ctx) string {
	name, _ := c.Locals("user_name").(string)
	if name == "" {
		return "Unknown"
	}
	return name
}
