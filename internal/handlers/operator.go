package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	poperator "fstrack/internal/platform/operator"
)

func ListOperators(c *fiber.Ctx) error {
	db := c.Locals("db").(*gorm.DB)

	operatorService := poperator.NewService(db)

	operators, err := operatorService.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	return c.JSON(operators)
}
