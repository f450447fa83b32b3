package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"fstrack/internal/config"
	"fstrack/internal/database"
	puser "fstrack/internal/platform/user"
)

func GetCurrentUser(c *fiber.Ctx) error {
	user := c.Locals("user").(database.User)

	return c.JSON(user)
}

func UpdateFirstTime(c *fiber.Ctx) error {
	db := c.Locals("db").(*gorm.DB)
	user := c.Locals("user").(database.User)

	userService := puser.NewService(db)

	type FirstTimeInput struct {
		IsFirstTime *bool `json:"is_first_time" validate:"required"`
	}

	var input FirstTimeInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input"})
	}

	if err := config.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if err := userService.UpdateFirstTime(user.ID, *input.IsFirstTime); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
