package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"fstrack/internal/config"
	pauth "fstrack/internal/platform/auth"
)

func Login(c *fiber.Ctx) error {
	cfg := c.Locals("config").(*config.Config)
	db := c.Locals("db").(*gorm.DB)

	authService := pauth.NewService(db, cfg.JWTSecret)

	type LoginInput struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	var input LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input"})
	}

	if err := config.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	account, err := authService.ValidateCredentials(input.Username, input.Password)
	if err != nil {
		var locked *pauth.AccountLockedError
		if errors.As(err, &locked) {
			return c.Status(fiber.StatusLocked).JSON(fiber.Map{
				"message": fmt.Sprintf("Account locked. Try again in %d minutes", locked.RemainingMinutes),
			})
		}
		if errors.Is(err, pauth.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid credentials"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	session, err := authService.IssueSession(account)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	return c.JSON(session)
}
