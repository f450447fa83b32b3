package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"fstrack/internal/config"
	pschedule "fstrack/internal/platform/schedule"
)

func CreateSchedule(c *fiber.Ctx) error {
	db := c.Locals("db").(*gorm.DB)

	scheduleService := pschedule.NewService(db)

	type CreateScheduleInput struct {
		WorkDate   string   `json:"work_date" validate:"required"`
		Pattern    string   `json:"pattern" validate:"required,max=16"`
		Shift      *string  `json:"shift" validate:"omitempty,max=16"`
		LocationID *string  `json:"location_id" validate:"omitempty,max=32"`
		UnitID     *string  `json:"unit_id" validate:"omitempty,max=16"`
		OperatorID *float64 `json:"operator_id"`
		Notes      *string  `json:"notes"`
	}

	var input CreateScheduleInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input"})
	}

	if err := config.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	workDate, err := time.Parse("2006-01-02", input.WorkDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "work_date must be formatted as YYYY-MM-DD"})
	}

	sched, err := scheduleService.Create(pschedule.CreateInput{
		WorkDate:   workDate,
		Pattern:    input.Pattern,
		Shift:      input.Shift,
		LocationID: input.LocationID,
		UnitID:     input.UnitID,
		OperatorID: input.OperatorID,
		Notes:      input.Notes,
	})
	if err != nil {
		return scheduleError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(sched)
}

func ListSchedules(c *fiber.Ctx) error {
	db := c.Locals("db").(*gorm.DB)

	scheduleService := pschedule.NewService(db)

	page, err := scheduleService.List(c.QueryInt("page", 1), c.QueryInt("limit", 10))
	if err != nil {
		return scheduleError(c, err)
	}

	return c.JSON(page)
}

func GetSchedule(c *fiber.Ctx) error {
	db := c.Locals("db").(*gorm.DB)

	id := c.Params("id")
	if uuid.Validate(id) != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid schedule ID"})
	}

	scheduleService := pschedule.NewService(db)

	sched, err := scheduleService.GetByID(id)
	if err != nil {
		return scheduleError(c, err)
	}

	return c.JSON(sched)
}

func AssignOperator(c *fiber.Ctx) error {
	db := c.Locals("db").(*gorm.DB)

	id := c.Params("id")
	if uuid.Validate(id) != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid schedule ID"})
	}

	scheduleService := pschedule.NewService(db)

	type AssignOperatorInput struct {
		OperatorID int `json:"operator_id" validate:"required,min=1"`
	}

	var input AssignOperatorInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input"})
	}

	if err := config.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	sched, err := scheduleService.AssignOperator(id, input.OperatorID)
	if err != nil {
		return scheduleError(c, err)
	}

	return c.JSON(sched)
}

func CancelSchedule(c *fiber.Ctx) error {
	db := c.Locals("db").(*gorm.DB)

	id := c.Params("id")
	if uuid.Validate(id) != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid schedule ID"})
	}

	scheduleService := pschedule.NewService(db)

	sched, err := scheduleService.Cancel(id)
	if err != nil {
		return scheduleError(c, err)
	}

	return c.JSON(sched)
}

func scheduleError(c *fiber.Ctx, err error) error {
	var verr *pschedule.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": verr.Error()})
	}

	var terr *pschedule.InvalidTransitionError
	if errors.As(err, &terr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": terr.Error()})
	}

	if errors.Is(err, pschedule.ErrScheduleNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Schedule not found"})
	}
	if errors.Is(err, pschedule.ErrOperatorNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Operator not found"})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
}
