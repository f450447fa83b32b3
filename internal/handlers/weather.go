package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	pweather "fstrack/internal/platform/weather"
)

// GetWeather has no authentication: the field app falls back to cached
// weather when offline and must be able to refresh before login.
func GetWeather(c *fiber.Ctx) error {
	weatherService := c.Locals("weather").(*pweather.WeatherService)

	var lat, lon *float64
	if q := c.Query("lat"); q != "" {
		v, err := strconv.ParseFloat(q, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "lat must be a number"})
		}
		lat = &v
	}
	if q := c.Query("lon"); q != "" {
		v, err := strconv.ParseFloat(q, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "lon must be a number"})
		}
		lon = &v
	}

	current, err := weatherService.CurrentWeather(lat, lon)
	if err != nil {
		if errors.Is(err, pweather.ErrServiceUnavailable) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"message": "Weather service unavailable"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	return c.JSON(current)
}
