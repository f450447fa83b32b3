package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"fstrack/internal/config"
	"fstrack/internal/database"
	"fstrack/internal/handlers"
	"fstrack/internal/middleware"
	"fstrack/internal/platform/throttle"
	pweather "fstrack/internal/platform/weather"
)

const (
	loginThrottleLimit  = 5
	loginThrottleWindow = 15 * time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}

	weatherService := pweather.NewService(cfg.WeatherAPIKey, cfg.WeatherLatitude, cfg.WeatherLongitude)
	loginThrottle := throttle.New(loginThrottleLimit, loginThrottleWindow)

	app := fiber.New()

	app.Use(compress.New())
	app.Use(helmet.New())
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(healthcheck.New())

	app.Use(func(c *fiber.Ctx) error {
		c.Locals("config", cfg)
		c.Locals("db", db)
		c.Locals("weather", weatherService)
		return c.Next()
	})

	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/login", middleware.LoginThrottle(loginThrottle, middleware.LoginThrottleKey), handlers.Login)

	api.Get("/weather", handlers.GetWeather)

	user := api.Group("/user", middleware.AuthMiddleware)
	user.Get("/me", handlers.GetCurrentUser)
	user.Patch("/me/first-time", handlers.UpdateFirstTime)

	operators := api.Group("/operators", middleware.AuthMiddleware)
	operators.Get("/", handlers.ListOperators)

	schedules := api.Group("/schedules", middleware.AuthMiddleware)
	schedules.Post("/", middleware.RequireRole(database.RoleKasiePG), handlers.CreateSchedule)
	schedules.Get("/", handlers.ListSchedules)
	schedules.Get("/:id", handlers.GetSchedule)
	schedules.Patch("/:id/operator", middleware.RequireRole(database.RoleKasiePG), handlers.AssignOperator)
	schedules.Patch("/:id/cancel", middleware.RequireRole(database.RoleKasiePG), handlers.CancelSchedule)

	app.Use(func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNotFound)
	})

	log.Fatal(app.Listen(fmt.Sprintf(":%d", cfg.ServerPort)))
}
