package handlers

import (
	"villabook/internal/app"
	"villabook/internal/handlers/middleware"
	"villabook/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	middleware middleware.Middleware
	log        logger.Logger
	router     fiber.Router
}

func Router(router fiber.Router, app *app.App) error {
	router.Use(app.Middleware.TraceID())

	api := router.Group("/api")
	HealthHandler(api, app.Config)

	NewCalendarHandler(*app, api).Register()
	NewBookingHandler(*app, api).Register()
	NewWorkorderHandler(*app, api).Register()
	NewStatsHandler(*app, api).Register()

	admin := api.Group("/admin", app.Middleware.RequireAdmin())
	NewAdminHandler(*app, admin).Register()

	return nil
}
