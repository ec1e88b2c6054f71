package handlers

import (
	"villabook/internal/app"
	"villabook/pkg/logger"

	statsController "villabook/internal/controllers/stats"

	"github.com/gofiber/fiber/v2"
)

type StatsHandler struct {
	Handler
	stats statsController.StatsControllerInterface
}

func NewStatsHandler(app app.App, router fiber.Router) *StatsHandler {
	log := logger.New("handlers").File("stats_handler")
	return &StatsHandler{
		stats: app.Controllers.Stats,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *StatsHandler) Register() {
	h.router.Post("/events", h.logEvent)
}

func (h *StatsHandler) logEvent(c *fiber.Ctx) error {
	var req statsController.LogEventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.stats.LogEvent(c.UserContext(), &req); err != nil {
		return errorResponse(c, err, "Failed to log event")
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"logged": true,
	})
}
