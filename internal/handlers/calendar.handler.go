package handlers

import (
	"time"
	"villabook/internal/app"
	"villabook/pkg/logger"

	availabilityController "villabook/internal/controllers/availability"

	"github.com/gofiber/fiber/v2"
)

type CalendarHandler struct {
	Handler
	availability availabilityController.AvailabilityControllerInterface
}

func NewCalendarHandler(app app.App, router fiber.Router) *CalendarHandler {
	log := logger.New("handlers").File("calendar_handler")
	return &CalendarHandler{
		availability: app.Controllers.Availability,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *CalendarHandler) Register() {
	calendar := h.router.Group("/calendar")
	calendar.Get("/:year/:month", h.getMonth)
	calendar.Get("/range-price", h.calculateRangePrice)
}

func (h *CalendarHandler) getMonth(c *fiber.Ctx) error {
	year, err := c.ParamsInt("year")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid year",
		})
	}

	month, err := c.ParamsInt("month")
	if err != nil || month < 1 || month > 12 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid month",
		})
	}

	days, err := h.availability.GetMonth(c.UserContext(), year, time.Month(month))
	if err != nil {
		return errorResponse(c, err, "Failed to load calendar month")
	}

	return c.JSON(fiber.Map{
		"year":  year,
		"month": month,
		"days":  days,
	})
}

func (h *CalendarHandler) calculateRangePrice(c *fiber.Ctx) error {
	start := c.Query("start")
	end := c.Query("end")
	if start == "" || end == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "start and end query parameters are required",
		})
	}

	result, err := h.availability.CalculateRangePrice(c.UserContext(), start, end)
	if err != nil {
		return errorResponse(c, err, "Failed to calculate range price")
	}

	return c.JSON(result)
}
