package handlers

import (
	"villabook/internal/app"
	"villabook/pkg/logger"

	bookingController "villabook/internal/controllers/booking"

	"github.com/gofiber/fiber/v2"
)

type BookingHandler struct {
	Handler
	booking bookingController.BookingControllerInterface
}

func NewBookingHandler(app app.App, router fiber.Router) *BookingHandler {
	log := logger.New("handlers").File("booking_handler")
	return &BookingHandler{
		booking: app.Controllers.Booking,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *BookingHandler) Register() {
	h.router.Post("/requests", h.createRequest)
}

func (h *BookingHandler) createRequest(c *fiber.Ctx) error {
	var req bookingController.CreateRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	request, err := h.booking.CreateRequest(c.UserContext(), &req)
	if err != nil {
		return errorResponse(c, err, "Failed to create booking request")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"request": request,
	})
}
