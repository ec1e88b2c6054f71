package handlers

import (
	"villabook/internal/app"
	"villabook/internal/handlers/middleware"
	"villabook/pkg/logger"

	availabilityController "villabook/internal/controllers/availability"
	bookingController "villabook/internal/controllers/booking"
	checklistController "villabook/internal/controllers/checklist"
	settingsController "villabook/internal/controllers/settings"
	statsController "villabook/internal/controllers/stats"
	workorderController "villabook/internal/controllers/workorder"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler is the management surface. The whole router group sits behind
// the admin JWT middleware, so these handlers never re-check auth.
type AdminHandler struct {
	Handler
	availability availabilityController.AvailabilityControllerInterface
	booking      bookingController.BookingControllerInterface
	workorder    workorderController.WorkorderControllerInterface
	checklist    checklistController.ChecklistControllerInterface
	stats        statsController.StatsControllerInterface
	settings     settingsController.SettingsControllerInterface
}

func NewAdminHandler(app app.App, router fiber.Router) *AdminHandler {
	log := logger.New("handlers").File("admin_handler")
	return &AdminHandler{
		availability: app.Controllers.Availability,
		booking:      app.Controllers.Booking,
		workorder:    app.Controllers.Workorder,
		checklist:    app.Controllers.Checklist,
		stats:        app.Controllers.Stats,
		settings:     app.Controllers.Settings,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AdminHandler) Register() {
	h.router.Put("/calendar/range", h.updateRange)

	requests := h.router.Group("/requests")
	requests.Get("", h.listRequests)
	requests.Post("/:id/approve", h.approveRequest)
	requests.Post("/:id/reject", h.rejectRequest)
	requests.Delete("/:id", h.deleteRequest)

	reservations := h.router.Group("/reservations")
	reservations.Get("", h.listReservations)
	reservations.Get("/:id", h.getReservation)
	reservations.Get("/:id/workorder", h.getWorkorder)
	reservations.Patch("/:id/workorder", h.updateWorkorder)

	checklists := h.router.Group("/checklists")
	checklists.Get("", h.listChecklistItems)
	checklists.Post("", h.saveChecklistItem)
	checklists.Delete("/:id", h.deleteChecklistItem)

	h.router.Get("/stats", h.getStats)

	h.router.Get("/settings", h.getSettings)
	h.router.Put("/settings", h.updateSettings)
}

func (h *AdminHandler) updateRange(c *fiber.Ctx) error {
	var req availabilityController.UpdateRangeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	days, err := h.availability.UpdateRange(c.UserContext(), &req)
	if err != nil {
		return errorResponse(c, err, "Failed to update calendar range")
	}

	return c.JSON(fiber.Map{
		"updated_days": days,
	})
}

func (h *AdminHandler) listRequests(c *fiber.Ctx) error {
	requests, err := h.booking.ListRequests(c.UserContext())
	if err != nil {
		return errorResponse(c, err, "Failed to list requests")
	}

	return c.JSON(fiber.Map{
		"requests": requests,
	})
}

func (h *AdminHandler) approveRequest(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request ID",
		})
	}

	reservation, err := h.booking.ApproveRequest(c.UserContext(), id)
	if err != nil {
		return errorResponse(c, err, "Failed to approve request")
	}

	h.log.Info("Request approved",
		"requestID", id,
		"admin", middleware.GetAdminSubject(c),
	)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"reservation": reservation,
	})
}

func (h *AdminHandler) rejectRequest(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request ID",
		})
	}

	if err := h.booking.RejectRequest(c.UserContext(), id); err != nil {
		return errorResponse(c, err, "Failed to reject request")
	}

	return c.JSON(fiber.Map{
		"rejected": true,
	})
}

func (h *AdminHandler) deleteRequest(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request ID",
		})
	}

	if err := h.booking.DeleteRequest(c.UserContext(), id); err != nil {
		return errorResponse(c, err, "Failed to delete request")
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}

func (h *AdminHandler) listReservations(c *fiber.Ctx) error {
	reservations, err := h.booking.ListReservations(c.UserContext())
	if err != nil {
		return errorResponse(c, err, "Failed to list reservations")
	}

	return c.JSON(fiber.Map{
		"reservations": reservations,
	})
}

func (h *AdminHandler) getReservation(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid reservation ID",
		})
	}

	reservation, err := h.booking.GetReservation(c.UserContext(), id)
	if err != nil {
		return errorResponse(c, err, "Failed to get reservation")
	}

	return c.JSON(fiber.Map{
		"reservation": reservation,
	})
}

func (h *AdminHandler) getWorkorder(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid reservation ID",
		})
	}

	workorder, err := h.workorder.GetByReservation(c.UserContext(), id)
	if err != nil {
		return errorResponse(c, err, "Failed to get workorder")
	}

	return c.JSON(fiber.Map{
		"workorder": workorder,
	})
}

func (h *AdminHandler) updateWorkorder(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid reservation ID",
		})
	}

	var req workorderController.UpdateWorkorderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	workorder, err := h.workorder.Update(c.UserContext(), id, &req)
	if err != nil {
		return errorResponse(c, err, "Failed to update workorder")
	}

	return c.JSON(fiber.Map{
		"workorder": workorder,
	})
}

func (h *AdminHandler) listChecklistItems(c *fiber.Ctx) error {
	includeInactive := c.QueryBool("include_inactive")

	items, err := h.checklist.List(c.UserContext(), includeInactive)
	if err != nil {
		return errorResponse(c, err, "Failed to list checklist items")
	}

	return c.JSON(fiber.Map{
		"items": items,
	})
}

func (h *AdminHandler) saveChecklistItem(c *fiber.Ctx) error {
	var req checklistController.SaveItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	item, err := h.checklist.Save(c.UserContext(), &req)
	if err != nil {
		return errorResponse(c, err, "Failed to save checklist item")
	}

	return c.JSON(fiber.Map{
		"item": item,
	})
}

func (h *AdminHandler) deleteChecklistItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid item ID",
		})
	}

	if err := h.checklist.Delete(c.UserContext(), id); err != nil {
		return errorResponse(c, err, "Failed to delete checklist item")
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}

func (h *AdminHandler) getStats(c *fiber.Ctx) error {
	summary, err := h.stats.GetStats(c.UserContext())
	if err != nil {
		return errorResponse(c, err, "Failed to load stats")
	}

	return c.JSON(summary)
}

func (h *AdminHandler) getSettings(c *fiber.Ctx) error {
	settings, err := h.settings.Get(c.UserContext())
	if err != nil {
		return errorResponse(c, err, "Failed to load settings")
	}

	return c.JSON(fiber.Map{
		"settings": settings,
	})
}

func (h *AdminHandler) updateSettings(c *fiber.Ctx) error {
	var req settingsController.UpdateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	settings, err := h.settings.Update(c.UserContext(), &req)
	if err != nil {
		return errorResponse(c, err, "Failed to update settings")
	}

	return c.JSON(fiber.Map{
		"settings": settings,
	})
}
