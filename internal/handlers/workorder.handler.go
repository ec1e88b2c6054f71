package handlers

import (
	"villabook/internal/app"
	"villabook/pkg/logger"

	checklistController "villabook/internal/controllers/checklist"
	workorderController "villabook/internal/controllers/workorder"

	"github.com/gofiber/fiber/v2"
)

// WorkorderHandler serves the cleaning-staff surface. Everything here is
// reachable with just the reservation's public token, no admin session.
type WorkorderHandler struct {
	Handler
	workorder workorderController.WorkorderControllerInterface
	checklist checklistController.ChecklistControllerInterface
}

func NewWorkorderHandler(app app.App, router fiber.Router) *WorkorderHandler {
	log := logger.New("handlers").File("workorder_handler")
	return &WorkorderHandler{
		workorder: app.Controllers.Workorder,
		checklist: app.Controllers.Checklist,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *WorkorderHandler) Register() {
	workorders := h.router.Group("/workorders")
	workorders.Get("/:token", h.getByToken)
	workorders.Patch("/:token", h.updateByToken)

	h.router.Get("/checklists/grouped", h.groupedChecklists)
}

func (h *WorkorderHandler) getByToken(c *fiber.Ctx) error {
	reservation, err := h.workorder.GetByToken(c.UserContext(), c.Params("token"))
	if err != nil {
		return errorResponse(c, err, "Failed to load workorder")
	}

	return c.JSON(fiber.Map{
		"reservation": reservation,
	})
}

func (h *WorkorderHandler) updateByToken(c *fiber.Ctx) error {
	reservation, err := h.workorder.GetByToken(c.UserContext(), c.Params("token"))
	if err != nil {
		return errorResponse(c, err, "Failed to load workorder")
	}

	var req workorderController.UpdateWorkorderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	workorder, err := h.workorder.Update(c.UserContext(), reservation.ID, &req)
	if err != nil {
		return errorResponse(c, err, "Failed to update workorder")
	}

	return c.JSON(fiber.Map{
		"workorder": workorder,
	})
}

func (h *WorkorderHandler) groupedChecklists(c *fiber.Ctx) error {
	grouped, err := h.checklist.Grouped(c.UserContext())
	if err != nil {
		return errorResponse(c, err, "Failed to load checklists")
	}

	return c.JSON(fiber.Map{
		"checklists": grouped,
	})
}
