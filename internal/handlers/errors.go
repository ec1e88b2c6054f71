package handlers

import (
	"errors"

	availabilityController "villabook/internal/controllers/availability"
	bookingController "villabook/internal/controllers/booking"
	checklistController "villabook/internal/controllers/checklist"
	settingsController "villabook/internal/controllers/settings"
	statsController "villabook/internal/controllers/stats"
	workorderController "villabook/internal/controllers/workorder"

	"github.com/gofiber/fiber/v2"
)

// errorResponse maps controller errors onto HTTP statuses. Validation and
// range problems are the caller's fault (400), unknown ids are 404, and a
// second decision on the same request is a conflict (409). Anything else is
// a plain 500 with no internals leaked.
func errorResponse(c *fiber.Ctx, err error, fallback string) error {
	var minNights *availabilityController.MinNightsError
	if errors.As(err, &minNights) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":      minNights.Error(),
			"min_nights": minNights.MinNights,
		})
	}

	switch {
	case errors.Is(err, availabilityController.ErrInvalidRange),
		errors.Is(err, availabilityController.ErrRangeUnavailable),
		errors.Is(err, bookingController.ErrValidation),
		errors.Is(err, checklistController.ErrValidation),
		errors.Is(err, statsController.ErrValidation),
		errors.Is(err, settingsController.ErrValidation),
		errors.Is(err, workorderController.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})

	case errors.Is(err, bookingController.ErrNotFound),
		errors.Is(err, workorderController.ErrNotFound),
		errors.Is(err, checklistController.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})

	case errors.Is(err, bookingController.ErrAlreadyDecided):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": fallback,
	})
}
