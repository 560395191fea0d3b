package controllers

import (
	"errors"

	"erp-app/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// respondError maps domain error kinds to HTTP statuses: missing rows are 404,
// quantity/validation failures 422, state violations 409, everything else 500.
func respondError(ctx *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, models.ErrInsufficientQuantity),
		errors.Is(err, models.ErrInvalidQuantity),
		errors.Is(err, models.ErrReasonRequired),
		errors.Is(err, models.ErrUnbalancedEntry):
		status = fiber.StatusUnprocessableEntity
	case errors.Is(err, models.ErrInvalidTransition),
		errors.Is(err, models.ErrSessionClosed),
		errors.Is(err, models.ErrSessionAlreadyOpen),
		errors.Is(err, models.ErrPeriodClosed):
		status = fiber.StatusConflict
	}

	return ctx.Status(status).JSON(fiber.Map{"success": false, "error": err.Error()})
}
