package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/coachdesk/coachdesk/internal/domain"
)

func statusFor(err error) int {
	var verr *domain.ValidationError
	var serr *domain.StructuralError
	switch {
	case errors.As(err, &verr), errors.Is(err, domain.ErrInvalidID):
		return fiber.StatusBadRequest
	case errors.As(err, &serr):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrTemplateNotFound),
		errors.Is(err, domain.ErrClientNotFound),
		errors.Is(err, domain.ErrExerciseNotFound),
		errors.Is(err, domain.ErrInstanceNotFound),
		errors.Is(err, domain.ErrSessionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateExercise):
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

func fail(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
}
