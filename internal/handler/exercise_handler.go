package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/coachdesk/coachdesk/internal/domain"
	"github.com/coachdesk/coachdesk/internal/service"
)

type ExerciseHandler struct {
	exerciseService *service.ExerciseService
}

func NewExerciseHandler(exerciseService *service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

func (h *ExerciseHandler) Create(c *fiber.Ctx) error {
	var req domain.Exercise
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	exercise, err := h.exerciseService.Create(c.Context(), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(exercise)
}

func (h *ExerciseHandler) List(c *fiber.Ctx) error {
	exercises, err := h.exerciseService.List(c.Context(),
		c.Query("muscle_group"), c.Query("equipment"), c.Query("category"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(exercises)
}

func (h *ExerciseHandler) Get(c *fiber.Ctx) error {
	exercise, err := h.exerciseService.Get(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(exercise)
}

func (h *ExerciseHandler) Update(c *fiber.Ctx) error {
	var req domain.Exercise
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	req.ID = c.Params("id")
	exercise, err := h.exerciseService.Update(c.Context(), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(exercise)
}

func (h *ExerciseHandler) Delete(c *fiber.Ctx) error {
	if err := h.exerciseService.Delete(c.Context(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "deleted"})
}
