package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/coachdesk/coachdesk/internal/domain"
	"github.com/coachdesk/coachdesk/internal/service"
)

// ProgramHandler exposes the template library and the structural tree
// editor. Edit endpoints return the full renumbered template so the editor
// can replace its state wholesale.
type ProgramHandler struct {
	programService *service.ProgramService
}

func NewProgramHandler(programService *service.ProgramService) *ProgramHandler {
	return &ProgramHandler{programService: programService}
}

// --- Template CRUD ---

func (h *ProgramHandler) Create(c *fiber.Ctx) error {
	var req domain.ProgramTemplate
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	tmpl, err := h.programService.CreateTemplate(c.Context(), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tmpl)
}

func (h *ProgramHandler) List(c *fiber.Ctx) error {
	templates, err := h.programService.ListTemplates(c.Context(), c.Query("trainer_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(templates)
}

func (h *ProgramHandler) Get(c *fiber.Ctx) error {
	tmpl, err := h.programService.GetTemplate(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(tmpl)
}

func (h *ProgramHandler) Update(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	tmpl, err := h.programService.UpdateTemplateMeta(c.Context(), c.Params("id"), req.Name, req.Description)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(tmpl)
}

func (h *ProgramHandler) Delete(c *fiber.Ctx) error {
	if err := h.programService.DeleteTemplate(c.Context(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "deleted"})
}

func (h *ProgramHandler) Clone(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	clone, err := h.programService.CloneTemplate(c.Context(), c.Params("id"), req.Name)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(clone)
}

// --- Structural editor ---

func (h *ProgramHandler) AddWeek(c *fiber.Ctx) error {
	tmpl, err := h.programService.AddWeek(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(tmpl)
}

func (h *ProgramHandler) DeleteLastWeek(c *fiber.Ctx) error {
	tmpl, err := h.programService.DeleteLastWeek(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(tmpl)
}

func (h *ProgramHandler) SetWeekFrequency(c *fiber.Ctx) error {
	week, err := c.ParamsInt("week")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid week number"})
	}
	var req struct {
		Days int `json:"days"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	tmpl, err := h.programService.SetWeekFrequency(c.Context(), c.Params("id"), week, req.Days)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(tmpl)
}

func (h *ProgramHandler) SetRestPattern(c *fiber.Ctx) error {
	week, err := c.ParamsInt("week")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid week number"})
	}
	var req struct {
		Frequency int `json:"frequency"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	tmpl, err := h.programService.SetRestPattern(c.Context(), c.Params("id"), week, req.Frequency)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(tmpl)
}

func (h *ProgramHandler) AddDay(c *fiber.Ctx) error {
	tmpl, err := h.programService.AddDay(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(tmpl)
}

func (h *ProgramHandler) RemoveDay(c *fiber.Ctx) error {
	position, err := c.ParamsInt("position")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid day position"})
	}
	tmpl, err := h.programService.RemoveDay(c.Context(), c.Params("id"), position)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(tmpl)
}

func (h *ProgramHandler) ToggleRestDay(c *fiber.Ctx) error {
	day, err := c.ParamsInt("day")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid day number"})
	}
	tmpl, err := h.programService.ToggleRestDay(c.Context(), c.Params("id"), day)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(tmpl)
}

func (h *ProgramHandler) AddSection(c *fiber.Ctx) error {
	day, err := c.ParamsInt("day")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid day number"})
	}
	var req domain.Section
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	tmpl, err := h.programService.AddSection(c.Context(), c.Params("id"), day, req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tmpl)
}

func (h *ProgramHandler) DeleteSection(c *fiber.Ctx) error {
	day, err := c.ParamsInt("day")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid day number"})
	}
	tmpl, err := h.programService.DeleteSection(c.Context(), c.Params("id"), day, c.Params("section_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(tmpl)
}

func (h *ProgramHandler) AddExercise(c *fiber.Ctx) error {
	day, err := c.ParamsInt("day")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid day number"})
	}
	var req domain.ProgramExercise
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	tmpl, err := h.programService.AddExercise(c.Context(), c.Params("id"), day, c.Params("section_id"), req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tmpl)
}

func (h *ProgramHandler) DeleteExercise(c *fiber.Ctx) error {
	day, err := c.ParamsInt("day")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid day number"})
	}
	tmpl, err := h.programService.DeleteExercise(c.Context(), c.Params("id"), day, c.Params("section_id"), c.Params("exercise_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(tmpl)
}

// CopyDayExercises GET /v1/templates/:id/days/:day/exercises
func (h *ProgramHandler) CopyDayExercises(c *fiber.Ctx) error {
	day, err := c.ParamsInt("day")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid day number"})
	}
	exercises, err := h.programService.CopyDayExercises(c.Context(), c.Params("id"), day)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"exercises": exercises})
}

// PasteDayExercises POST /v1/templates/:id/days/:day/exercises/paste
func (h *ProgramHandler) PasteDayExercises(c *fiber.Ctx) error {
	day, err := c.ParamsInt("day")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid day number"})
	}
	var req struct {
		Exercises []domain.ProgramExercise `json:"exercises"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	tmpl, err := h.programService.PasteDayExercises(c.Context(), c.Params("id"), day, req.Exercises)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(tmpl)
}
