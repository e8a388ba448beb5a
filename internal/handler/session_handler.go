package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/coachdesk/coachdesk/internal/domain"
	"github.com/coachdesk/coachdesk/internal/service"
)

type SessionHandler struct {
	sessionService *service.SessionService
}

func NewSessionHandler(sessionService *service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// Create POST /v1/sessions schedules a standalone session not tied to a
// program instance.
func (h *SessionHandler) Create(c *fiber.Ctx) error {
	var req struct {
		ClientID  string                   `json:"client_id"`
		TrainerID string                   `json:"trainer_id"`
		Date      string                   `json:"date"`
		Time      string                   `json:"time"`
		EndTime   string                   `json:"end_time"`
		Notes     string                   `json:"notes"`
		Exercises []domain.SessionExercise `json:"exercises"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	if req.Time == "" {
		req.Time = "10:00"
	}
	if req.EndTime == "" {
		req.EndTime = "11:00"
	}
	session, err := h.sessionService.Create(c.Context(), &domain.WorkoutSession{
		ClientID:  req.ClientID,
		TrainerID: req.TrainerID,
		Date:      req.Date,
		Time:      req.Time,
		EndTime:   req.EndTime,
		Notes:     req.Notes,
		Exercises: req.Exercises,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(session)
}

// List GET /v1/sessions?client_id=&instance_id=&from=&to=&status=
func (h *SessionHandler) List(c *fiber.Ctx) error {
	sessions, err := h.sessionService.List(c.Context(),
		c.Query("client_id"), c.Query("instance_id"),
		c.Query("from"), c.Query("to"), c.Query("status"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(sessions)
}

func (h *SessionHandler) Get(c *fiber.Ctx) error {
	session, err := h.sessionService.Get(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(session)
}

// UpdateStatus PATCH /v1/sessions/:id/status
func (h *SessionHandler) UpdateStatus(c *fiber.Ctx) error {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	if err := h.sessionService.UpdateStatus(c.Context(), c.Params("id"), req.Status); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "updated"})
}

// LogSets PATCH /v1/sessions/:id/exercises/:exercise_id/sets
func (h *SessionHandler) LogSets(c *fiber.Ctx) error {
	var req struct {
		Sets []domain.ActualSet `json:"sets"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	session, err := h.sessionService.LogSets(c.Context(), c.Params("id"), c.Params("exercise_id"), req.Sets)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(session)
}

func (h *SessionHandler) Delete(c *fiber.Ctx) error {
	if err := h.sessionService.Delete(c.Context(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "deleted"})
}
