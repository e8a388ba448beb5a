package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/coachdesk/coachdesk/internal/domain"
	"github.com/coachdesk/coachdesk/internal/service"
	"github.com/coachdesk/coachdesk/internal/telemetry"
)

type AssignmentHandler struct {
	assignmentService *service.AssignmentService
	instanceRepo      domain.ProgramInstanceRepository // Exposed for simple reads
}

func NewAssignmentHandler(assignmentService *service.AssignmentService, instanceRepo domain.ProgramInstanceRepository) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentService: assignmentService,
		instanceRepo:      instanceRepo,
	}
}

// DetectConflicts POST /v1/assignments/conflicts
// Read-only preview; the dialog calls this on every selection change.
func (h *AssignmentHandler) DetectConflicts(c *fiber.Ctx) error {
	var req struct {
		ClientIDs []string `json:"client_ids"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	conflicts, err := h.assignmentService.DetectConflicts(c.Context(), req.ClientIDs)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"conflicts": conflicts})
}

// Assign POST /v1/templates/:id/assign
// With unresolved conflicts and confirmed=false the response carries the
// conflict list and requires_confirmation=true; nothing is created.
func (h *AssignmentHandler) Assign(c *fiber.Ctx) error {
	var req struct {
		ClientIDs []string `json:"client_ids"`
		TrainerID string   `json:"trainer_id"`
		StartDate string   `json:"start_date"`
		StartTime string   `json:"start_time"`
		EndTime   string   `json:"end_time"`
		Confirmed bool     `json:"confirmed"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	if req.StartTime == "" {
		req.StartTime = "10:00"
	}
	if req.EndTime == "" {
		req.EndTime = "11:00"
	}

	telemetry.SetSpanAttribute(c, "assignment.template_id", c.Params("id"))
	telemetry.SetSpanAttribute(c, "assignment.client_count", strconv.Itoa(len(req.ClientIDs)))

	result, err := h.assignmentService.Assign(c.Context(), service.AssignRequest{
		TemplateID: c.Params("id"),
		ClientIDs:  req.ClientIDs,
		TrainerID:  req.TrainerID,
		StartDate:  req.StartDate,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Confirmed:  req.Confirmed,
	})
	if err != nil {
		return fail(c, err)
	}
	if result.RequiresConfirmation {
		return c.JSON(result)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// CompleteDay POST /v1/instances/:id/complete-day
func (h *AssignmentHandler) CompleteDay(c *fiber.Ctx) error {
	var req struct {
		DayNumber int `json:"day_number"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	if err := h.assignmentService.CompleteDay(c.Context(), c.Params("id"), req.DayNumber); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "completed"})
}

// DeleteInstance DELETE /v1/instances/:id
func (h *AssignmentHandler) DeleteInstance(c *fiber.Ctx) error {
	if err := h.assignmentService.DeleteInstance(c.Context(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "deleted"})
}

// GetInstance GET /v1/instances/:id
func (h *AssignmentHandler) GetInstance(c *fiber.Ctx) error {
	instance, err := h.instanceRepo.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(instance)
}

// ListClientInstances GET /v1/clients/:id/instances
// active=true narrows to the single active instance, if any.
func (h *AssignmentHandler) ListClientInstances(c *fiber.Ctx) error {
	clientID := c.Params("id")
	if c.Query("active") == "true" {
		instance, err := h.instanceRepo.GetActiveByClient(c.Context(), clientID)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON([]interface{}{instance})
	}
	instances, err := h.instanceRepo.ListByClient(c.Context(), clientID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(instances)
}
