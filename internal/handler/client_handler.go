package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/coachdesk/coachdesk/internal/domain"
	"github.com/coachdesk/coachdesk/internal/service"
)

type ClientHandler struct {
	clientService *service.ClientService
}

func NewClientHandler(clientService *service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var req domain.Client
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	client, err := h.clientService.Create(c.Context(), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(client)
}

func (h *ClientHandler) List(c *fiber.Ctx) error {
	clients, err := h.clientService.List(c.Context(), c.Query("trainer_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(clients)
}

func (h *ClientHandler) Get(c *fiber.Ctx) error {
	client, err := h.clientService.Get(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(client)
}

func (h *ClientHandler) Update(c *fiber.Ctx) error {
	var req domain.Client
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	req.ID = c.Params("id")
	client, err := h.clientService.Update(c.Context(), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(client)
}

func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	if err := h.clientService.Delete(c.Context(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "deleted"})
}
