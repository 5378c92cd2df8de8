package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/baraka-desk/backend/internal/chat"
	"github.com/baraka-desk/backend/pkg/logger"
)

type ChatHandler struct {
	engine *chat.Engine
}

func NewChatHandler(engine *chat.Engine) *ChatHandler {
	return &ChatHandler{engine: engine}
}

type chatRequest struct {
	Message string `json:"message"`
	// Lang pins the reply language; empty means mirror the input.
	Lang string `json:"lang,omitempty"`
}

func (h *ChatHandler) Handle(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	username, _ := c.Locals("username").(string)

	resp, err := h.engine.Respond(c.UserContext(), chat.TurnRequest{
		Message:  req.Message,
		Username: username,
		Lang:     req.Lang,
	})
	if err != nil {
		logger.Error("Chat turn failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to process message",
		})
	}

	return c.JSON(resp)
}
