package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/baraka-desk/backend/internal/storage/sqlite"
	"github.com/baraka-desk/backend/pkg/logger"
)

type LogHandler struct {
	db *sqlite.Client
}

func NewLogHandler(db *sqlite.Client) *LogHandler {
	return &LogHandler{db: db}
}

func (h *LogHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 800)

	logs, err := h.db.ListChatLogs(limit)
	if err != nil {
		logger.Error("Failed to list chat logs", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list chat logs",
		})
	}

	return c.JSON(fiber.Map{
		"logs":  logs,
		"count": len(logs),
	})
}
