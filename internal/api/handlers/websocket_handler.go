package handlers

import (
	"context"
	"strings"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/baraka-desk/backend/internal/chat"
	"github.com/baraka-desk/backend/pkg/logger"
)

type WebSocketHandler struct {
	engine *chat.Engine
	maxLen int
}

func NewWebSocketHandler(engine *chat.Engine, maxLen int) *WebSocketHandler {
	return &WebSocketHandler{
		engine: engine,
		maxLen: maxLen,
	}
}

// HandleConnection runs one chat session over a socket. Each inbound
// message is answered as a stream of word chunks followed by a
// complete frame carrying the routing metadata.
func (h *WebSocketHandler) HandleConnection(c *websocket.Conn) {
	username, _ := c.Locals("username").(string)
	logger.Info("WebSocket connection established", zap.String("username", username))

	defer func() {
		c.Close()
		logger.Info("WebSocket connection closed", zap.String("username", username))
	}()

	for {
		var msg struct {
			Type    string `json:"type"`
			Message string `json:"message"`
			Lang    string `json:"lang"`
		}

		if err := c.ReadJSON(&msg); err != nil {
			break
		}

		if msg.Type != "chat" {
			continue
		}

		if text := strings.TrimSpace(msg.Message); text == "" || (h.maxLen > 0 && len([]rune(text)) > h.maxLen) {
			h.sendError(c, "Message is empty or too long")
			continue
		}

		if err := h.streamResponse(c, msg.Message, msg.Lang, username); err != nil {
			logger.Error("Failed to stream reply", zap.Error(err))
			h.sendError(c, "Failed to process message")
		}
	}
}

func (h *WebSocketHandler) streamResponse(c *websocket.Conn, message, replyLang, username string) error {
	resp, err := h.engine.Respond(context.Background(), chat.TurnRequest{
		Message:  message,
		Username: username,
		Lang:     replyLang,
	})
	if err != nil {
		return err
	}

	words := strings.Fields(resp.Reply)
	for i, word := range words {
		chunk := word
		if i < len(words)-1 {
			chunk += " "
		}
		if err := h.sendChunk(c, "chunk", chunk); err != nil {
			return err
		}
	}

	return c.WriteJSON(map[string]interface{}{
		"type":           "complete",
		"reply":          resp.Reply,
		"department":     resp.Department,
		"dept_label":     resp.DeptLabel,
		"routing_method": resp.Method,
		"source":         resp.Source,
		"score":          resp.Score,
		"lang":           resp.Lang,
	})
}

func (h *WebSocketHandler) sendChunk(c *websocket.Conn, msgType, content string) error {
	return c.WriteJSON(map[string]interface{}{
		"type":    msgType,
		"content": content,
	})
}

func (h *WebSocketHandler) sendError(c *websocket.Conn, errorMsg string) {
	if err := c.WriteJSON(map[string]interface{}{
		"type":  "error",
		"error": errorMsg,
	}); err != nil {
		logger.Error("Failed to send WebSocket error", zap.Error(err))
	}
}
