package validation

import (
	"strings"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/baraka-desk/backend/pkg/logger"
)

// ChatMessage gates the chat endpoints: the message must be present,
// non-blank, and within the configured length. Runes are counted, not
// bytes, since most traffic is non-Latin script.
func ChatMessage(maxLen int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			Message string `json:"message"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}

		message := strings.TrimSpace(body.Message)
		if message == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Message is required",
			})
		}

		if maxLen > 0 && utf8.RuneCountInString(message) > maxLen {
			logger.Warn("Oversized chat message rejected",
				zap.Int("length", utf8.RuneCountInString(message)),
				zap.Int("max", maxLen),
			)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Message is too long",
			})
		}

		return c.Next()
	}
}

// ComplaintText gates complaint creation the same way.
func ComplaintText(maxLen int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			Text string `json:"text"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}

		text := strings.TrimSpace(body.Text)
		if text == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Complaint text is required",
			})
		}

		if maxLen > 0 && utf8.RuneCountInString(text) > maxLen {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Complaint text is too long",
			})
		}

		return c.Next()
	}
}
