package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/baraka-desk/backend/internal/dataset"
	"github.com/baraka-desk/backend/internal/llm"
	"github.com/baraka-desk/backend/internal/routing"
)

type HealthHandler struct {
	base      *dataset.Store
	llmClient *llm.Client
	started   time.Time
}

func NewHealthHandler(base *dataset.Store, llmClient *llm.Client) *HealthHandler {
	return &HealthHandler{
		base:      base,
		llmClient: llmClient,
		started:   time.Now(),
	}
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":         "ok",
		"uptime_seconds": int(time.Since(h.started).Seconds()),
		"base_faqs":      h.base.Len(),
		"ai_fallback":    h.llmClient.Available(),
	})
}

// Departments lists the routable departments with display labels, for
// console dropdowns.
func (h *HealthHandler) Departments(c *fiber.Ctx) error {
	type dept struct {
		Code  string `json:"code"`
		Label string `json:"label"`
	}

	out := make([]dept, 0, len(routing.Departments))
	for _, d := range routing.Departments {
		out = append(out, dept{Code: d, Label: routing.Label(d)})
	}

	return c.JSON(fiber.Map{"departments": out})
}
