package handlers

import (
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	cache "github.com/baraka-desk/backend/internal/cache/redis"
	"github.com/baraka-desk/backend/internal/routing"
	"github.com/baraka-desk/backend/internal/storage/models"
	"github.com/baraka-desk/backend/internal/storage/sqlite"
	"github.com/baraka-desk/backend/pkg/logger"
)

// FAQHandler is the admin console surface for the curated FAQ set.
// Every mutation flushes the reply cache so stale answers are never
// served after an edit.
type FAQHandler struct {
	db    *sqlite.Client
	cache *cache.Client
}

func NewFAQHandler(db *sqlite.Client, replyCache *cache.Client) *FAQHandler {
	return &FAQHandler{db: db, cache: replyCache}
}

type faqRequest struct {
	Department string `json:"department"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Tags       string `json:"tags"`
}

func (r *faqRequest) validate() string {
	r.Department = strings.ToUpper(strings.TrimSpace(r.Department))
	r.Question = strings.TrimSpace(r.Question)
	r.Answer = strings.TrimSpace(r.Answer)

	if !routing.Valid(r.Department) {
		return "Unknown department"
	}
	if r.Question == "" {
		return "Question is required"
	}
	if r.Answer == "" {
		return "Answer is required"
	}
	return ""
}

func (h *FAQHandler) Create(c *fiber.Ctx) error {
	var req faqRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if msg := req.validate(); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	username, _ := c.Locals("username").(string)

	id, err := h.db.InsertFAQ(&models.FAQ{
		Department: req.Department,
		Question:   req.Question,
		Answer:     req.Answer,
		Tags:       req.Tags,
		CreatedBy:  username,
	})
	if err != nil {
		logger.Error("Failed to create FAQ", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create FAQ",
		})
	}

	h.invalidate(c)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

func (h *FAQHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid FAQ id",
		})
	}

	var req faqRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if msg := req.validate(); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	err = h.db.UpdateFAQ(&models.FAQ{
		ID:         id,
		Department: req.Department,
		Question:   req.Question,
		Answer:     req.Answer,
		Tags:       req.Tags,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "FAQ not found",
		})
	}
	if err != nil {
		logger.Error("Failed to update FAQ", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update FAQ",
		})
	}

	h.invalidate(c)
	return c.JSON(fiber.Map{"status": "updated"})
}

func (h *FAQHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid FAQ id",
		})
	}

	err = h.db.DeleteFAQ(id)
	if errors.Is(err, sql.ErrNoRows) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "FAQ not found",
		})
	}
	if err != nil {
		logger.Error("Failed to delete FAQ", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete FAQ",
		})
	}

	h.invalidate(c)
	return c.JSON(fiber.Map{"status": "deleted"})
}

func (h *FAQHandler) List(c *fiber.Ctx) error {
	faqs, err := h.db.ListFAQs(strings.ToUpper(c.Query("department")))
	if err != nil {
		logger.Error("Failed to list FAQs", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list FAQs",
		})
	}

	return c.JSON(fiber.Map{
		"faqs":  faqs,
		"count": len(faqs),
	})
}

func (h *FAQHandler) invalidate(c *fiber.Ctx) {
	if err := h.cache.InvalidateReplies(c.UserContext()); err != nil {
		logger.Warn("Failed to invalidate reply cache", zap.Error(err))
	}
}
