package handlers

import (
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/baraka-desk/backend/internal/chat"
	"github.com/baraka-desk/backend/internal/lang"
	"github.com/baraka-desk/backend/internal/metrics"
	"github.com/baraka-desk/backend/internal/routing"
	"github.com/baraka-desk/backend/internal/storage/models"
	"github.com/baraka-desk/backend/internal/storage/sqlite"
	"github.com/baraka-desk/backend/pkg/logger"
)

const summaryLimit = 180

type ComplaintHandler struct {
	db     *sqlite.Client
	engine *chat.Engine
}

func NewComplaintHandler(db *sqlite.Client, engine *chat.Engine) *ComplaintHandler {
	return &ComplaintHandler{db: db, engine: engine}
}

type complaintRequest struct {
	Text     string `json:"text"`
	Priority string `json:"priority,omitempty"`
	Lang     string `json:"lang,omitempty"`
}

type complaintResponse struct {
	TicketID     int64   `json:"ticket_id"`
	Department   string  `json:"department"`
	DeptLabel    string  `json:"dept_label"`
	RoutingScore float64 `json:"routing_score"`
	Method       string  `json:"routing_method"`
	Reply        string  `json:"reply"`
	ReplySource  string  `json:"reply_source"`
}

// Create routes the complaint to a department, opens the ticket, and
// answers the user immediately with the best available FAQ reply.
func (h *ComplaintHandler) Create(c *fiber.Ctx) error {
	var req complaintRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	priority := req.Priority
	if priority == "" {
		priority = "Normal"
	}
	if !models.ValidPriority(priority) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid priority",
		})
	}

	username, _ := c.Locals("username").(string)
	ctx := c.UserContext()

	decision, textEN, detected := h.engine.RouteOnly(ctx, req.Text)

	id, err := h.db.InsertComplaint(&models.Complaint{
		Username:   username,
		Text:       req.Text,
		Department: decision.Department,
		Priority:   priority,
		Summary:    summarize(textEN),
	})
	if err != nil {
		logger.Error("Failed to create complaint", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create complaint",
		})
	}

	metrics.ComplaintsCreated.WithLabelValues(decision.Department).Inc()

	outLang := detected
	if lang.Valid(req.Lang) {
		outLang = req.Lang
	}

	reply := h.engine.GenerateReply(ctx, chat.TurnRequest{
		Message:  req.Text,
		Username: username,
		Lang:     req.Lang,
	}, textEN, decision, outLang)

	return c.Status(fiber.StatusCreated).JSON(complaintResponse{
		TicketID:     id,
		Department:   decision.Department,
		DeptLabel:    routing.Label(decision.Department),
		RoutingScore: decision.Score,
		Method:       decision.Method,
		Reply:        reply.Reply,
		ReplySource:  reply.Source,
	})
}

func (h *ComplaintHandler) List(c *fiber.Ctx) error {
	complaints, err := h.db.ListComplaints(
		strings.ToUpper(c.Query("department")),
		c.Query("status"),
	)
	if err != nil {
		logger.Error("Failed to list complaints", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list complaints",
		})
	}

	return c.JSON(fiber.Map{
		"complaints": complaints,
		"count":      len(complaints),
	})
}

func (h *ComplaintHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid complaint id",
		})
	}

	complaint, err := h.db.GetComplaint(id)
	if err != nil {
		logger.Error("Failed to get complaint", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get complaint",
		})
	}
	if complaint == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Complaint not found",
		})
	}

	return c.JSON(complaint)
}

type complaintUpdateRequest struct {
	Status        *string `json:"status"`
	Priority      *string `json:"priority"`
	InternalNotes *string `json:"internal_notes"`
}

func (h *ComplaintHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid complaint id",
		})
	}

	var req complaintUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Status != nil && !models.ValidStatus(*req.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid status",
		})
	}
	if req.Priority != nil && !models.ValidPriority(*req.Priority) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid priority",
		})
	}

	err = h.db.UpdateComplaint(id, sqlite.ComplaintUpdate{
		Status:        req.Status,
		Priority:      req.Priority,
		InternalNotes: req.InternalNotes,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Complaint not found",
		})
	}
	if err != nil {
		logger.Error("Failed to update complaint", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update complaint",
		})
	}

	complaint, err := h.db.GetComplaint(id)
	if err != nil || complaint == nil {
		return c.JSON(fiber.Map{"status": "updated"})
	}
	return c.JSON(complaint)
}

func summarize(textEN string) string {
	runes := []rune(strings.TrimSpace(textEN))
	if len(runes) <= summaryLimit {
		return string(runes)
	}
	return string(runes[:summaryLimit]) + "..."
}
