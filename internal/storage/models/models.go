package models

import "time"

type User struct {
	Username string `json:"username"`
	PWHash   string `json:"-"`
	Role     string `json:"role"`
}

// FAQ source markers. Base rows live only in the in-memory dataset;
// sqlite holds custom rows.
const (
	SourceCustom   = "custom"
	SourceBase     = "base"
	SourceOpenAI   = "openai"
	SourceFallback = "fallback"
)

type FAQ struct {
	ID         int64     `json:"id"`
	Department string    `json:"department"`
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	Tags       string    `json:"tags,omitempty"`
	Source     string    `json:"source"`
	CreatedBy  string    `json:"created_by,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Complaint struct {
	ID            int64     `json:"id"`
	Username      string    `json:"username"`
	Text          string    `json:"text"`
	Department    string    `json:"department"`
	Status        string    `json:"status"`
	Priority      string    `json:"priority"`
	Summary       string    `json:"summary"`
	InternalNotes string    `json:"internal_notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ChatLog struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	UserMessage string    `json:"user_message"`
	BotReply    string    `json:"bot_reply"`
	Source      string    `json:"source"`
	Score       float64   `json:"score"`
	Department  string    `json:"department"`
	CreatedAt   time.Time `json:"created_at"`
}

var ComplaintStatuses = []string{"Open", "In Review", "Resolved", "Rejected"}

var ComplaintPriorities = []string{"Normal", "High", "Urgent"}

func ValidStatus(s string) bool {
	for _, v := range ComplaintStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func ValidPriority(p string) bool {
	for _, v := range ComplaintPriorities {
		if v == p {
			return true
		}
	}
	return false
}
