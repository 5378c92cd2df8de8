package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/baraka-desk/backend/internal/storage/models"
	"github.com/baraka-desk/backend/pkg/logger"
	"github.com/baraka-desk/backend/pkg/password"
)

type Client struct {
	db *sql.DB
}

func NewClient(dbPath string) (*Client, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = db.Exec("PRAGMA foreign_keys = ON")
	if err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	_, err = db.Exec("PRAGMA journal_mode = WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	logger.Info("SQLite client initialized", zap.String("path", dbPath))

	return &Client{db: db}, nil
}

func (c *Client) Close() error {
	return c.db.Close()
}

func (c *Client) InitSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		username TEXT PRIMARY KEY,
		pw_hash TEXT NOT NULL,
		role TEXT NOT NULL CHECK(role IN ('user','admin'))
	);

	CREATE TABLE IF NOT EXISTS custom_faqs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		department TEXT NOT NULL DEFAULT 'CONTACT',
		question TEXT NOT NULL,
		answer TEXT NOT NULL,
		tags TEXT,
		created_by TEXT,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_faqs_department ON custom_faqs(department);
	CREATE INDEX IF NOT EXISTS idx_faqs_updated ON custom_faqs(updated_at);

	CREATE TABLE IF NOT EXISTS complaints (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT,
		text TEXT NOT NULL,
		department TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'Open',
		priority TEXT NOT NULL DEFAULT 'Normal',
		summary TEXT,
		internal_notes TEXT,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_complaints_department ON complaints(department);
	CREATE INDEX IF NOT EXISTS idx_complaints_status ON complaints(status);
	CREATE INDEX IF NOT EXISTS idx_complaints_created ON complaints(created_at);

	CREATE TABLE IF NOT EXISTS chat_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT,
		user_message TEXT,
		bot_reply TEXT,
		source TEXT,
		score REAL,
		department TEXT,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_chat_logs_created ON chat_logs(created_at);
	`

	_, err := c.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	logger.Info("SQLite schema initialized")
	return nil
}

// SeedUser creates the account if missing, or re-hashes a legacy
// (non-PBKDF2) credential in place.
func (c *Client) SeedUser(username, plain, role string) error {
	var stored string
	err := c.db.QueryRow(`SELECT pw_hash FROM users WHERE username = ?`, username).Scan(&stored)

	if err == sql.ErrNoRows {
		hash, err := password.Hash(plain)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		_, err = c.db.Exec(`INSERT INTO users (username, pw_hash, role) VALUES (?, ?, ?)`, username, hash, role)
		if err != nil {
			return fmt.Errorf("failed to seed user: %w", err)
		}
		logger.Info("User seeded", zap.String("username", username), zap.String("role", role))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}

	if !password.IsHash(stored) {
		hash, err := password.Hash(plain)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		_, err = c.db.Exec(`UPDATE users SET pw_hash = ?, role = ? WHERE username = ?`, hash, role, username)
		if err != nil {
			return fmt.Errorf("failed to upgrade user credential: %w", err)
		}
		logger.Info("User credential upgraded", zap.String("username", username))
	}

	return nil
}

func (c *Client) GetUser(username string) (*models.User, error) {
	var u models.User
	err := c.db.QueryRow(
		`SELECT username, pw_hash, role FROM users WHERE username = ?`, username,
	).Scan(&u.Username, &u.PWHash, &u.Role)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

func (c *Client) InsertFAQ(faq *models.FAQ) (int64, error) {
	res, err := c.db.Exec(
		`INSERT INTO custom_faqs (department, question, answer, tags, created_by, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		faq.Department, faq.Question, faq.Answer, faq.Tags, faq.CreatedBy, time.Now().Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert FAQ: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read FAQ id: %w", err)
	}

	logger.Debug("FAQ inserted", zap.Int64("faq_id", id), zap.String("department", faq.Department))
	return id, nil
}

func (c *Client) UpdateFAQ(faq *models.FAQ) error {
	res, err := c.db.Exec(
		`UPDATE custom_faqs SET department = ?, question = ?, answer = ?, tags = ?, updated_at = ?
		 WHERE id = ?`,
		faq.Department, faq.Question, faq.Answer, faq.Tags, time.Now().Unix(), faq.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update FAQ: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (c *Client) DeleteFAQ(id int64) error {
	res, err := c.db.Exec(`DELETE FROM custom_faqs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete FAQ: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListFAQs returns custom FAQs, newest first. department "" or "ALL"
// returns every department.
func (c *Client) ListFAQs(department string) ([]models.FAQ, error) {
	query := `SELECT id, department, question, answer, COALESCE(tags, ''), COALESCE(created_by, ''), updated_at
		FROM custom_faqs`
	args := []interface{}{}

	if department != "" && department != "ALL" {
		query += ` WHERE department = ?`
		args = append(args, department)
	}
	query += ` ORDER BY updated_at DESC, id DESC`

	rows, err := c.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list FAQs: %w", err)
	}
	defer rows.Close()

	var faqs []models.FAQ
	for rows.Next() {
		var f models.FAQ
		var updatedAt int64
		if err := rows.Scan(&f.ID, &f.Department, &f.Question, &f.Answer, &f.Tags, &f.CreatedBy, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		f.Source = models.SourceCustom
		f.UpdatedAt = time.Unix(updatedAt, 0)
		faqs = append(faqs, f)
	}

	return faqs, rows.Err()
}

func (c *Client) InsertComplaint(complaint *models.Complaint) (int64, error) {
	now := time.Now().Unix()
	res, err := c.db.Exec(
		`INSERT INTO complaints (username, text, department, status, priority, summary, created_at, updated_at)
		 VALUES (?, ?, ?, 'Open', ?, ?, ?, ?)`,
		complaint.Username, complaint.Text, complaint.Department, complaint.Priority, complaint.Summary, now, now,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert complaint: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read complaint id: %w", err)
	}

	logger.Info("Complaint created",
		zap.Int64("complaint_id", id),
		zap.String("department", complaint.Department),
		zap.String("priority", complaint.Priority),
	)
	return id, nil
}

func (c *Client) GetComplaint(id int64) (*models.Complaint, error) {
	var m models.Complaint
	var createdAt, updatedAt int64
	err := c.db.QueryRow(
		`SELECT id, COALESCE(username, ''), text, department, status, priority,
			COALESCE(summary, ''), COALESCE(internal_notes, ''), created_at, updated_at
		 FROM complaints WHERE id = ?`, id,
	).Scan(&m.ID, &m.Username, &m.Text, &m.Department, &m.Status, &m.Priority,
		&m.Summary, &m.InternalNotes, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get complaint: %w", err)
	}

	m.CreatedAt = time.Unix(createdAt, 0)
	m.UpdatedAt = time.Unix(updatedAt, 0)
	return &m, nil
}

// ListComplaints filters by department and status; "" or "ALL" disables
// either filter.
func (c *Client) ListComplaints(department, status string) ([]models.Complaint, error) {
	query := `SELECT id, COALESCE(username, ''), text, department, status, priority,
		COALESCE(summary, ''), COALESCE(internal_notes, ''), created_at, updated_at
		FROM complaints WHERE 1=1`
	args := []interface{}{}

	if department != "" && department != "ALL" {
		query += ` AND department = ?`
		args = append(args, department)
	}
	if status != "" && status != "ALL" {
		query += ` AND status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := c.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list complaints: %w", err)
	}
	defer rows.Close()

	var complaints []models.Complaint
	for rows.Next() {
		var m models.Complaint
		var createdAt, updatedAt int64
		if err := rows.Scan(&m.ID, &m.Username, &m.Text, &m.Department, &m.Status, &m.Priority,
			&m.Summary, &m.InternalNotes, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		m.CreatedAt = time.Unix(createdAt, 0)
		m.UpdatedAt = time.Unix(updatedAt, 0)
		complaints = append(complaints, m)
	}

	return complaints, rows.Err()
}

type ComplaintUpdate struct {
	Status        *string
	Priority      *string
	InternalNotes *string
}

func (c *Client) UpdateComplaint(id int64, update ComplaintUpdate) error {
	fields := []string{}
	args := []interface{}{}

	if update.Status != nil {
		fields = append(fields, "status = ?")
		args = append(args, *update.Status)
	}
	if update.Priority != nil {
		fields = append(fields, "priority = ?")
		args = append(args, *update.Priority)
	}
	if update.InternalNotes != nil {
		fields = append(fields, "internal_notes = ?")
		args = append(args, *update.InternalNotes)
	}
	if len(fields) == 0 {
		return nil
	}

	fields = append(fields, "updated_at = ?")
	args = append(args, time.Now().Unix(), id)

	res, err := c.db.Exec(`UPDATE complaints SET `+strings.Join(fields, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("failed to update complaint: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}

	logger.Info("Complaint updated", zap.Int64("complaint_id", id))
	return nil
}

func (c *Client) InsertChatLog(entry *models.ChatLog) error {
	_, err := c.db.Exec(
		`INSERT INTO chat_logs (username, user_message, bot_reply, source, score, department, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.Username, entry.UserMessage, entry.BotReply, entry.Source, entry.Score, entry.Department,
		time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert chat log: %w", err)
	}

	logger.Debug("Chat turn logged",
		zap.String("source", entry.Source),
		zap.String("department", entry.Department),
		zap.Float64("score", entry.Score),
	)
	return nil
}

func (c *Client) ListChatLogs(limit int) ([]models.ChatLog, error) {
	if limit <= 0 {
		limit = 800
	}

	rows, err := c.db.Query(
		`SELECT id, COALESCE(username, ''), COALESCE(user_message, ''), COALESCE(bot_reply, ''),
			COALESCE(source, ''), COALESCE(score, 0), COALESCE(department, ''), created_at
		 FROM chat_logs ORDER BY created_at DESC, id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat logs: %w", err)
	}
	defer rows.Close()

	var logs []models.ChatLog
	for rows.Next() {
		var l models.ChatLog
		var createdAt int64
		if err := rows.Scan(&l.ID, &l.Username, &l.UserMessage, &l.BotReply, &l.Source, &l.Score,
			&l.Department, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		l.CreatedAt = time.Unix(createdAt, 0)
		logs = append(logs, l)
	}

	return logs, rows.Err()
}
