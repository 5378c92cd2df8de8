package auth

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/baraka-desk/backend/internal/storage/sqlite"
	"github.com/baraka-desk/backend/pkg/logger"
	"github.com/baraka-desk/backend/pkg/password"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type Session struct {
	Token    string
	Username string
	Role     string
}

// Service verifies credentials against the users table and tracks
// bearer tokens in memory. Tokens do not survive a restart, which is
// acceptable for a single-instance support desk.
type Service struct {
	db *sqlite.Client

	mu       sync.RWMutex
	sessions map[string]Session
}

func NewService(db *sqlite.Client) *Service {
	return &Service{
		db:       db,
		sessions: make(map[string]Session),
	}
}

// SeedDemoUsers creates the demo accounts, upgrading any legacy
// credential hashes in place.
func (s *Service) SeedDemoUsers() error {
	if err := s.db.SeedUser("admin", "admin123", RoleAdmin); err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}
	if err := s.db.SeedUser("user", "user123", RoleUser); err != nil {
		return fmt.Errorf("failed to seed user: %w", err)
	}
	return nil
}

// Login verifies the credentials and issues a session token. A nil
// session with nil error means the credentials were rejected.
func (s *Service) Login(username, plain string) (*Session, error) {
	user, err := s.db.GetUser(username)
	if err != nil {
		return nil, fmt.Errorf("failed to verify user: %w", err)
	}
	if user == nil || !password.Verify(plain, user.PWHash) {
		logger.Warn("Login rejected", zap.String("username", username))
		return nil, nil
	}

	session := Session{
		Token:    uuid.New().String(),
		Username: user.Username,
		Role:     user.Role,
	}

	s.mu.Lock()
	s.sessions[session.Token] = session
	s.mu.Unlock()

	logger.Info("User logged in", zap.String("username", username), zap.String("role", user.Role))
	return &session, nil
}

func (s *Service) Logout(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// Lookup resolves a bearer token to its session.
func (s *Service) Lookup(token string) (Session, bool) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()
	return session, ok
}
