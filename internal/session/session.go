package session

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

const fileName = "session.json"

// credentials is the on-disk shape of a session. The token is opaque
// material issued by the backend; nothing here is interpreted beyond the
// narrow accessors below.
type credentials struct {
	SessionID string `json:"session_id"`
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// Store holds the bearer credentials for the current session, backed by a
// single JSON file in the data directory. An absent or unreadable file means
// "anonymous". Writes are last-write-wins; the mutex only guards against
// torn reads within one process.
type Store struct {
	mu   sync.Mutex
	path string
	cur  credentials
}

// Open loads the session file from dataDir, if any.
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	s := &Store{path: filepath.Join(dataDir, fileName)}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("reading session file: %w", err)
	}

	// A corrupt session file is treated as logged out rather than an error.
	if err := json.Unmarshal(raw, &s.cur); err != nil {
		s.cur = credentials{}
	}
	return s, nil
}

// Save replaces the stored credentials with a fresh session.
func (s *Store) Save(token, tokenType, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cur = credentials{
		SessionID: uuid.New().String(),
		Token:     token,
		TokenType: tokenType,
		Email:     email,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	raw, err := json.MarshalIndent(s.cur, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	return nil
}

// Clear logs out: credentials are dropped and the session file removed.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cur = credentials{}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}

// Token returns the bearer token and whether one is present.
func (s *Store) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur.Token, s.cur.Token != ""
}

// IsAuthenticated reports whether a bearer token is stored.
func (s *Store) IsAuthenticated() bool {
	_, ok := s.Token()
	return ok
}

// UserEmail returns the email the session was created for, or "".
func (s *Store) UserEmail() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur.Email
}

// SessionID returns the local identifier of the current session, or "".
func (s *Store) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur.SessionID
}
