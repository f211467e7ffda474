// Package store persists chat logs and cached Scholar citation counts in
// SQLite.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/anxiangsir/homepage/pkg/errors"
)

// Role is the author of a chat message.
type Role string

// Chat roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// ChatLog is one stored chat message.
type ChatLog struct {
	ID        int64
	SessionID string
	Role      Role
	Content   string
	UserAgent string
	CreatedAt time.Time
}

// Session summarises the messages of one chat session.
type Session struct {
	SessionID      string
	MessageCount   int
	FirstMessageAt time.Time
	LastMessageAt  time.Time
}

// Store is the persistence used by the chat log and Scholar endpoints.
type Store interface {
	AppendChatLog(ctx context.Context, entry ChatLog) (ChatLog, error)
	ChatLogs(ctx context.Context, sessionID string) ([]ChatLog, error)
	Sessions(ctx context.Context) ([]Session, error)
	Citations(ctx context.Context) (value int, updatedAt time.Time, ok bool, err error)
	SetCitations(ctx context.Context, value int) error
	Close() error
}

// NormalizeSessionID validates id as a UUID and returns its canonical form.
func NormalizeSessionID(id string) (string, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", errors.NewValidationError("session_id", id, "must be a UUID")
	}
	return u.String(), nil
}

// Validate checks the fields a new chat log needs.
func (c ChatLog) Validate() error {
	switch {
	case c.SessionID == "":
		return errors.NewValidationError("session_id", nil, "is required")
	case c.Role == "":
		return errors.NewValidationError("role", nil, "is required")
	case c.Content == "":
		return errors.NewValidationError("content", nil, "is required")
	case !c.Role.Valid():
		return errors.NewValidationError("role", c.Role, "must be 'user' or 'assistant'")
	}
	_, err := NormalizeSessionID(c.SessionID)
	return err
}
