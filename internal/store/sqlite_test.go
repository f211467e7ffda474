package store

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anxiangsir/homepage/pkg/errors"
)

const (
	sessionA = "3f2504e0-4f89-11d3-9a0c-0305e82c3301"
	sessionB = "6ba7b810-9dad-11d1-80b4-00c04fd430c8"
)

// clock hands out increasing timestamps one second apart.
type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

func newTestStore(t *testing.T) (*SQLiteStore, *clock) {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	c := &clock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	s.now = c.now
	return s, c
}

func TestAppendChatLog(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	first, err := s.AppendChatLog(ctx, ChatLog{SessionID: sessionA, Role: RoleUser, Content: "hi", UserAgent: "test"})
	require.NoError(t, err)
	assert.NotZero(t, first.ID)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 1, 0, time.UTC), first.CreatedAt)

	second, err := s.AppendChatLog(ctx, ChatLog{SessionID: sessionA, Role: RoleAssistant, Content: "升级中！"})
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)

	logs, err := s.ChatLogs(ctx, sessionA)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, first, logs[0])
	assert.Equal(t, "升级中！", logs[1].Content)
	assert.Equal(t, RoleAssistant, logs[1].Role)
}

func TestAppendChatLogNormalizesSessionID(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.AppendChatLog(ctx, ChatLog{SessionID: "3F2504E0-4F89-11D3-9A0C-0305E82C3301", Role: RoleUser, Content: "x"})
	require.NoError(t, err)

	logs, err := s.ChatLogs(ctx, sessionA)
	require.NoError(t, err)
	assert.Len(t, logs, 1)
	assert.Equal(t, sessionA, logs[0].SessionID)
}

func TestAppendChatLogValidation(t *testing.T) {
	s, _ := newTestStore(t)

	tests := []struct {
		name  string
		entry ChatLog
		field string
	}{
		{name: "missing session", entry: ChatLog{Role: RoleUser, Content: "x"}, field: "session_id"},
		{name: "missing role", entry: ChatLog{SessionID: sessionA, Content: "x"}, field: "role"},
		{name: "missing content", entry: ChatLog{SessionID: sessionA, Role: RoleUser}, field: "content"},
		{name: "bad role", entry: ChatLog{SessionID: sessionA, Role: "system", Content: "x"}, field: "role"},
		{name: "bad session", entry: ChatLog{SessionID: "not-a-uuid", Role: RoleUser, Content: "x"}, field: "session_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.AppendChatLog(context.Background(), tt.entry)
			require.Error(t, err)
			var verr *errors.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestChatLogsUnknownSession(t *testing.T) {
	s, _ := newTestStore(t)

	logs, err := s.ChatLogs(context.Background(), sessionB)
	require.NoError(t, err)
	assert.NotNil(t, logs)
	assert.Empty(t, logs)

	_, err = s.ChatLogs(context.Background(), "nope")
	assert.True(t, errors.IsValidationError(err))
}

func TestSessions(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	for _, e := range []ChatLog{
		{SessionID: sessionA, Role: RoleUser, Content: "1"},
		{SessionID: sessionB, Role: RoleUser, Content: "2"},
		{SessionID: sessionA, Role: RoleAssistant, Content: "3"},
		{SessionID: sessionB, Role: RoleAssistant, Content: "4"},
		{SessionID: sessionB, Role: RoleUser, Content: "5"},
	} {
		_, err := s.AppendChatLog(ctx, e)
		require.NoError(t, err)
	}

	sessions, err := s.Sessions(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	assert.Equal(t, sessionB, sessions[0].SessionID, "most recent first")
	assert.Equal(t, 3, sessions[0].MessageCount)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 2, 0, time.UTC), sessions[0].FirstMessageAt)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 5, 0, time.UTC), sessions[0].LastMessageAt)
	assert.Equal(t, sessionA, sessions[1].SessionID)
	assert.Equal(t, 2, sessions[1].MessageCount)
}

func TestCitations(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, _, ok, err := s.Citations(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SetCitations(ctx, 1114))
	require.NoError(t, s.SetCitations(ctx, 1200))

	value, updated, ok, err := s.Citations(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1200, value)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 2, 0, time.UTC), updated)
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat.db")

	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.AppendChatLog(context.Background(), ChatLog{SessionID: sessionA, Role: RoleUser, Content: "persist"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()
	logs, err := s.ChatLogs(context.Background(), sessionA)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "persist", logs[0].Content)
}
