package store

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/agentstation/utc"
	_ "modernc.org/sqlite"

	"github.com/anxiangsir/homepage/pkg/errors"
)

const citationsKey = "citations"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db  *sql.DB
	mu  sync.RWMutex
	now func() time.Time
}

// Open opens or creates a SQLite store. Use ":memory:" for an in-memory
// database, or a file path for persistent storage.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.WrapResource("open", "database", path, err)
	}
	// Every connection to ":memory:" is a distinct database.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db, now: func() time.Time { return utc.Now().Time }}
	if err := s.initialize(); err != nil {
		_ = db.Close()
		return nil, errors.WrapResource("initialize", "database", path, err)
	}
	return s, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS chat_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		role TEXT NOT NULL,
		content TEXT NOT NULL,
		user_agent TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_chat_logs_session ON chat_logs(session_id, created_at);
	CREATE TABLE IF NOT EXISTS scholar_cache (
		key TEXT PRIMARY KEY,
		value INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// AppendChatLog validates and stores entry, returning it with ID and
// CreatedAt set.
func (s *SQLiteStore) AppendChatLog(ctx context.Context, entry ChatLog) (ChatLog, error) {
	if err := entry.Validate(); err != nil {
		return ChatLog{}, err
	}
	entry.SessionID, _ = NormalizeSessionID(entry.SessionID)
	entry.CreatedAt = s.now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO chat_logs (session_id, role, content, user_agent, created_at) VALUES (?, ?, ?, ?, ?)",
		entry.SessionID, string(entry.Role), entry.Content, entry.UserAgent, entry.CreatedAt.UnixNano(),
	)
	if err != nil {
		return ChatLog{}, errors.WrapResource("store", "chat log", entry.SessionID, err)
	}
	entry.ID, err = res.LastInsertId()
	if err != nil {
		return ChatLog{}, errors.WrapResource("store", "chat log", entry.SessionID, err)
	}
	return entry, nil
}

// ChatLogs returns a session's messages, oldest first.
func (s *SQLiteStore) ChatLogs(ctx context.Context, sessionID string) ([]ChatLog, error) {
	id, err := NormalizeSessionID(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, session_id, role, content, user_agent, created_at FROM chat_logs WHERE session_id = ? ORDER BY created_at, id",
		id,
	)
	if err != nil {
		return nil, errors.WrapResource("query", "chat log", id, err)
	}
	defer func() { _ = rows.Close() }()

	logs := []ChatLog{}
	for rows.Next() {
		var (
			l       ChatLog
			role    string
			created int64
		)
		if err := rows.Scan(&l.ID, &l.SessionID, &role, &l.Content, &l.UserAgent, &created); err != nil {
			return nil, errors.WrapResource("scan", "chat log", id, err)
		}
		l.Role = Role(role)
		l.CreatedAt = time.Unix(0, created).UTC()
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WrapResource("query", "chat log", id, err)
	}
	return logs, nil
}

// Sessions lists every session, most recently active first.
func (s *SQLiteStore) Sessions(ctx context.Context) ([]Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT session_id, COUNT(*), MIN(created_at), MAX(created_at) AS last_at
		FROM chat_logs
		GROUP BY session_id
		ORDER BY last_at DESC`)
	if err != nil {
		return nil, errors.WrapResource("query", "sessions", "", err)
	}
	defer func() { _ = rows.Close() }()

	sessions := []Session{}
	for rows.Next() {
		var (
			sess        Session
			first, last int64
		)
		if err := rows.Scan(&sess.SessionID, &sess.MessageCount, &first, &last); err != nil {
			return nil, errors.WrapResource("scan", "sessions", "", err)
		}
		sess.FirstMessageAt = time.Unix(0, first).UTC()
		sess.LastMessageAt = time.Unix(0, last).UTC()
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WrapResource("query", "sessions", "", err)
	}
	return sessions, nil
}

// Citations returns the cached citation count and when it was stored.
func (s *SQLiteStore) Citations(ctx context.Context) (value int, updatedAt time.Time, ok bool, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var updated int64
	err = s.db.QueryRowContext(ctx, "SELECT value, updated_at FROM scholar_cache WHERE key = ?", citationsKey).
		Scan(&value, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, time.Time{}, false, nil
	}
	if err != nil {
		return 0, time.Time{}, false, errors.WrapResource("query", "scholar cache", citationsKey, err)
	}
	return value, time.Unix(0, updated).UTC(), true, nil
}

// SetCitations stores the citation count.
func (s *SQLiteStore) SetCitations(ctx context.Context, value int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO scholar_cache (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		citationsKey, value, s.now().UTC().UnixNano(),
	)
	return errors.WrapResource("store", "scholar cache", citationsKey, err)
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
