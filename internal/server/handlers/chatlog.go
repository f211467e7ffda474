package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/anxiangsir/homepage/internal/server/response"
	"github.com/anxiangsir/homepage/internal/store"
	"github.com/anxiangsir/homepage/pkg/constants"
	"github.com/anxiangsir/homepage/pkg/logging"
)

// Chat log error and status messages.
const (
	msgInvalidBody     = "无效的请求数据"
	msgMissingFields   = "缺少必需字段：session_id, role, content"
	msgInvalidRole     = "role 必须是 'user' 或 'assistant'"
	msgInvalidSession  = "session_id 必须是有效的 UUID"
	msgMissingSession  = "缺少参数：sessionId"
	msgStoreDown       = "数据库不可用"
	msgQueryFailed     = "查询失败"
	msgSessionsFailed  = "获取失败"
	msgSaveSkipped     = "日志保存已跳过"
	msgSaveFailedQuiet = "日志保存失败，但不影响聊天"
)

// ChatLogRequest is the body of POST /api/chat-log.
type ChatLogRequest struct {
	SessionID string `json:"session_id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	UserAgent string `json:"user_agent,omitempty"`
}

// ChatLogEntry is one stored message as returned by GET /api/chat-log.
type ChatLogEntry struct {
	ID        int64  `json:"id"`
	SessionID string `json:"session_id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	UserAgent string `json:"user_agent"`
	CreatedAt string `json:"created_at"`
}

// SessionEntry summarises one session for GET /api/sessions.
type SessionEntry struct {
	SessionID      string `json:"sessionId"`
	MessageCount   int    `json:"messageCount"`
	FirstMessageAt string `json:"firstMessageAt"`
	LastMessageAt  string `json:"lastMessageAt"`
}

// HandleChatLog handles /api/chat-log.
func (h *Handlers) HandleChatLog(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.HandleSaveChatLog(w, r)
	case http.MethodGet:
		h.HandleListChatLogs(w, r)
	default:
		response.MethodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

// HandleSaveChatLog handles POST /api/chat-log. Storage problems never fail
// the request so the chat widget is not disturbed.
// @Summary Save chat message
// @Tags chat
// @Accept json
// @Produce json
// @Param request body ChatLogRequest true "Chat message"
// @Success 201 {object} object
// @Failure 400 {object} response.ErrorBody
// @Router /api/chat-log [post].
func (h *Handlers) HandleSaveChatLog(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		response.BadRequest(w, msgInvalidBody)
		return
	}
	var req ChatLogRequest
	if err := json.Unmarshal(body, &req); err != nil {
		response.BadRequest(w, msgInvalidBody)
		return
	}

	if req.SessionID == "" || req.Role == "" || req.Content == "" {
		response.BadRequest(w, msgMissingFields)
		return
	}
	if !store.Role(req.Role).Valid() {
		response.BadRequest(w, msgInvalidRole)
		return
	}
	sessionID, err := store.NormalizeSessionID(req.SessionID)
	if err != nil {
		response.BadRequest(w, msgInvalidSession)
		return
	}
	if req.UserAgent == "" {
		req.UserAgent = r.UserAgent()
	}

	st, err := h.app.Store()
	if err != nil || st == nil {
		logger.Warn().Err(err).Msg("Chat log store unavailable, skipping save")
		response.OK(w, map[string]any{"success": true, "message": msgSaveSkipped})
		return
	}

	saved, err := st.AppendChatLog(r.Context(), store.ChatLog{
		SessionID: sessionID,
		Role:      store.Role(req.Role),
		Content:   req.Content,
		UserAgent: req.UserAgent,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to save chat log")
		response.OK(w, map[string]any{"success": true, "message": msgSaveFailedQuiet})
		return
	}

	response.Created(w, map[string]any{
		"success":    true,
		"id":         saved.ID,
		"created_at": saved.CreatedAt.UTC().Format(constants.TimeFormatISO8601),
	})
}

// HandleListChatLogs handles GET /api/chat-log?sessionId=.
// @Summary List chat messages of a session
// @Tags chat
// @Produce json
// @Param sessionId query string true "Session UUID"
// @Success 200 {object} object
// @Failure 400 {object} response.ErrorBody
// @Failure 503 {object} response.ErrorBody
// @Router /api/chat-log [get].
func (h *Handlers) HandleListChatLogs(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("sessionId")
	if raw == "" {
		response.BadRequest(w, msgMissingSession)
		return
	}
	sessionID, err := store.NormalizeSessionID(raw)
	if err != nil {
		response.BadRequest(w, msgInvalidSession)
		return
	}

	st, ok := h.store(w, r)
	if !ok {
		return
	}

	logs, err := st.ChatLogs(r.Context(), sessionID)
	if err != nil {
		logging.FromContext(r.Context()).Error().Err(err).Msg("Failed to query chat logs")
		response.Error(w, http.StatusInternalServerError, msgQueryFailed)
		return
	}

	entries := make([]ChatLogEntry, 0, len(logs))
	for _, l := range logs {
		entries = append(entries, ChatLogEntry{
			ID:        l.ID,
			SessionID: l.SessionID,
			Role:      string(l.Role),
			Content:   l.Content,
			UserAgent: l.UserAgent,
			CreatedAt: l.CreatedAt.UTC().Format(constants.TimeFormatISO8601),
		})
	}

	response.OK(w, map[string]any{
		"success": true,
		"count":   len(entries),
		"logs":    entries,
	})
}

// HandleSessions handles GET /api/sessions.
// @Summary List chat sessions
// @Description Sessions ordered by most recent message
// @Tags chat
// @Produce json
// @Success 200 {object} object
// @Failure 503 {object} response.ErrorBody
// @Router /api/sessions [get].
func (h *Handlers) HandleSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.MethodNotAllowed(w, http.MethodGet)
		return
	}

	st, ok := h.store(w, r)
	if !ok {
		return
	}

	sessions, err := st.Sessions(r.Context())
	if err != nil {
		logging.FromContext(r.Context()).Error().Err(err).Msg("Failed to list sessions")
		response.Error(w, http.StatusInternalServerError, msgSessionsFailed)
		return
	}

	entries := make([]SessionEntry, 0, len(sessions))
	for _, s := range sessions {
		entries = append(entries, SessionEntry{
			SessionID:      s.SessionID,
			MessageCount:   s.MessageCount,
			FirstMessageAt: s.FirstMessageAt.UTC().Format(constants.TimeFormatISO8601),
			LastMessageAt:  s.LastMessageAt.UTC().Format(constants.TimeFormatISO8601),
		})
	}

	response.OK(w, map[string]any{
		"success":  true,
		"sessions": entries,
		"count":    len(entries),
	})
}

// store returns the configured store or writes 503.
func (h *Handlers) store(w http.ResponseWriter, r *http.Request) (store.Store, bool) {
	st, err := h.app.Store()
	if err != nil || st == nil {
		if err != nil {
			logging.FromContext(r.Context()).Error().Err(err).Msg("Chat log store unavailable")
		}
		response.ServiceUnavailable(w, msgStoreDown)
		return nil, false
	}
	return st, true
}
