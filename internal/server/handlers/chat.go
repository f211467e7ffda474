package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/anxiangsir/homepage/internal/server/response"
	"github.com/anxiangsir/homepage/internal/store"
	"github.com/anxiangsir/homepage/pkg/constants"
	"github.com/anxiangsir/homepage/pkg/logging"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 1 << 20

// Chat error messages returned to the browser widget.
const (
	msgInvalidChat = "无效的消息格式"
)

// ChatMessage is one validated turn of a chat request.
type ChatMessage struct {
	Role    store.Role `json:"role"`
	Content string     `json:"content"`
}

// ChatResponse is the body of a successful chat request.
type ChatResponse struct {
	Reply     string `json:"reply"`
	Timestamp string `json:"timestamp"`
}

// ParseChatRequest extracts the conversation from a chat request body. A
// non-empty "messages" array takes precedence and keeps only entries with a
// known role and non-blank content; otherwise "message" must be a non-blank
// string.
func ParseChatRequest(body []byte) ([]ChatMessage, bool) {
	var req map[string]json.RawMessage
	if err := json.Unmarshal(body, &req); err != nil || len(req) == 0 {
		return nil, false
	}

	if raw, ok := req["messages"]; ok {
		var entries []any
		if err := json.Unmarshal(raw, &entries); err == nil && len(entries) > 0 {
			var out []ChatMessage
			for _, e := range entries {
				m, ok := e.(map[string]any)
				if !ok {
					continue
				}
				role, _ := m["role"].(string)
				content, _ := m["content"].(string)
				content = strings.TrimSpace(content)
				if !store.Role(role).Valid() || content == "" {
					continue
				}
				out = append(out, ChatMessage{Role: store.Role(role), Content: content})
			}
			return out, len(out) > 0
		}
	}

	var message string
	if raw, ok := req["message"]; !ok || json.Unmarshal(raw, &message) != nil {
		return nil, false
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, false
	}
	return []ChatMessage{{Role: store.RoleUser, Content: message}}, true
}

// HandleChat handles POST /api/chat. The reply is a fixed placeholder.
// @Summary Chat
// @Description Answer a chat message with the placeholder reply
// @Tags chat
// @Accept json
// @Produce json
// @Param request body object true "{message} or {messages:[{role,content}]}"
// @Success 200 {object} ChatResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 405 {object} response.ErrorBody
// @Router /api/chat [post].
func (h *Handlers) HandleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.MethodNotAllowed(w, http.MethodPost, http.MethodOptions)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		response.BadRequest(w, msgInvalidChat)
		return
	}

	messages, ok := ParseChatRequest(body)
	if !ok {
		h.metrics.ChatMessage("invalid")
		response.BadRequest(w, msgInvalidChat)
		return
	}

	logging.FromContext(r.Context()).Debug().Int("messages", len(messages)).Msg("Chat request")
	h.metrics.ChatMessage("ok")

	response.OK(w, ChatResponse{
		Reply:     constants.ChatPlaceholderReply,
		Timestamp: h.now().UTC().Format(constants.TimeFormatISO8601),
	})
}
