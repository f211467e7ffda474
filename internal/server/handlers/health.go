package handlers

import (
	"net/http"
	"time"

	"github.com/anxiangsir/homepage/internal/server/response"
)

// HandleHealth handles GET /health.
// @Summary Health check
// @Description Liveness probe with store status
// @Tags health
// @Produce json
// @Success 200 {object} object
// @Router /health [get].
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	storeStatus := "disabled"
	if st, err := h.app.Store(); err != nil {
		storeStatus = "unavailable"
	} else if st != nil {
		storeStatus = "ok"
	}

	response.OK(w, map[string]any{
		"status":         "healthy",
		"service":        "homepage",
		"version":        h.app.Version(),
		"uptime_seconds": int64(h.now().Sub(h.startTime) / time.Second),
		"store":          storeStatus,
		"cache_items":    h.cache.ItemCount(),
	})
}
