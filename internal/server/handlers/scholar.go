package handlers

import (
	"net/http"

	"github.com/anxiangsir/homepage/internal/scholar"
	"github.com/anxiangsir/homepage/internal/server/response"
	"github.com/anxiangsir/homepage/pkg/constants"
	"github.com/anxiangsir/homepage/pkg/logging"
)

// HandleScholar handles GET /api/scholar.
// @Summary Citation count
// @Description Google Scholar citation count with its source (cache, scholar, stale_cache, fallback)
// @Tags scholar
// @Produce json
// @Success 200 {object} scholar.Result
// @Router /api/scholar [get].
func (h *Handlers) HandleScholar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.MethodNotAllowed(w, http.MethodGet)
		return
	}

	result := scholar.Result{Citations: constants.FallbackCitations, Source: scholar.SourceFallback}
	svc, err := h.app.Scholar()
	switch {
	case err != nil:
		logging.FromContext(r.Context()).Warn().Err(err).Msg("Scholar service unavailable")
	case svc != nil:
		result = svc.Citations(r.Context())
	}

	h.metrics.ScholarLookup(result.Source)
	response.OK(w, result)
}
