package handlers

import (
	"net/http"

	"github.com/anxiangsir/homepage/internal/server/response"
	"github.com/anxiangsir/homepage/pkg/logging"
	"github.com/anxiangsir/homepage/pkg/stars"
)

const starsCacheKey = "stars"

// StarsResponse is the body of GET /api/stars.
type StarsResponse struct {
	Results []stars.Result `json:"results"`
	Cached  bool           `json:"cached"`
}

// HandleStars handles GET /api/stars. Results are cached only when at least
// one repository was fetched.
// @Summary GitHub star counts
// @Tags stars
// @Produce json
// @Success 200 {object} StarsResponse
// @Failure 503 {object} response.ErrorBody
// @Router /api/stars [get].
func (h *Handlers) HandleStars(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.MethodNotAllowed(w, http.MethodGet)
		return
	}

	loader, err := h.app.Stars()
	if err != nil || loader == nil {
		if err != nil {
			logging.FromContext(r.Context()).Error().Err(err).Msg("Star loader unavailable")
		}
		response.ServiceUnavailable(w, "Star counts unavailable")
		return
	}

	v, cached := h.cache.GetOrLoad(starsCacheKey, func() (any, bool) {
		results := loader.LoadAll(r.Context(), nil)
		anyOK := false
		for _, res := range results {
			h.metrics.StarFetch(res.OK)
			anyOK = anyOK || res.OK
		}
		return results, anyOK
	})

	response.OK(w, StarsResponse{Results: v.([]stars.Result), Cached: cached})
}
