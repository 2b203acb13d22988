package handlers

import (
	"net/http"

	"github.com/xcarvalho/leadtrack/internal/usecase"
)

type StatsHandler struct {
	Store *usecase.LeadStore
}

func NewStatsHandler(store *usecase.LeadStore) *StatsHandler {
	return &StatsHandler{Store: store}
}

// GetStats handles GET /api/stats.
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.Stats())
}

// GetTags handles GET /api/tags; entries are ordered most-used first.
func (h *StatsHandler) GetTags(w http.ResponseWriter, r *http.Request) {
	tags := h.Store.TagCounts()
	if tags == nil {
		tags = []usecase.TagCount{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"tags": tags})
}
