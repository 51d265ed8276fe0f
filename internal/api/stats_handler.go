package api

import (
	"net/http"

	"github.com/vetqa/backend/internal/domain/stats"
)

type StatsResponse struct {
	stats.Stats
	Accuracy float64 `json:"accuracy" example:"0.75"`
}

// GET /attempts
func (h *Handler) listAttempts(w http.ResponseWriter, r *http.Request) {
	attempts, err := h.store.GetAllAttempts(r.Context())
	if h.handleStoreError(w, err, "attempts") {
		return
	}
	respondJSON(w, http.StatusOK, attempts)
}

// getStats aggregates the attempt log.
// @Summary      Performance statistics
// @Tags         Stats
// @Produce      json
// @Success      200  {object}  StatsResponse
// @Router       /stats [get]
func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	attempts, err := h.store.GetAllAttempts(r.Context())
	if h.handleStoreError(w, err, "attempts") {
		return
	}
	s := stats.Aggregate(attempts)
	respondJSON(w, http.StatusOK, StatsResponse{Stats: s, Accuracy: s.Accuracy()})
}

// getFrequentErrors lists the weakest topics.
// @Summary      Frequent errors
// @Description  Topics answered more than once, lowest accuracy first, at most 10.
// @Tags         Stats
// @Produce      json
// @Success      200  {array}  stats.TopicError
// @Router       /stats/frequent-errors [get]
func (h *Handler) getFrequentErrors(w http.ResponseWriter, r *http.Request) {
	attempts, err := h.store.GetAllAttempts(r.Context())
	if h.handleStoreError(w, err, "attempts") {
		return
	}
	respondJSON(w, http.StatusOK, stats.FrequentErrors(stats.Aggregate(attempts)))
}
