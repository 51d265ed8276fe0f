package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vetqa/backend/internal/service"
)

type ReviewResponse struct {
	QuestionID string `json:"question_id"`
	Text       string `json:"text"`
}

// reviewQuestion generates a deep review.
// @Summary      Generate deep review
// @Description  Synchronous by default; the call is aborted when the client disconnects. With async=true the review is queued and 202 returned.
// @Tags         Review
// @Produce      json
// @Param        id     path      string  true   "Question ID"
// @Param        async  query     bool    false  "Queue in the background"
// @Success      200    {object}  ReviewResponse
// @Success      202    {object}  service.ReviewResult
// @Failure      404    {object}  map[string]string
// @Failure      502    {object}  map[string]string
// @Router       /questions/{id}/review [post]
func (h *Handler) reviewQuestion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q, err := h.store.GetQuestion(ctx, chi.URLParam(r, "id"))
	if h.handleStoreError(w, err, "question") {
		return
	}

	if r.URL.Query().Get("async") == "true" {
		res, err := h.reviews.Request(ctx, q)
		if h.handleStoreError(w, err, "review") {
			return
		}
		status := http.StatusAccepted
		if res.Status == service.ReviewDone {
			status = http.StatusOK
		}
		respondJSON(w, status, res)
		return
	}

	text, err := h.reviews.Review(ctx, q)
	if h.handleStoreError(w, err, "review") {
		return
	}
	respondJSON(w, http.StatusOK, ReviewResponse{QuestionID: q.ID, Text: text})
}

// getReview returns a cached or background review.
// @Summary      Get deep review
// @Tags         Review
// @Produce      json
// @Param        id   path      string  true  "Question ID"
// @Success      200  {object}  service.ReviewResult
// @Success      202  {object}  service.ReviewResult  "still generating"
// @Failure      404  {object}  map[string]string
// @Router       /questions/{id}/review [get]
func (h *Handler) getReview(w http.ResponseWriter, r *http.Request) {
	res, ok := h.reviews.Get(chi.URLParam(r, "id"))
	if !ok {
		respondError(w, http.StatusNotFound, "review not found")
		return
	}
	status := http.StatusOK
	if res.Status == service.ReviewPending {
		status = http.StatusAccepted
	}
	respondJSON(w, status, res)
}

// DELETE /questions/{id}/review
func (h *Handler) cancelReview(w http.ResponseWriter, r *http.Request) {
	if !h.reviews.Cancel(chi.URLParam(r, "id")) {
		respondError(w, http.StatusNotFound, "no pending review")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
