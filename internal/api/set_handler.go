package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vetqa/backend/internal/store"
)

type SetResponse struct {
	Collection string   `json:"collection" example:"favorites"`
	IDs        []string `json:"ids"`
}

// getSet lists a membership set.
// @Summary      Get favorites or to-review
// @Tags         Sets
// @Produce      json
// @Param        collection  path      string  true  "favorites or to_review"
// @Success      200         {object}  SetResponse
// @Failure      404         {object}  map[string]string
// @Router       /sets/{collection} [get]
func (h *Handler) getSet(w http.ResponseWriter, r *http.Request) {
	c, err := store.ParseCollection(chi.URLParam(r, "collection"))
	if h.handleStoreError(w, err, "collection") {
		return
	}

	set, err := h.store.GetSet(r.Context(), c)
	if h.handleStoreError(w, err, "collection") {
		return
	}
	respondJSON(w, http.StatusOK, SetResponse{Collection: string(c), IDs: store.SortedIDs(set)})
}

// toggleSet flips membership of one question.
// @Summary      Toggle membership
// @Tags         Sets
// @Produce      json
// @Param        collection  path      string  true  "favorites or to_review"
// @Param        id          path      string  true  "Question ID"
// @Success      200         {object}  SetResponse
// @Failure      404         {object}  map[string]string
// @Router       /sets/{collection}/{id}/toggle [post]
func (h *Handler) toggleSet(w http.ResponseWriter, r *http.Request) {
	c, err := store.ParseCollection(chi.URLParam(r, "collection"))
	if h.handleStoreError(w, err, "collection") {
		return
	}

	set, err := h.store.Toggle(r.Context(), c, chi.URLParam(r, "id"))
	if h.handleStoreError(w, err, "collection") {
		return
	}
	respondJSON(w, http.StatusOK, SetResponse{Collection: string(c), IDs: store.SortedIDs(set)})
}
