package api

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vetqa/backend/internal/domain/question"
	"github.com/vetqa/backend/internal/ingest"
)

// ── Request / Response types ────────────────────────────────────────────────

type IngestTextRequest struct {
	Label  string             `json:"label" example:"AI"`
	Blocks []ingest.TextBlock `json:"blocks"`
}

func (r *IngestTextRequest) Validate() error {
	if len(r.Blocks) == 0 {
		return errors.New("blocks is required")
	}
	return nil
}

// ── Handlers ────────────────────────────────────────────────────────────────

// listQuestions lists stored questions.
// @Summary      List questions
// @Description  Returns every stored question, optionally filtered by area, topic or status.
// @Tags         Questions
// @Produce      json
// @Param        area    query     string  false  "Area tag"
// @Param        topic   query     string  false  "Topic tag"
// @Param        status  query     string  false  "approved, pending or rejected"
// @Success      200     {array}   question.Question
// @Failure      503     {object}  map[string]string
// @Router       /questions [get]
func (h *Handler) listQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.store.GetAllQuestions(r.Context())
	if h.handleStoreError(w, err, "questions") {
		return
	}

	area := r.URL.Query().Get("area")
	topic := r.URL.Query().Get("topic")
	status := question.Status(r.URL.Query().Get("status"))

	out := make([]question.Question, 0, len(questions))
	for _, q := range questions {
		if area != "" && !q.HasArea(area) {
			continue
		}
		if topic != "" && !q.HasAnyTopic(map[string]bool{topic: true}) {
			continue
		}
		if status != "" && q.Status != status {
			continue
		}
		out = append(out, q)
	}

	respondJSON(w, http.StatusOK, out)
}

// getQuestion returns one question.
// @Summary      Get a question
// @Tags         Questions
// @Produce      json
// @Param        id   path      string  true  "Question ID"
// @Success      200  {object}  question.Question
// @Failure      404  {object}  map[string]string
// @Router       /questions/{id} [get]
func (h *Handler) getQuestion(w http.ResponseWriter, r *http.Request) {
	q, err := h.store.GetQuestion(r.Context(), chi.URLParam(r, "id"))
	if h.handleStoreError(w, err, "question") {
		return
	}
	respondJSON(w, http.StatusOK, q)
}

// importQuestions upserts a bank document.
// @Summary      Import questions
// @Description  Accepts {"items": [...]} or a bare array. Invalid records are skipped and reported, never fatal.
// @Tags         Questions
// @Accept       json
// @Produce      json
// @Success      200  {object}  store.UpsertResult
// @Failure      400  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /questions/import [post]
func (h *Handler) importQuestions(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read body")
		return
	}
	items, err := ingest.ParseBank(body)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.store.UpsertMany(r.Context(), items, h.chunkSize)
	if h.handleStoreError(w, err, "questions") {
		return
	}
	ingest.LogSummary(h.logger, res)
	respondJSON(w, http.StatusOK, res)
}

// ingestText stores question blocks extracted from free text.
// @Summary      Ingest text blocks
// @Description  Builds pending questions from extracted blocks, classifying areas by keyword when no guess is given.
// @Tags         Questions
// @Accept       json
// @Produce      json
// @Param        body  body      IngestTextRequest  true  "Blocks to ingest"
// @Success      200   {object}  store.UpsertResult
// @Failure      400   {object}  map[string]string
// @Router       /questions/ingest-text [post]
func (h *Handler) ingestText(w http.ResponseWriter, r *http.Request) {
	var req IngestTextRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	res, err := ingest.IngestText(r.Context(), h.store, req.Blocks, req.Label, time.Now(), h.chunkSize)
	if h.handleStoreError(w, err, "questions") {
		return
	}
	ingest.LogSummary(h.logger, res)
	respondJSON(w, http.StatusOK, res)
}

// clearQuestions removes every question. Attempts and sets are kept.
// @Summary      Clear questions
// @Tags         Questions
// @Success      204
// @Router       /questions [delete]
func (h *Handler) clearQuestions(w http.ResponseWriter, r *http.Request) {
	if h.handleStoreError(w, h.store.ClearQuestions(r.Context()), "questions") {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// exportAll dumps the whole store.
// @Summary      Export all data
// @Description  Questions (as a re-importable bank), favorites, to-review and attempts.
// @Tags         Export
// @Produce      json
// @Success      200  {object}  ingest.Export
// @Router       /export [get]
func (h *Handler) exportAll(w http.ResponseWriter, r *http.Request) {
	exp, err := ingest.BuildExport(r.Context(), h.store, time.Now())
	if h.handleStoreError(w, err, "export") {
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="vetqa-export.json"`)
	respondJSON(w, http.StatusOK, exp)
}
