package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/vetqa/backend/internal/domain/simulation"
	"github.com/vetqa/backend/internal/domain/stats"
	"github.com/vetqa/backend/internal/domain/study"
	"github.com/vetqa/backend/internal/reviewer"
	"github.com/vetqa/backend/internal/service"
	"github.com/vetqa/backend/internal/store"
)

// Handler holds all dependencies needed by HTTP handlers.
// Instead of relying on package-level globals, every handler method
// receives its dependencies through this struct.
type Handler struct {
	store     store.Store
	recorder  *service.AttemptRecorder
	reviews   *service.ReviewService
	clients   *ClientRegistry
	logger    *slog.Logger
	chunkSize int
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(s store.Store, recorder *service.AttemptRecorder, reviews *service.ReviewService, clients *ClientRegistry, chunkSize int, logger *slog.Logger) *Handler {
	return &Handler{
		store:     s,
		recorder:  recorder,
		reviews:   reviews,
		clients:   clients,
		logger:    logger,
		chunkSize: chunkSize,
	}
}

const maxBodyBytes = 32 << 20

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON decodes the request body into v, writing a 400 on failure.
// Returns false if the caller should return.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return false
	}
	return true
}

type validator interface {
	Validate() error
}

func decodeAndValidate(w http.ResponseWriter, r *http.Request, v validator) bool {
	if !decodeJSON(w, r, v) {
		return false
	}
	if err := v.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// handleStoreError maps domain and store errors to HTTP responses.
// Returns true if an error was handled (caller should return).
func (h *Handler) handleStoreError(w http.ResponseWriter, err error, entity string) bool {
	if err == nil {
		return false
	}

	var reviewErr *reviewer.ReviewError
	switch {
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, entity+" not found")
	case errors.Is(err, store.ErrUnknownCollection):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrStorageUnavailable):
		h.logger.Error("storage unavailable", "error", err, "entity", entity)
		respondError(w, http.StatusServiceUnavailable, "storage unavailable")
	case errors.Is(err, simulation.ErrInvalidConfig),
		errors.Is(err, study.ErrInvalidMode),
		errors.Is(err, study.ErrNoSelection),
		errors.Is(err, study.ErrUnknownOption):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, simulation.ErrInvalidTransition),
		errors.Is(err, study.ErrNoQuestion),
		errors.Is(err, study.ErrNotConfirmed),
		errors.Is(err, study.ErrAlreadyConfirmed):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, context.Canceled):
		h.logger.Info("request cancelled", "entity", entity)
		respondError(w, http.StatusServiceUnavailable, "request cancelled")
	case errors.As(err, &reviewErr):
		h.logger.Error("review failed", "error", err, "entity", entity)
		respondError(w, http.StatusBadGateway, reviewErr.Error())
	default:
		h.logger.Error("store error", "error", err, "entity", entity)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
	return true
}

// studySnapshot reads everything a study controller selects from.
func (h *Handler) studySnapshot(ctx context.Context) (study.Snapshot, error) {
	questions, err := h.store.GetAllQuestions(ctx)
	if err != nil {
		return study.Snapshot{}, err
	}
	favorites, err := h.store.GetSet(ctx, store.Favorites)
	if err != nil {
		return study.Snapshot{}, err
	}
	toReview, err := h.store.GetSet(ctx, store.ToReview)
	if err != nil {
		return study.Snapshot{}, err
	}
	attempts, err := h.store.GetAllAttempts(ctx)
	if err != nil {
		return study.Snapshot{}, err
	}

	return study.Snapshot{
		Questions:   questions,
		Favorites:   favorites,
		ToReview:    toReview,
		ErrorTopics: stats.FrequentErrorTopics(stats.Aggregate(attempts)),
	}, nil
}
