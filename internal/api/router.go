package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter wires every route onto a chi router.
// Middleware chain: RequestID → Recoverer → Logging → CORS → routes.
func NewRouter(h *Handler, corsOrigins []string, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer)
	r.Use(Logging(logger))
	r.Use(CORS(corsOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Questions
	r.Route("/questions", func(r chi.Router) {
		r.Get("/", h.listQuestions)
		r.Delete("/", h.clearQuestions)
		r.Post("/import", h.importQuestions)
		r.Post("/ingest-text", h.ingestText)

		r.Get("/{id}", h.getQuestion)
		r.Post("/{id}/review", h.reviewQuestion)
		r.Get("/{id}/review", h.getReview)
		r.Delete("/{id}/review", h.cancelReview)
	})
	r.Get("/export", h.exportAll)

	// Favorites / to-review
	r.Get("/sets/{collection}", h.getSet)
	r.Post("/sets/{collection}/{id}/toggle", h.toggleSet)

	// Attempts & statistics
	r.Get("/attempts", h.listAttempts)
	r.Get("/stats", h.getStats)
	r.Get("/stats/frequent-errors", h.getFrequentErrors)

	// Simulation
	r.Route("/simulation", func(r chi.Router) {
		r.Get("/", h.getSimulation)
		r.Put("/config", h.configureSimulation)
		r.Post("/start", h.startSimulation)
		r.Post("/answer", h.answerSimulation)
		r.Post("/finish", h.finishSimulation)
		r.Post("/reset", h.resetSimulation)
	})

	// Study session
	r.Route("/study", func(r chi.Router) {
		r.Get("/", h.getStudy)
		r.Put("/mode", h.setStudyMode)
		r.Post("/select", h.selectStudyOption)
		r.Post("/confirm", h.confirmStudyAnswer)
		r.Post("/next", h.nextStudyQuestion)
		r.Post("/previous", h.previousStudyQuestion)
	})

	// Swagger UI served at /swagger/
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}
