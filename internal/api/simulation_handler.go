package api

import (
	"errors"
	"net/http"

	"github.com/vetqa/backend/internal/domain/question"
	"github.com/vetqa/backend/internal/domain/simulation"
)

// ── Request / Response types ────────────────────────────────────────────────

type ConfigureSimulationRequest struct {
	N     int      `json:"n" example:"10"`
	Areas []string `json:"areas"`
}

type AnswerSimulationRequest struct {
	Label string `json:"label" example:"A"`
}

func (r *AnswerSimulationRequest) Validate() error {
	if r.Label == "" {
		return errors.New("label is required")
	}
	return nil
}

type SimulationResponse struct {
	Status       simulation.Status  `json:"status" example:"running"`
	Config       simulation.Config  `json:"config"`
	Total        int                `json:"total"`
	CurrentIndex int                `json:"current_index"`
	Answered     int                `json:"answered"`
	Empty        bool               `json:"empty"`
	Question     *question.Question `json:"question,omitempty"`
	Result       *simulation.Result `json:"result,omitempty"`
}

func simulationResponse(s simulation.State) SimulationResponse {
	resp := SimulationResponse{
		Status:       s.Status,
		Config:       s.Config,
		Total:        len(s.Questions),
		CurrentIndex: s.CurrentIndex,
		Answered:     len(s.Answers),
		Empty:        s.Status == simulation.StatusRunning && s.Empty(),
	}
	if resp.Config.Areas == nil {
		resp.Config.Areas = []string{}
	}
	if s.Status == simulation.StatusRunning {
		if q, ok := s.Current(); ok {
			resp.Question = &q
		}
	}
	if s.Status == simulation.StatusFinished {
		res := s.Result()
		resp.Result = &res
	}
	return resp
}

// dispatch runs cmd against the caller's engine, records any attempts it
// emits and writes the resulting state.
func (h *Handler) dispatch(w http.ResponseWriter, r *http.Request, cmd simulation.Command) {
	c, err := h.clients.client(w, r)
	if h.handleStoreError(w, err, "session") {
		return
	}

	c.mu.Lock()
	attempts, err := c.sim.Dispatch(cmd)
	state := c.sim.State()
	c.mu.Unlock()
	if h.handleStoreError(w, err, "simulation") {
		return
	}

	h.recorder.RecordAll(attempts)
	respondJSON(w, http.StatusOK, simulationResponse(state))
}

// ── Handlers ────────────────────────────────────────────────────────────────

// getSimulation returns the caller's simulation state.
// @Summary      Simulation state
// @Tags         Simulation
// @Produce      json
// @Success      200  {object}  SimulationResponse
// @Router       /simulation [get]
func (h *Handler) getSimulation(w http.ResponseWriter, r *http.Request) {
	c, err := h.clients.client(w, r)
	if h.handleStoreError(w, err, "session") {
		return
	}
	c.mu.Lock()
	state := c.sim.State()
	c.mu.Unlock()
	respondJSON(w, http.StatusOK, simulationResponse(state))
}

// configureSimulation sets the question count and area filter.
// @Summary      Configure simulation
// @Tags         Simulation
// @Accept       json
// @Produce      json
// @Param        body  body      ConfigureSimulationRequest  true  "Simulation config"
// @Success      200   {object}  SimulationResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string  "not in config state"
// @Router       /simulation/config [put]
func (h *Handler) configureSimulation(w http.ResponseWriter, r *http.Request) {
	var req ConfigureSimulationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.dispatch(w, r, simulation.Configure{N: req.N, Areas: req.Areas})
}

// startSimulation samples questions and starts the clock.
// @Summary      Start simulation
// @Description  Samples min(n, candidates) questions from the configured areas. No candidates yields an empty running session.
// @Tags         Simulation
// @Produce      json
// @Success      200  {object}  SimulationResponse
// @Failure      409  {object}  map[string]string
// @Router       /simulation/start [post]
func (h *Handler) startSimulation(w http.ResponseWriter, r *http.Request) {
	questions, err := h.store.GetAllQuestions(r.Context())
	if h.handleStoreError(w, err, "questions") {
		return
	}
	h.dispatch(w, r, simulation.Start{Questions: questions})
}

// answerSimulation answers the current question and advances.
// @Summary      Answer simulation question
// @Tags         Simulation
// @Accept       json
// @Produce      json
// @Param        body  body      AnswerSimulationRequest  true  "Chosen option"
// @Success      200   {object}  SimulationResponse
// @Failure      409   {object}  map[string]string
// @Router       /simulation/answer [post]
func (h *Handler) answerSimulation(w http.ResponseWriter, r *http.Request) {
	var req AnswerSimulationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	h.dispatch(w, r, simulation.Answer{Label: req.Label})
}

// POST /simulation/finish
func (h *Handler) finishSimulation(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, simulation.Finish{})
}

// POST /simulation/reset
func (h *Handler) resetSimulation(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, simulation.Reset{})
}
