package api

import (
	"errors"
	"net/http"

	"github.com/vetqa/backend/internal/domain/study"
)

// ── Request / Response types ────────────────────────────────────────────────

type StudyModeRequest struct {
	Mode string `json:"mode" example:"quiz"`
	Area string `json:"area" example:"CLÍNICA MÉDICA"`
}

type StudySelectRequest struct {
	Label string `json:"label" example:"B"`
}

func (r *StudySelectRequest) Validate() error {
	if r.Label == "" {
		return errors.New("label is required")
	}
	return nil
}

// withStudy refreshes the caller's controller from the store, runs fn under
// the client lock and writes the resulting view.
func (h *Handler) withStudy(w http.ResponseWriter, r *http.Request, fn func(c *study.Controller) error) {
	c, err := h.clients.client(w, r)
	if h.handleStoreError(w, err, "session") {
		return
	}
	snap, err := h.studySnapshot(r.Context())
	if h.handleStoreError(w, err, "study") {
		return
	}

	c.mu.Lock()
	c.study.Update(snap)
	err = fn(c.study)
	view := c.study.View()
	c.mu.Unlock()

	if h.handleStoreError(w, err, "study") {
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// ── Handlers ────────────────────────────────────────────────────────────────

// getStudy returns the caller's study view.
// @Summary      Study state
// @Tags         Study
// @Produce      json
// @Success      200  {object}  study.View
// @Router       /study [get]
func (h *Handler) getStudy(w http.ResponseWriter, r *http.Request) {
	h.withStudy(w, r, func(*study.Controller) error { return nil })
}

// setStudyMode switches mode and area, reshuffling the pool.
// @Summary      Set study mode
// @Tags         Study
// @Accept       json
// @Produce      json
// @Param        body  body      StudyModeRequest  true  "Mode and area; empty area means all"
// @Success      200   {object}  study.View
// @Failure      400   {object}  map[string]string
// @Router       /study/mode [put]
func (h *Handler) setStudyMode(w http.ResponseWriter, r *http.Request) {
	var req StudyModeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	mode, err := study.ParseMode(req.Mode)
	if h.handleStoreError(w, err, "study") {
		return
	}

	h.withStudy(w, r, func(c *study.Controller) error {
		c.SetArea(req.Area)
		return c.SetMode(mode)
	})
}

// POST /study/select
func (h *Handler) selectStudyOption(w http.ResponseWriter, r *http.Request) {
	var req StudySelectRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	h.withStudy(w, r, func(c *study.Controller) error {
		return c.Select(req.Label)
	})
}

// confirmStudyAnswer locks in the selection and records the attempt.
// @Summary      Confirm answer
// @Tags         Study
// @Produce      json
// @Success      200  {object}  study.View
// @Failure      400  {object}  map[string]string  "nothing selected"
// @Failure      409  {object}  map[string]string  "already confirmed"
// @Router       /study/confirm [post]
func (h *Handler) confirmStudyAnswer(w http.ResponseWriter, r *http.Request) {
	h.withStudy(w, r, func(c *study.Controller) error {
		a, err := c.Confirm()
		if err != nil {
			return err
		}
		h.recorder.Record(a)
		return nil
	})
}

// POST /study/next
func (h *Handler) nextStudyQuestion(w http.ResponseWriter, r *http.Request) {
	h.withStudy(w, r, func(c *study.Controller) error { return c.Next() })
}

// POST /study/previous
func (h *Handler) previousStudyQuestion(w http.ResponseWriter, r *http.Request) {
	h.withStudy(w, r, func(c *study.Controller) error { return c.Previous() })
}
