package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vetqa/backend/internal/api"
	"github.com/vetqa/backend/internal/domain/question"
	"github.com/vetqa/backend/internal/reviewer"
	"github.com/vetqa/backend/internal/service"
	"github.com/vetqa/backend/internal/store"
)

type testEnv struct {
	srv      *httptest.Server
	client   *http.Client
	store    *store.MemoryStore
	recorder *service.AttemptRecorder
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := store.NewMemory()
	recorder := service.NewAttemptRecorder(s, logger)
	reviews := service.NewReviewService(reviewer.OfflineReviewer{}, 1, logger)
	t.Cleanup(reviews.Close)

	h := api.NewHandler(s, recorder, reviews, api.NewClientRegistry("test-secret"), 0, logger)
	srv := httptest.NewServer(api.NewRouter(h, []string{"http://localhost:5173"}, logger))
	t.Cleanup(srv.Close)

	jar, _ := cookiejar.New(nil)
	return &testEnv{srv: srv, client: &http.Client{Jar: jar}, store: s, recorder: recorder}
}

// seed stores n questions q0..q(n-1) in area, each answered by "A".
func (e *testEnv) seed(t *testing.T, n int, area, topic string) {
	t.Helper()
	raws := make([]any, n)
	for i := range raws {
		raws[i] = map[string]any{
			"id":         fmt.Sprintf("%s-%d", topic, i),
			"area_tags":  []any{area},
			"topic_tags": []any{topic},
			"stem":       "Stem",
			"options": []any{
				map[string]any{"label": "A", "text": "a"},
				map[string]any{"label": "B", "text": "b"},
			},
			"answer_key": "A",
		}
	}
	if _, err := e.store.UpsertMany(context.Background(), raws, 0); err != nil {
		t.Fatalf("failed to seed: %v", err)
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) (int, []byte) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	}
	req, _ := http.NewRequest(method, e.srv.URL+path, rd)
	req.Header.Set("Content-Type", "application/json")
	resp, err := e.client.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, data
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("failed to decode %s: %v", data, err)
	}
	return v
}

// ============================================================================
// Questions
// ============================================================================

func TestHealth(t *testing.T) {
	e := newTestEnv(t)
	status, _ := e.do(t, http.MethodGet, "/health", nil)
	if status != http.StatusOK {
		t.Errorf("expected 200, got %d", status)
	}
}

func TestQuestions_EmptyIsArray(t *testing.T) {
	e := newTestEnv(t)
	status, body := e.do(t, http.MethodGet, "/questions", nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if string(bytes.TrimSpace(body)) != "[]" {
		t.Errorf("expected empty array, got %s", body)
	}
}

func TestImport_SkipsInvalid(t *testing.T) {
	e := newTestEnv(t)
	doc := map[string]any{"items": []any{
		map[string]any{"id": "x1", "stem": "S", "options": []any{map[string]any{"label": "A", "text": "a"}}, "answer_key": "A"},
		map[string]any{"id": "x2", "stem": "S", "options": []any{map[string]any{"label": "A", "text": "a"}}, "answer_key": "Z"},
	}}

	status, body := e.do(t, http.MethodPost, "/questions/import", doc)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}
	res := decode[store.UpsertResult](t, body)
	if res.Inserted != 1 || res.Skipped != 1 || res.Errors[0].Reason != question.ReasonAnswerKeyUnknown {
		t.Errorf("unexpected result %+v", res)
	}

	status, _ = e.do(t, http.MethodGet, "/questions/x1", nil)
	if status != http.StatusOK {
		t.Errorf("expected imported question, got %d", status)
	}
	status, _ = e.do(t, http.MethodGet, "/questions/x2", nil)
	if status != http.StatusNotFound {
		t.Errorf("expected 404 for skipped question, got %d", status)
	}
}

func TestListQuestions_FilterByArea(t *testing.T) {
	e := newTestEnv(t)
	e.seed(t, 2, "CIRURGIA", "Fraturas")
	e.seed(t, 3, "CLÍNICA MÉDICA", "Cinomose")

	_, body := e.do(t, http.MethodGet, "/questions?area=CIRURGIA", nil)
	qs := decode[[]question.Question](t, body)
	if len(qs) != 2 {
		t.Errorf("expected 2 questions, got %d", len(qs))
	}
}

func TestIngestText(t *testing.T) {
	e := newTestEnv(t)
	req := map[string]any{
		"label": "lote",
		"blocks": []any{map[string]any{
			"stem":       "Dose de propofol?",
			"options":    []any{map[string]any{"label": "A", "text": "4 mg/kg"}},
			"answer_key": "A",
		}},
	}

	status, body := e.do(t, http.MethodPost, "/questions/ingest-text", req)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}
	_, body = e.do(t, http.MethodGet, "/questions?area=ANESTESIOLOGIA&status=pending", nil)
	if qs := decode[[]question.Question](t, body); len(qs) != 1 {
		t.Errorf("expected one classified pending question, got %d", len(qs))
	}

	status, _ = e.do(t, http.MethodPost, "/questions/ingest-text", map[string]any{"blocks": []any{}})
	if status != http.StatusBadRequest {
		t.Errorf("expected 400 for no blocks, got %d", status)
	}
}

func TestClearAndExport(t *testing.T) {
	e := newTestEnv(t)
	e.seed(t, 2, "CIRURGIA", "Fraturas")
	e.do(t, http.MethodPost, "/sets/favorites/Fraturas-0/toggle", nil)

	_, body := e.do(t, http.MethodGet, "/export", nil)
	exp := decode[map[string]any](t, body)
	if items, _ := exp["items"].([]any); len(items) != 2 {
		t.Errorf("expected 2 exported items, got %v", exp["items"])
	}

	status, _ := e.do(t, http.MethodDelete, "/questions", nil)
	if status != http.StatusNoContent {
		t.Errorf("expected 204, got %d", status)
	}
	_, body = e.do(t, http.MethodGet, "/sets/favorites", nil)
	if set := decode[api.SetResponse](t, body); len(set.IDs) != 1 {
		t.Errorf("expected favorites kept after clear, got %v", set.IDs)
	}
}

// ============================================================================
// Sets & stats
// ============================================================================

func TestToggleSet(t *testing.T) {
	e := newTestEnv(t)

	_, body := e.do(t, http.MethodPost, "/sets/to_review/q1/toggle", nil)
	if set := decode[api.SetResponse](t, body); len(set.IDs) != 1 || set.IDs[0] != "q1" {
		t.Errorf("expected [q1], got %v", set.IDs)
	}
	_, body = e.do(t, http.MethodPost, "/sets/to_review/q1/toggle", nil)
	if set := decode[api.SetResponse](t, body); len(set.IDs) != 0 || set.IDs == nil {
		t.Errorf("expected empty array, got %s", body)
	}

	status, _ := e.do(t, http.MethodGet, "/sets/history", nil)
	if status != http.StatusNotFound {
		t.Errorf("expected 404 for unknown collection, got %d", status)
	}
}

func TestStats_Empty(t *testing.T) {
	e := newTestEnv(t)

	status, body := e.do(t, http.MethodGet, "/stats", nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	s := decode[map[string]any](t, body)
	if s["total"] != float64(0) {
		t.Errorf("expected total 0, got %v", s["total"])
	}

	_, body = e.do(t, http.MethodGet, "/stats/frequent-errors", nil)
	if string(bytes.TrimSpace(body)) != "[]" {
		t.Errorf("expected empty array, got %s", body)
	}
}

// ============================================================================
// Simulation
// ============================================================================

func TestSimulation_FullRunRecordsAttempts(t *testing.T) {
	e := newTestEnv(t)
	e.seed(t, 5, "CIRURGIA", "Fraturas")
	e.seed(t, 5, "CLÍNICA MÉDICA", "Cinomose")

	status, body := e.do(t, http.MethodPut, "/simulation/config", map[string]any{"n": 3, "areas": []string{"CIRURGIA"}})
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}

	_, body = e.do(t, http.MethodPost, "/simulation/start", nil)
	sim := decode[api.SimulationResponse](t, body)
	if sim.Status != "running" || sim.Total != 3 || sim.Question == nil {
		t.Fatalf("unexpected running state %+v", sim)
	}
	if !sim.Question.HasArea("CIRURGIA") {
		t.Errorf("expected only CIRURGIA questions, got %v", sim.Question.AreaTags)
	}

	for _, label := range []string{"A", "B", "A"} {
		status, body = e.do(t, http.MethodPost, "/simulation/answer", map[string]any{"label": label})
		if status != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", status, body)
		}
	}
	sim = decode[api.SimulationResponse](t, body)
	if sim.Status != "finished" || sim.Result == nil {
		t.Fatalf("expected finished with result, got %+v", sim)
	}
	if sim.Result.Correct != 2 || sim.Result.Total != 3 || sim.Result.Percent != 67 {
		t.Errorf("expected 2/3 (67%%), got %+v", sim.Result)
	}

	e.recorder.Wait()
	_, body = e.do(t, http.MethodGet, "/attempts", nil)
	if attempts := decode[[]map[string]any](t, body); len(attempts) != 3 {
		t.Errorf("expected 3 recorded attempts, got %d", len(attempts))
	}
}

func TestSimulation_InvalidTransition(t *testing.T) {
	e := newTestEnv(t)

	status, _ := e.do(t, http.MethodPost, "/simulation/answer", map[string]any{"label": "A"})
	if status != http.StatusConflict {
		t.Errorf("expected 409 answering in config, got %d", status)
	}
	status, _ = e.do(t, http.MethodPut, "/simulation/config", map[string]any{"n": 0})
	if status != http.StatusBadRequest {
		t.Errorf("expected 400 for n=0, got %d", status)
	}
}

func TestSimulation_EmptyPool(t *testing.T) {
	e := newTestEnv(t)

	_, body := e.do(t, http.MethodPost, "/simulation/start", nil)
	sim := decode[api.SimulationResponse](t, body)
	if sim.Status != "running" || !sim.Empty {
		t.Errorf("expected empty running session, got %+v", sim)
	}

	_, body = e.do(t, http.MethodPost, "/simulation/finish", nil)
	sim = decode[api.SimulationResponse](t, body)
	if sim.Result == nil || sim.Result.Total != 0 {
		t.Errorf("expected 0/0 result, got %+v", sim.Result)
	}
}

func TestSimulation_StateIsPerClient(t *testing.T) {
	e := newTestEnv(t)
	e.seed(t, 2, "CIRURGIA", "Fraturas")
	e.do(t, http.MethodPost, "/simulation/start", nil)

	other, _ := cookiejar.New(nil)
	resp, err := (&http.Client{Jar: other}).Get(e.srv.URL + "/simulation")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	if sim := decode[api.SimulationResponse](t, data); sim.Status != "config" {
		t.Errorf("expected fresh client in config, got %q", sim.Status)
	}
}

// ============================================================================
// Study
// ============================================================================

type studyView struct {
	Mode      string             `json:"mode"`
	PoolSize  int                `json:"pool_size"`
	Empty     bool               `json:"empty"`
	Question  *question.Question `json:"question"`
	Confirmed bool               `json:"confirmed"`
	Correct   *bool              `json:"correct"`
}

func TestStudy_QuizFlow(t *testing.T) {
	e := newTestEnv(t)
	e.seed(t, 3, "CIRURGIA", "Fraturas")

	_, body := e.do(t, http.MethodGet, "/study", nil)
	v := decode[studyView](t, body)
	if v.Mode != "quiz" || v.PoolSize != 3 || v.Question == nil {
		t.Fatalf("unexpected initial view %+v", v)
	}

	status, _ := e.do(t, http.MethodPost, "/study/next", nil)
	if status != http.StatusConflict {
		t.Errorf("expected 409 before confirming, got %d", status)
	}

	e.do(t, http.MethodPost, "/study/select", map[string]any{"label": "A"})
	_, body = e.do(t, http.MethodPost, "/study/confirm", nil)
	v = decode[studyView](t, body)
	if !v.Confirmed || v.Correct == nil || !*v.Correct {
		t.Errorf("expected confirmed correct answer, got %+v", v)
	}

	status, _ = e.do(t, http.MethodPost, "/study/confirm", nil)
	if status != http.StatusConflict {
		t.Errorf("expected 409 for double confirm, got %d", status)
	}

	status, _ = e.do(t, http.MethodPost, "/study/next", nil)
	if status != http.StatusOK {
		t.Errorf("expected 200 after confirming, got %d", status)
	}

	e.recorder.Wait()
	attempts, _ := e.store.GetAllAttempts(context.Background())
	if len(attempts) != 1 || !attempts[0].Correct {
		t.Errorf("expected one correct attempt, got %+v", attempts)
	}
}

func TestStudy_FavoritesModeEmpty(t *testing.T) {
	e := newTestEnv(t)
	e.seed(t, 3, "CIRURGIA", "Fraturas")

	status, body := e.do(t, http.MethodPut, "/study/mode", map[string]any{"mode": "favorites"})
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}
	if v := decode[studyView](t, body); !v.Empty || v.Question != nil {
		t.Errorf("expected empty favorites pool, got %+v", v)
	}

	e.do(t, http.MethodPost, "/sets/favorites/Fraturas-1/toggle", nil)
	_, body = e.do(t, http.MethodGet, "/study", nil)
	v := decode[studyView](t, body)
	if v.PoolSize != 1 || v.Question == nil || v.Question.ID != "Fraturas-1" {
		t.Errorf("expected favorite in pool, got %+v", v)
	}

	status, _ = e.do(t, http.MethodPut, "/study/mode", map[string]any{"mode": "bogus"})
	if status != http.StatusBadRequest {
		t.Errorf("expected 400 for bad mode, got %d", status)
	}
}

// ============================================================================
// Review
// ============================================================================

func TestReview_SyncAndCached(t *testing.T) {
	e := newTestEnv(t)
	e.seed(t, 1, "CIRURGIA", "Fraturas")

	status, body := e.do(t, http.MethodPost, "/questions/Fraturas-0/review", nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}
	if r := decode[api.ReviewResponse](t, body); r.Text == "" {
		t.Error("expected review text")
	}

	status, body = e.do(t, http.MethodGet, "/questions/Fraturas-0/review", nil)
	if status != http.StatusOK {
		t.Fatalf("expected cached review, got %d", status)
	}
	if r := decode[service.ReviewResult](t, body); r.Status != service.ReviewDone {
		t.Errorf("expected done, got %q", r.Status)
	}
}

func TestReview_UnknownQuestion(t *testing.T) {
	e := newTestEnv(t)

	status, _ := e.do(t, http.MethodPost, "/questions/missing/review", nil)
	if status != http.StatusNotFound {
		t.Errorf("expected 404, got %d", status)
	}
	status, _ = e.do(t, http.MethodGet, "/questions/missing/review", nil)
	if status != http.StatusNotFound {
		t.Errorf("expected 404, got %d", status)
	}
}

func TestReview_AsyncCompletes(t *testing.T) {
	e := newTestEnv(t)
	e.seed(t, 1, "CIRURGIA", "Fraturas")

	status, body := e.do(t, http.MethodPost, "/questions/Fraturas-0/review?async=true", nil)
	if status != http.StatusAccepted && status != http.StatusOK {
		t.Fatalf("expected 202 or 200, got %d: %s", status, body)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		status, body = e.do(t, http.MethodGet, "/questions/Fraturas-0/review", nil)
		if status == http.StatusOK {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("review still pending: %d %s", status, body)
		}
		time.Sleep(10 * time.Millisecond)
	}
	r := decode[service.ReviewResult](t, body)
	if r.Status != service.ReviewDone || r.Text == "" {
		t.Errorf("expected done review with text, got %+v", r)
	}

	status, _ = e.do(t, http.MethodDelete, "/questions/Fraturas-0/review", nil)
	if status != http.StatusNotFound {
		t.Errorf("expected 404 cancelling a finished review, got %d", status)
	}
}
