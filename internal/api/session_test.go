package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// cookieless issues a request that carries no session cookie.
func cookieless(t *testing.T, cr *ClientRegistry) (*clientState, *http.Cookie) {
	t.Helper()
	w := httptest.NewRecorder()
	c, err := cr.client(w, httptest.NewRequest(http.MethodGet, "/study", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one session cookie, got %d", len(cookies))
	}
	return c, cookies[0]
}

func TestClientRegistry_CapsCookielessClients(t *testing.T) {
	cr := NewClientRegistry("test-secret")
	cr.limit = 50

	for range 5000 {
		cookieless(t, cr)
	}
	if len(cr.clients) > 50 {
		t.Errorf("expected at most 50 clients, got %d", len(cr.clients))
	}
}

func TestClientRegistry_EvictsIdleClients(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	cr := NewClientRegistry("test-secret")
	cr.now = func() time.Time { return now }

	for range 10 {
		cookieless(t, cr)
	}
	now = now.Add(cr.idleTTL + time.Minute)
	cookieless(t, cr)

	if len(cr.clients) != 1 {
		t.Errorf("expected idle clients evicted leaving 1, got %d", len(cr.clients))
	}
}

func TestClientRegistry_ReturningClientKeepsState(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	cr := NewClientRegistry("test-secret")
	cr.now = func() time.Time { return now }

	first, cookie := cookieless(t, cr)

	// Activity refreshes lastSeen, so a client seen within the TTL survives
	// admissions of new clients after the original TTL has passed.
	now = now.Add(cr.idleTTL / 2)
	req := httptest.NewRequest(http.MethodGet, "/study", nil)
	req.AddCookie(cookie)
	again, err := cr.client(httptest.NewRecorder(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again != first {
		t.Fatal("expected the cookie to map to the same client state")
	}

	now = now.Add(cr.idleTTL/2 + time.Minute)
	cookieless(t, cr)

	if len(cr.clients) != 2 {
		t.Fatalf("expected 2 clients, got %d", len(cr.clients))
	}
	found := false
	for _, c := range cr.clients {
		found = found || c == first
	}
	if !found {
		t.Error("expected recently seen client to survive eviction")
	}
}
