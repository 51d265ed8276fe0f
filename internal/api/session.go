package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/sessions"

	"github.com/vetqa/backend/internal/domain/simulation"
	"github.com/vetqa/backend/internal/domain/study"
	"github.com/vetqa/backend/internal/id"
)

const (
	sessionName = "vetqa-session"
	clientIDKey = "client_id"

	// Idle client state is dropped after clientIdleTTL; a returning browser
	// keeps its cookie and starts a fresh simulation and study session.
	clientIdleTTL = 2 * time.Hour
	maxClients    = 10000
)

// clientState is the in-memory simulation and study state of one browser.
// Both are ephemeral and vanish on restart.
type clientState struct {
	mu    sync.Mutex
	sim   *simulation.Engine
	study *study.Controller

	lastSeen time.Time // guarded by ClientRegistry.mu
}

// ClientRegistry maps a cookie-held client id to its state.
type ClientRegistry struct {
	cookies *sessions.CookieStore

	mu      sync.Mutex
	clients map[string]*clientState
	idleTTL time.Duration
	limit   int
	now     func() time.Time
}

// NewClientRegistry signs client cookies with secret. An empty secret gets a
// random one, so cookies do not survive a restart.
func NewClientRegistry(secret string) *ClientRegistry {
	if secret == "" {
		secret = id.GenerateID() + id.GenerateID()
	}
	cookies := sessions.NewCookieStore([]byte(secret))
	cookies.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   30 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &ClientRegistry{
		cookies: cookies,
		clients: make(map[string]*clientState),
		idleTTL: clientIdleTTL,
		limit:   maxClients,
		now:     time.Now,
	}
}

// client returns the caller's state, issuing a cookie on first contact.
// It must run before anything is written to w.
func (cr *ClientRegistry) client(w http.ResponseWriter, r *http.Request) (*clientState, error) {
	// A decode error just means a stale or foreign cookie; start fresh.
	session, _ := cr.cookies.Get(r, sessionName)

	clientID, _ := session.Values[clientIDKey].(string)
	if clientID == "" {
		clientID = id.GenerateID()
		session.Values[clientIDKey] = clientID
		if err := session.Save(r, w); err != nil {
			return nil, err
		}
	}

	cr.mu.Lock()
	defer cr.mu.Unlock()
	now := cr.now()
	c, ok := cr.clients[clientID]
	if !ok {
		cr.evictLocked(now)
		c = &clientState{
			sim:   simulation.NewEngine(nil),
			study: study.NewController(nil),
		}
		cr.clients[clientID] = c
	}
	c.lastSeen = now
	return c, nil
}

// evictLocked drops idle clients and, if the registry is still full, the
// least recently seen one. It runs only when a new client is admitted.
func (cr *ClientRegistry) evictLocked(now time.Time) {
	var oldestID string
	var oldest time.Time
	for clientID, c := range cr.clients {
		if now.Sub(c.lastSeen) > cr.idleTTL {
			delete(cr.clients, clientID)
			continue
		}
		if oldestID == "" || c.lastSeen.Before(oldest) {
			oldestID, oldest = clientID, c.lastSeen
		}
	}
	if cr.limit > 0 && len(cr.clients) >= cr.limit {
		delete(cr.clients, oldestID)
	}
}
