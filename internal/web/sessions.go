package web

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/JonMunkholm/dashboard/internal/core"
	"github.com/JonMunkholm/dashboard/internal/view"
)

// SessionCookie names the cookie carrying the browser's view session id.
const SessionCookie = "dashboard_session"

// sessionMaxAge is the cookie lifetime. The server may forget a session
// sooner when the store is full.
const sessionMaxAge = 30 * 24 * time.Hour

// session holds one browser's mounted views, one per collection.
type session struct {
	id    string
	mu    sync.Mutex
	views map[string]*view.Controller
}

// controller returns the view controller for c, mounting a fresh one on first use.
func (s *session) controller(c core.Collection) *view.Controller {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := c.Info().Key
	ctl, ok := s.views[key]
	if !ok {
		ctl = c.NewController()
		s.views[key] = ctl
	}
	return ctl
}

// sessionStore keeps the most recently used sessions. An evicted session
// comes back under its old id with every view at its default state.
type sessionStore struct {
	mu     sync.Mutex
	cache  *lru.Cache[string, *session]
	secure bool
}

func newSessionStore(capacity int, secure bool) (*sessionStore, error) {
	cache, err := lru.New[string, *session](capacity)
	if err != nil {
		return nil, err
	}
	return &sessionStore{cache: cache, secure: secure}, nil
}

// get returns the session for r, creating it and setting the cookie when
// the request carries none or an invalid one.
func (st *sessionStore) get(w http.ResponseWriter, r *http.Request) *session {
	id := ""
	if c, err := r.Cookie(SessionCookie); err == nil {
		if parsed, err := uuid.Parse(c.Value); err == nil {
			id = parsed.String()
		}
	}
	if id == "" {
		id = uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    id,
			Path:     "/",
			MaxAge:   int(sessionMaxAge.Seconds()),
			HttpOnly: true,
			Secure:   st.secure,
			SameSite: http.SameSiteLaxMode,
		})
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.cache.Get(id); ok {
		return s
	}
	s := &session{id: id, views: make(map[string]*view.Controller)}
	st.cache.Add(id, s)
	return s
}

func (st *sessionStore) len() int {
	return st.cache.Len()
}
