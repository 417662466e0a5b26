package web

import (
	"net/http"
	"strconv"

	"github.com/JonMunkholm/dashboard/internal/core"
)

// handleListCollections returns every collection's description.
func (s *Server) handleListCollections(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.ListCollections())
}

// handleStats returns the dashboard statistics.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.Stats())
}

// handleActivity returns activity entries, newest first.
// Query: collection, type, limit, offset.
func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.Activity(activityFilter(r)))
}

// handleImportStatus reports the import limiter's state.
func (s *Server) handleImportStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.ImportStatus())
}

func activityFilter(r *http.Request) core.ActivityFilter {
	q := r.URL.Query()
	return core.ActivityFilter{
		Collection: q.Get("collection"),
		Type:       core.ActivityType(q.Get("type")),
		Limit:      intParam(q.Get("limit"), core.DefaultActivityLimit),
		Offset:     intParam(q.Get("offset"), 0),
	}
}

// intParam parses a non-negative integer query value with a default.
func intParam(v string, def int) int {
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}
