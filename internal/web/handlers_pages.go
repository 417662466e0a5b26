package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/dashboard/internal/core"
	"github.com/JonMunkholm/dashboard/internal/web/templates"
)

// handleHealth reports liveness with the collection sizes.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	sizes := make(map[string]int)
	for _, c := range s.service.Registry().All() {
		sizes[c.Info().Key] = c.Len()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"collections": sizes,
		"sessions":    s.sessions.len(),
	})
}

// handleDashboard renders the statistics page.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	templates.Dashboard(s.sidebar("dashboard"), s.service.Stats()).Render(r.Context(), w)
}

// handleCollectionPage renders the browser session's view of a collection.
func (s *Server) handleCollectionPage(w http.ResponseWriter, r *http.Request) {
	c, err := s.service.Collection(chi.URLParam(r, "collection"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	ctl := s.sessions.get(w, r).controller(c)
	v := s.collectionView(c, c.Render(ctl))

	if isHTMX(r) {
		templates.CollectionTable(v).Render(r.Context(), w)
		return
	}
	templates.CollectionPage(s.sidebar(v.Info.Key), v).Render(r.Context(), w)
}

func (s *Server) collectionView(c core.Collection, res core.ViewResult) templates.CollectionView {
	return templates.CollectionView{
		Info:      c.Info(),
		Result:    res,
		PageSizes: s.cfg.View.PageSizeOptions,
	}
}

// sidebar lists every collection, grouped, with active highlighted.
func (s *Server) sidebar(active string) templates.SidebarParams {
	var items []templates.NavItem
	for _, c := range s.service.Registry().All() {
		info := c.Info()
		items = append(items, templates.NavItem{
			Key:   info.Key,
			Label: info.Label,
			Group: info.Group,
			Count: c.Len(),
		})
	}
	return templates.SidebarParams{Items: items, ActivePage: active}
}
