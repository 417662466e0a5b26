package web

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/dashboard/internal/core"
	"github.com/JonMunkholm/dashboard/internal/view"
	"github.com/JonMunkholm/dashboard/internal/web/templates"
)

// maxEventBody bounds view event request bodies.
const maxEventBody = 64 << 10

// viewEvent is the body of every view event. Each endpoint reads the
// fields it needs. Browsers post it as a form, scripts as JSON.
type viewEvent struct {
	Query     string   `json:"query"`
	Seq       uint64   `json:"seq"`
	Key       string   `json:"key"`
	Value     string   `json:"value"`
	Values    []string `json:"values"`
	Clear     string   `json:"clear"`
	Direction string   `json:"direction"`
	Page      int      `json:"page"`
	Nav       string   `json:"nav"`
	Size      int      `json:"size"`
	ID        string   `json:"id"`
	Action    string   `json:"action"`
	Token     string   `json:"token"`
}

func decodeEvent(w http.ResponseWriter, r *http.Request) (viewEvent, error) {
	var ev viewEvent
	r.Body = http.MaxBytesReader(w, r.Body, maxEventBody)

	if !isForm(r) {
		err := json.NewDecoder(r.Body).Decode(&ev)
		if err == io.EOF {
			return ev, nil
		}
		if err != nil {
			return ev, fmt.Errorf("%w: %v", errBadRequest, err)
		}
		return ev, nil
	}

	if err := r.ParseForm(); err != nil {
		return ev, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	f := r.PostForm
	ev.Query = f.Get("query")
	ev.Key = f.Get("key")
	ev.Value = f.Get("value")
	ev.Values = f["values"]
	ev.Clear = f.Get("clear")
	ev.Direction = f.Get("direction")
	ev.Nav = f.Get("nav")
	ev.ID = f.Get("id")
	ev.Action = f.Get("action")
	ev.Token = f.Get("token")

	for name, dst := range map[string]*int{"page": &ev.Page, "size": &ev.Size} {
		if v := f.Get(name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return ev, fmt.Errorf("%w: %s must be a number", errBadRequest, name)
			}
			*dst = n
		}
	}
	if v := f.Get("seq"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return ev, fmt.Errorf("%w: seq must be a number", errBadRequest)
		}
		ev.Seq = n
	}
	return ev, nil
}

// mounted resolves the collection in the URL and the caller's view of it.
func (s *Server) mounted(w http.ResponseWriter, r *http.Request) (core.Collection, *view.Controller, error) {
	c, err := s.service.Collection(chi.URLParam(r, "collection"))
	if err != nil {
		return nil, nil, err
	}
	return c, s.sessions.get(w, r).controller(c), nil
}

// viewEventHandler decodes an event, applies it to the caller's view and
// answers with the re-rendered view. The view is rendered before apply so
// the selection sees the current data.
func (s *Server) viewEventHandler(apply func(ctl *view.Controller, ev viewEvent, before core.ViewResult) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ctl, err := s.mounted(w, r)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		ev, err := decodeEvent(w, r)
		if err != nil {
			s.respondError(w, r, err)
			return
		}

		before := c.Render(ctl)
		if err := apply(ctl, ev, before); err != nil {
			s.respondError(w, r, err)
			return
		}
		s.respondView(w, r, c, c.Render(ctl))
	}
}

// respondView answers a view event: JSON for API clients, the table
// partial for HTMX, and a redirect back to the page for plain forms.
func (s *Server) respondView(w http.ResponseWriter, r *http.Request, c core.Collection, res core.ViewResult) {
	switch {
	case isHTMX(r):
		templates.CollectionTable(s.collectionView(c, res)).Render(r.Context(), w)
	case wantsJSON(r):
		writeJSON(w, http.StatusOK, res)
	default:
		http.Redirect(w, r, "/"+c.Info().Key, http.StatusSeeOther)
	}
}

// handleGetView returns the caller's current view model.
func (s *Server) handleGetView(w http.ResponseWriter, r *http.Request) {
	c, ctl, err := s.mounted(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c.Render(ctl))
}

// handleQuery sets the search query. A query older than the last one
// applied is ignored.
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	s.viewEventHandler(func(ctl *view.Controller, ev viewEvent, _ core.ViewResult) error {
		ctl.SetQuery(ev.Query, ev.Seq)
		return nil
	})(w, r)
}

// handleFilter sets one filter, removes it when the value is empty, or
// clears every filter with clear=all.
func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	s.viewEventHandler(func(ctl *view.Controller, ev viewEvent, _ core.ViewResult) error {
		if strings.EqualFold(ev.Clear, "all") {
			ctl.ClearFilters()
			return nil
		}
		if ev.Key == "" {
			return fmt.Errorf("%w: filter key is required", errBadRequest)
		}
		ctl.SetFilter(ev.Key, view.FilterValue{Value: ev.Value, Values: ev.Values})
		return nil
	})(w, r)
}

// handleSort toggles the sort on key, or sets it when a direction is
// given. An empty key restores the original order.
func (s *Server) handleSort(w http.ResponseWriter, r *http.Request) {
	s.viewEventHandler(func(ctl *view.Controller, ev viewEvent, _ core.ViewResult) error {
		switch {
		case ev.Key == "":
			ctl.ClearSort()
		case ev.Direction != "":
			ctl.SetSort(view.SortBy(ev.Key, view.ParseDirection(ev.Direction)))
		default:
			ctl.ToggleSort(ev.Key)
		}
		return nil
	})(w, r)
}

// handlePage moves to a page number or by nav: first, prev, next, last.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	s.viewEventHandler(func(ctl *view.Controller, ev viewEvent, _ core.ViewResult) error {
		switch strings.ToLower(ev.Nav) {
		case "first":
			ctl.FirstPage()
		case "prev", "previous":
			ctl.PrevPage()
		case "next":
			ctl.NextPage()
		case "last":
			ctl.LastPage()
		case "":
			ctl.GoToPage(ev.Page)
		default:
			return fmt.Errorf("%w: unknown page navigation %q", errBadRequest, ev.Nav)
		}
		return nil
	})(w, r)
}

// handlePageSize changes the page size to one of the offered sizes.
func (s *Server) handlePageSize(w http.ResponseWriter, r *http.Request) {
	s.viewEventHandler(func(ctl *view.Controller, ev viewEvent, _ core.ViewResult) error {
		if !slices.Contains(s.cfg.View.PageSizeOptions, ev.Size) {
			return fmt.Errorf("%w: page size must be one of %v", errBadRequest, s.cfg.View.PageSizeOptions)
		}
		ctl.SetPageSize(ev.Size)
		return nil
	})(w, r)
}

// handleReset restores the view to its mount-time state.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.viewEventHandler(func(ctl *view.Controller, _ viewEvent, _ core.ViewResult) error {
		ctl.Reset()
		return nil
	})(w, r)
}

// handleToggle flips the selection of one visible item.
func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	s.viewEventHandler(func(ctl *view.Controller, ev viewEvent, before core.ViewResult) error {
		if ev.ID == "" {
			return fmt.Errorf("%w: id is required", errBadRequest)
		}
		if !slices.Contains(before.VisibleIDs, ev.ID) {
			return fmt.Errorf("selection %s: %w", ev.ID, core.ErrItemNotFound)
		}
		ctl.Toggle(ev.ID)
		return nil
	})(w, r)
}

// handleSelectAll selects every item matching the current search and
// filters, across all pages.
func (s *Server) handleSelectAll(w http.ResponseWriter, r *http.Request) {
	s.viewEventHandler(func(ctl *view.Controller, _ viewEvent, _ core.ViewResult) error {
		ctl.SelectAll()
		return nil
	})(w, r)
}

// handleSelectNone clears the selection.
func (s *Server) handleSelectNone(w http.ResponseWriter, r *http.Request) {
	s.viewEventHandler(func(ctl *view.Controller, _ viewEvent, _ core.ViewResult) error {
		ctl.DeselectAll()
		return nil
	})(w, r)
}
