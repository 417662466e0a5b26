package web

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/JonMunkholm/dashboard/internal/core"
	"github.com/JonMunkholm/dashboard/internal/export"
	"github.com/JonMunkholm/dashboard/internal/logging"
	"github.com/JonMunkholm/dashboard/internal/view"
)

// handleExport downloads the caller's view of a collection in the format
// given by ?format= (default csv). The export honours the view's search,
// filters and sort and spans every page. With ?selected=true only the
// selected items are written.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	c, ctl, err := s.mounted(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	format, err := parseFormatParam(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	var ids []string
	if selected, _ := strconv.ParseBool(r.URL.Query().Get("selected")); selected {
		c.Render(ctl)
		ids = ctl.Selection().IDs
		if len(ids) == 0 {
			s.respondError(w, r, fmt.Errorf("export selection: %w", view.ErrNoSelection))
			return
		}
	}

	opts := s.exportOptions(c)
	var buf bytes.Buffer
	n, err := c.Export(&buf, format, ctl.State(), ids, opts)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	key := c.Info().Key
	s.service.LogActivity(r.Context(), core.ActivityParams{
		Type:       core.ActivityExport,
		Action:     "exported " + key + " as " + string(format),
		Item:       fmt.Sprintf("%d items", n),
		Collection: key,
		Count:      n,
	})
	s.metrics.recordExport(key, string(format))
	logging.FromContext(r.Context()).Info("export", "collection", key, "format", format, "count", n)

	sendDownload(w, format, opts.FileName(format), buf.Bytes())
}

// handleActivityExport downloads the activity log.
func (s *Server) handleActivityExport(w http.ResponseWriter, r *http.Request) {
	format, err := parseFormatParam(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	var buf bytes.Buffer
	filter := activityFilter(r)
	filter.Limit = 0
	if _, err := s.service.ExportActivity(&buf, format, filter); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.metrics.recordExport("activity", string(format))
	sendDownload(w, format, "activity."+format.Extension(), buf.Bytes())
}

// exportOptions are the configured export defaults for c, named after it.
func (s *Server) exportOptions(c core.Collection) export.Options {
	info := c.Info()
	return export.Options{
		Filename: s.cfg.Export.Filename + "-" + info.Key,
		Title:    s.cfg.Export.Title + ": " + info.Label,
		Columns:  info.Columns,
	}
}

func parseFormatParam(r *http.Request) (export.Format, error) {
	v := r.URL.Query().Get("format")
	if v == "" {
		return export.CSV, nil
	}
	return export.ParseFormat(v)
}

// sendDownload writes body as an attachment.
func sendDownload(w http.ResponseWriter, f export.Format, filename string, body []byte) {
	w.Header().Set("Content-Type", f.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
