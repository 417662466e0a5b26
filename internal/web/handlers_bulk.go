package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/JonMunkholm/dashboard/internal/core"
	"github.com/JonMunkholm/dashboard/internal/export"
	"github.com/JonMunkholm/dashboard/internal/logging"
	"github.com/JonMunkholm/dashboard/internal/view"
)

// exportActionKey is the bulk action whose result is a download of the
// selected items.
const exportActionKey = "export"

// BulkResponse reports a bulk action step together with the refreshed view.
type BulkResponse struct {
	Result view.DispatchResult `json:"result"`
	View   core.ViewResult     `json:"view"`
}

type bulkStep func(ctx context.Context, ctl *view.Controller, ev viewEvent) (view.DispatchResult, error)

// bulkHandler runs one step of the bulk action flow: dispatch, confirm or
// cancel. Destructive dispatches come back as pending_confirmation with a
// token; the action only runs when that token is confirmed.
func (s *Server) bulkHandler(step string, run bulkStep) http.HandlerFunc {
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

		key := c.Info().Key
		log := logging.WithFields(r.Context(), "collection", key, "step", step)

		c.Render(ctl)
		res, err := run(r.Context(), ctl, ev)
		outcome := string(res.Outcome)
		if errors.Is(err, view.ErrConfirmationExpired) {
			outcome = "expired"
		}
		if res.Action != "" && outcome != "" {
			s.metrics.recordDispatch(key, res.Action, outcome)
		}
		if err != nil {
			if res.Outcome == view.OutcomeFailed {
				log.Warn("bulk action failed", "action", res.Action, "count", len(res.IDs), "error", err)
			}
			s.respondError(w, r, err)
			return
		}
		log.Info("bulk action", "action", res.Action, "outcome", res.Outcome, "count", len(res.IDs))

		if res.Action == exportActionKey && res.Outcome == view.OutcomeExecuted {
			s.writeSelectionExport(w, r, c, ctl.State(), res.IDs)
			return
		}

		after := c.Render(ctl)
		if isHTMX(r) || !wantsJSON(r) {
			s.respondView(w, r, c, after)
			return
		}
		writeJSON(w, http.StatusOK, BulkResponse{Result: res, View: after})
	}
}

// handleDispatch applies the named action to the selection.
func (s *Server) handleDispatch(w http.ResponseWriter, r *http.Request) {
	s.bulkHandler("dispatch", func(ctx context.Context, ctl *view.Controller, ev viewEvent) (view.DispatchResult, error) {
		if ev.Action == "" {
			return view.DispatchResult{}, fmt.Errorf("%w: action is required", errBadRequest)
		}
		return ctl.Dispatch(ctx, ev.Action)
	})(w, r)
}

// handleConfirm runs the pending destructive action.
func (s *Server) handleConfirm(w http.ResponseWriter, r *http.Request) {
	s.bulkHandler("confirm", func(ctx context.Context, ctl *view.Controller, ev viewEvent) (view.DispatchResult, error) {
		return ctl.Confirm(ctx, ev.Token)
	})(w, r)
}

// handleCancel drops the pending destructive action.
func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	s.bulkHandler("cancel", func(_ context.Context, ctl *view.Controller, ev viewEvent) (view.DispatchResult, error) {
		return ctl.Cancel(ev.Token)
	})(w, r)
}

// writeSelectionExport sends the given items of c as a JSON download.
func (s *Server) writeSelectionExport(w http.ResponseWriter, r *http.Request, c core.Collection, st view.State, ids []string) {
	opts := s.exportOptions(c)
	opts.Filename += "-selection"

	var buf bytes.Buffer
	if _, err := c.Export(&buf, export.JSON, st, ids, opts); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.metrics.recordExport(c.Info().Key, string(export.JSON))
	sendDownload(w, export.JSON, opts.FileName(export.JSON), buf.Bytes())
}
