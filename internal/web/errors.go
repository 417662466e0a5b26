package web

// errors.go provides unified error response handling for the web layer.
//
// Every failed request:
//  1. maps the error with core.MapError to a user message and code
//  2. logs the technical error with the request id for correlation
//  3. answers in the client's format: HTMX partial, JSON, or HTML page

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/JonMunkholm/dashboard/internal/core"
	"github.com/JonMunkholm/dashboard/internal/export"
	"github.com/JonMunkholm/dashboard/internal/logging"
	"github.com/JonMunkholm/dashboard/internal/view"
	"github.com/JonMunkholm/dashboard/internal/web/templates"
)

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

var (
	errBadRequest    = errors.New("invalid request body")
	errNotSupported  = errors.New("operation not supported for this collection")
	errMissingImport = errors.New("no file provided")
	errFileTooLarge  = errors.New("file too large")
)

// statusFor picks the HTTP status of an error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrCollectionNotFound), errors.Is(err, core.ErrItemNotFound):
		return http.StatusNotFound
	case core.IsValidationError(err),
		errors.Is(err, view.ErrNoSelection),
		errors.Is(err, view.ErrUnknownAction),
		errors.Is(err, export.ErrUnsupportedFormat),
		errors.Is(err, errBadRequest),
		errors.Is(err, errMissingImport):
		return http.StatusBadRequest
	case errors.Is(err, view.ErrNoPendingAction):
		return http.StatusConflict
	case errors.Is(err, view.ErrConfirmationExpired):
		return http.StatusGone
	case errors.Is(err, errNotSupported):
		return http.StatusMethodNotAllowed
	case errors.Is(err, errFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, core.ErrTooManyImports):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case isImportFileError(err):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// isImportFileError reports problems with an uploaded file's content.
func isImportFileError(err error) bool {
	code := core.MapError(err).Code
	return strings.HasPrefix(code, "FILE")
}

// respondError handles error responses with user-friendly messages.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	userMsg := core.MapError(err)

	log := logging.FromContext(r.Context())
	level := log.Warn
	if status >= http.StatusInternalServerError {
		level = log.Error
	}
	level("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
		"code", userMsg.Code,
	)

	switch {
	case isHTMX(r):
		s.renderErrorPartial(w, r, userMsg, status)
	case wantsJSON(r):
		writeJSON(w, status, ErrorResponse{
			Error:   err.Error(),
			Message: userMsg.Message,
			Action:  userMsg.Action,
			Code:    userMsg.Code,
		})
	default:
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		templates.ErrorPage(s.sidebar(""), userMsg.Message, userMsg.Action, userMsg.Code).Render(r.Context(), w)
	}
}

// renderErrorPartial renders an HTMX-compatible error fragment.
func (s *Server) renderErrorPartial(w http.ResponseWriter, r *http.Request, msg core.UserMessage, status int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	templates.ErrorAlert(msg.Message, msg.Action, msg.Code).Render(r.Context(), w)
}

// isHTMX checks if the request is an HTMX request.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// isForm reports a browser form submission.
func isForm(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	return strings.HasPrefix(ct, "application/x-www-form-urlencoded") ||
		strings.HasPrefix(ct, "multipart/form-data")
}

// wantsJSON checks if the client prefers a JSON response. API routes
// default to JSON unless a browser form posted to them.
func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return true
	}
	return strings.HasPrefix(r.URL.Path, "/api/") && !isForm(r)
}
