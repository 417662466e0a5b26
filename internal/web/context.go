package web

import (
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/JonMunkholm/dashboard/internal/core"
	"github.com/JonMunkholm/dashboard/internal/web/middleware"
)

// ActorHeader optionally names the acting user for activity records.
// Without it actions are recorded as core.SystemActor.
const ActorHeader = "X-Dashboard-User"

// requestMetadata attaches the client IP, User-Agent and actor to the
// request context for activity logging, and echoes the request id.
func requestMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := chimw.GetReqID(r.Context()); id != "" {
			w.Header().Set(chimw.RequestIDHeader, id)
		}
		ctx := core.ContextWithIPAddress(r.Context(), middleware.ClientIP(r))
		ctx = core.ContextWithUserAgent(ctx, r.UserAgent())
		if actor := r.Header.Get(ActorHeader); actor != "" {
			ctx = core.ContextWithActor(ctx, actor)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
