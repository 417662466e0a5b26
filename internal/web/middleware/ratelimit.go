package middleware

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"github.com/JonMunkholm/dashboard/internal/core"
	"github.com/JonMunkholm/dashboard/internal/logging"
)

// ErrRateLimited is reported to clients over their request budget.
var ErrRateLimited = errors.New("rate limit exceeded")

// maxTrackedClients bounds the per-IP limiter table. The least recently
// seen client is forgotten first.
const maxTrackedClients = 10000

// RateLimiter hands out one token bucket per client IP.
type RateLimiter struct {
	limit   rate.Limit
	burst   int
	clients *lru.Cache[string, *rate.Limiter]
}

// NewRateLimiter allows perMinute requests per client IP on average with
// bursts of up to burst requests.
func NewRateLimiter(perMinute, burst int) *RateLimiter {
	clients, err := lru.New[string, *rate.Limiter](maxTrackedClients)
	if err != nil {
		// Only a non-positive size fails.
		panic(err)
	}
	return &RateLimiter{
		limit:   rate.Every(time.Minute / time.Duration(max(perMinute, 1))),
		burst:   max(burst, 1),
		clients: clients,
	}
}

// Allow consumes a token for key.
func (l *RateLimiter) Allow(key string) bool {
	return l.limiter(key).Allow()
}

func (l *RateLimiter) limiter(key string) *rate.Limiter {
	if lim, ok := l.clients.Get(key); ok {
		return lim
	}
	lim := rate.NewLimiter(l.limit, l.burst)
	if prev, ok, _ := l.clients.PeekOrAdd(key, lim); ok {
		return prev
	}
	return lim
}

// retryAfter is how long until one token is back.
func (l *RateLimiter) retryAfter() string {
	secs := math.Ceil(1 / float64(l.limit))
	return strconv.Itoa(max(int(secs), 1))
}

// RateLimit rejects requests over the client's budget with 429 and the
// mapped ErrRateLimited message as JSON.
func RateLimit(l *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := ClientIP(r)
			if l.Allow(ip) {
				next.ServeHTTP(w, r)
				return
			}

			msg := core.MapError(ErrRateLimited)
			logging.FromContext(r.Context()).Warn("rate limit exceeded", "ip", ip, "path", r.URL.Path, "code", msg.Code)
			w.Header().Set("Retry-After", l.retryAfter())
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]string{
				"error":   ErrRateLimited.Error(),
				"message": msg.Message,
				"action":  msg.Action,
				"code":    msg.Code,
			})
		})
	}
}
