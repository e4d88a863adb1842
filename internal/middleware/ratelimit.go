package middleware

import (
	"net/http"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/srm-campusmart/backend/internal/httputil"
)

// RateLimiter applies a per-client token bucket. It runs ahead of the
// per-route gate, so it resolves the bearer token itself: authenticated
// clients are keyed by user id, everyone else by remote address.
type RateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	rate     rate.Limit
	burst    int
	verifier TokenVerifier
	log      zerolog.Logger
}

func NewRateLimiter(requestsPerSecond, burst int, verifier TokenVerifier, log zerolog.Logger) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
		verifier: verifier,
		log:      log,
	}
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, ok := rl.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters[key] = limiter
	}
	return limiter
}

// clientKey prefers the user id carried by a valid bearer token. An invalid
// token is not rejected here, that stays the gate's job; the request just
// falls back to the remote address bucket.
func (rl *RateLimiter) clientKey(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if rl.verifier != nil && authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			if userID, err := rl.verifier.VerifyToken(parts[1]); err == nil {
				return userID
			}
		}
	}
	return r.RemoteAddr
}

func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := rl.clientKey(r)

		if !rl.getLimiter(key).Allow() {
			rl.log.Warn().Str("key", key).Str("path", r.URL.Path).Msg("rate limit exceeded")
			httputil.RespondJSON(w, http.StatusTooManyRequests,
				map[string]string{"error": "too many requests"})
			return
		}

		next.ServeHTTP(w, r)
	})
}
