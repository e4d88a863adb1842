// Package middleware provides the HTTP middleware chain: CORS, request
// logging, rate limiting, and the bearer-token gate.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/srm-campusmart/backend/internal/httputil"
	apperrors "github.com/srm-campusmart/backend/pkg/errors"
)

type contextKey string

const userIDKey contextKey = "userID"

// UserID returns the authenticated user id stored by the gate, or "" when the
// request was not authenticated.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// TokenVerifier resolves a bearer token to a user id.
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}

// Gate rejects requests that do not carry a valid bearer token and stores the
// resolved identity in the request context.
type Gate struct {
	Verifier TokenVerifier
	Log      zerolog.Logger
}

func NewGate(verifier TokenVerifier, log zerolog.Logger) *Gate {
	return &Gate{Verifier: verifier, Log: log}
}

// Require wraps a handler that needs an authenticated caller.
func (g *Gate) Require(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			httputil.RespondError(w, g.Log, apperrors.Unauthorized("missing Authorization header"))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			httputil.RespondError(w, g.Log, apperrors.Unauthorized("invalid Authorization header format"))
			return
		}

		userID, err := g.Verifier.VerifyToken(parts[1])
		if err != nil {
			g.Log.Warn().Err(err).Str("path", r.URL.Path).Msg("token verification failed")
			httputil.RespondError(w, g.Log, err)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}
