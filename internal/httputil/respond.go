// Package httputil holds the JSON response helpers shared by all handlers.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	apperrors "github.com/srm-campusmart/backend/pkg/errors"
)

// RespondJSON writes v as a JSON body with the given status.
func RespondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// StatusForCode maps the error taxonomy onto HTTP statuses.
func StatusForCode(code apperrors.Code) int {
	switch code {
	case apperrors.CodeInvalidArgument:
		return http.StatusBadRequest
	case apperrors.CodeUnauthenticated:
		return http.StatusUnauthorized
	case apperrors.CodePermissionDenied:
		return http.StatusForbidden
	case apperrors.CodeNotFound:
		return http.StatusNotFound
	case apperrors.CodeAlreadyExists:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// RespondError converts err into an error response. Expected application
// errors surface their message; anything else becomes a generic 500 with the
// detail logged server-side only.
func RespondError(w http.ResponseWriter, log zerolog.Logger, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		status := StatusForCode(appErr.Code)
		if status == http.StatusInternalServerError {
			log.Error().Err(err).Msg("internal error")
			RespondJSON(w, status, map[string]string{"error": "internal server error"})
			return
		}
		RespondJSON(w, status, map[string]string{"error": appErr.Message})
		return
	}
	log.Error().Err(err).Msg("unexpected error")
	RespondJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}
