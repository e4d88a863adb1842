// Package users implements signup, login, identity verification, and profile
// endpoints.
package users

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/srm-campusmart/backend/internal/auth"
	"github.com/srm-campusmart/backend/internal/httputil"
	"github.com/srm-campusmart/backend/internal/middleware"
	"github.com/srm-campusmart/backend/internal/models"
	"github.com/srm-campusmart/backend/internal/storage"
	apperrors "github.com/srm-campusmart/backend/pkg/errors"
)

var aadharPattern = regexp.MustCompile(`^\d{12}$`)

// Handler holds the dependencies for user-related HTTP requests.
type Handler struct {
	Auth        *auth.Provider
	Users       *storage.UserStore
	EmailDomain string // required suffix for signup emails, e.g. "@srmist.edu.in"
	Log         zerolog.Logger
}

// Signup creates credentials and the initial unverified User record, then
// returns the user together with a bearer token.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, h.Log, apperrors.InvalidArg("invalid request body"))
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !strings.HasSuffix(email, h.EmailDomain) {
		httputil.RespondError(w, h.Log,
			apperrors.InvalidArg("only "+h.EmailDomain+" email addresses are allowed"))
		return
	}
	if req.Password == "" || req.Name == "" {
		httputil.RespondError(w, h.Log, apperrors.InvalidArg("name and password are required"))
		return
	}

	userID, err := h.Auth.CreateCredentials(r.Context(), email, req.Password)
	if err != nil {
		httputil.RespondError(w, h.Log, err)
		return
	}

	user := &models.User{
		ID:             userID,
		Email:          email,
		Name:           req.Name,
		AadharVerified: false,
		CreatedAt:      time.Now().UTC(),
	}
	if err := h.Users.Create(r.Context(), user); err != nil {
		httputil.RespondError(w, h.Log, err)
		return
	}

	token, err := h.Auth.MintToken(userID)
	if err != nil {
		httputil.RespondError(w, h.Log, err)
		return
	}

	h.Log.Info().Str("userId", userID).Str("email", email).Msg("user signed up")
	httputil.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"success":     true,
		"user":        user,
		"accessToken": token,
	})
}

// Login checks credentials and issues a bearer token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, h.Log, apperrors.InvalidArg("invalid request body"))
		return
	}

	userID, err := h.Auth.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		httputil.RespondError(w, h.Log, err)
		return
	}

	user, err := h.Users.Get(r.Context(), userID)
	if err != nil {
		httputil.RespondError(w, h.Log, err)
		return
	}

	token, err := h.Auth.MintToken(userID)
	if err != nil {
		httputil.RespondError(w, h.Log, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"user":        user,
		"accessToken": token,
	})
}

// VerifyAadhar stores the submitted 12-digit identifier and flips the
// verification flag. Re-verifying overwrites; last write wins.
func (h *Handler) VerifyAadhar(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.UserID(r.Context())

	var req struct {
		AadharNumber string `json:"aadharNumber"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, h.Log, apperrors.InvalidArg("invalid request body"))
		return
	}
	if !aadharPattern.MatchString(req.AadharNumber) {
		httputil.RespondError(w, h.Log, apperrors.ErrInvalidAadhar)
		return
	}

	user, err := h.Users.Get(r.Context(), actorID)
	if err != nil {
		httputil.RespondError(w, h.Log, err)
		return
	}

	now := time.Now().UTC()
	user.AadharNumber = req.AadharNumber
	user.AadharVerified = true
	user.AadharVerifiedAt = &now

	if err := h.Users.Update(r.Context(), user); err != nil {
		httputil.RespondError(w, h.Log, err)
		return
	}

	h.Log.Info().Str("userId", actorID).Msg("aadhar verified")
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Aadhar verified successfully",
	})
}

// GetUser returns the caller's stored profile.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.UserID(r.Context())

	user, err := h.Users.Get(r.Context(), actorID)
	if err != nil {
		httputil.RespondError(w, h.Log, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}
