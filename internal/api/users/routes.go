package users

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/srm-campusmart/backend/internal/middleware"
)

// RegisterRoutes registers all user-related HTTP routes.
func RegisterRoutes(r *mux.Router, h *Handler, gate *middleware.Gate) {
	r.HandleFunc("/signup", h.Signup).Methods(http.MethodPost)
	r.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	r.HandleFunc("/verify-aadhar", gate.Require(h.VerifyAadhar)).Methods(http.MethodPost)
	r.HandleFunc("/user", gate.Require(h.GetUser)).Methods(http.MethodGet)
}
