package messages

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/srm-campusmart/backend/internal/middleware"
)

// RegisterRoutes registers all messaging HTTP routes. Every endpoint requires
// a bearer token.
func RegisterRoutes(r *mux.Router, h *Handler, gate *middleware.Gate) {
	r.HandleFunc("/messages/send", gate.Require(h.Send)).Methods(http.MethodPost)
	r.HandleFunc("/conversations", gate.Require(h.ListConversations)).Methods(http.MethodGet)
	r.HandleFunc("/messages/{conversationId}", gate.Require(h.ListMessages)).Methods(http.MethodGet)
}
