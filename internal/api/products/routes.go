package products

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/srm-campusmart/backend/internal/middleware"
)

// RegisterRoutes registers all product-related HTTP routes. Browsing is
// anonymous; creation and upload require a bearer token.
func RegisterRoutes(r *mux.Router, h *Handler, gate *middleware.Gate) {
	r.HandleFunc("/products", gate.Require(h.Create)).Methods(http.MethodPost)
	r.HandleFunc("/products", h.List).Methods(http.MethodGet)
	r.HandleFunc("/products/{id}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/upload-image", gate.Require(h.UploadImage)).Methods(http.MethodPost)
	r.HandleFunc("/files/{path:.+}", h.ServeFile).Methods(http.MethodGet)
}
