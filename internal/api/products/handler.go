// Package products implements the listing endpoints: create, browse, fetch,
// image upload, and signed-file serving.
package products

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/srm-campusmart/backend/internal/httputil"
	"github.com/srm-campusmart/backend/internal/middleware"
	"github.com/srm-campusmart/backend/internal/models"
	"github.com/srm-campusmart/backend/internal/objects"
	"github.com/srm-campusmart/backend/internal/storage"
	apperrors "github.com/srm-campusmart/backend/pkg/errors"
)

const maxUploadBytes = 10 << 20 // 10 MiB

// Handler holds the dependencies for listing-related HTTP requests.
type Handler struct {
	Products *storage.ProductStore
	Users    *storage.UserStore
	Objects  *objects.Store
	Log      zerolog.Logger
}

// parsePrice accepts a JSON number or a numeric string and rejects anything
// negative or unparseable.
func parsePrice(raw json.RawMessage) (float64, error) {
	if len(raw) == 0 {
		return 0, apperrors.ErrInvalidPrice
	}
	text := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	price, err := strconv.ParseFloat(text, 64)
	if err != nil || price < 0 {
		return 0, apperrors.ErrInvalidPrice
	}
	return price, nil
}

// Create stores a new listing. Only verified sellers may create; the seller's
// name and email are snapshotted onto the record.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.UserID(r.Context())

	seller, err := h.Users.Get(r.Context(), actorID)
	if err != nil {
		httputil.RespondError(w, h.Log, err)
		return
	}
	if !seller.AadharVerified {
		httputil.RespondError(w, h.Log, apperrors.ErrSellerUnverified)
		return
	}

	var req struct {
		Title       string          `json:"title"`
		Description string          `json:"description"`
		Price       json.RawMessage `json:"price"`
		Condition   string          `json:"condition"`
		ImagePath   string          `json:"imagePath"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, h.Log, apperrors.InvalidArg("invalid request body"))
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		httputil.RespondError(w, h.Log, apperrors.ErrMissingTitle)
		return
	}
	price, err := parsePrice(req.Price)
	if err != nil {
		httputil.RespondError(w, h.Log, err)
		return
	}
	if !models.ValidCondition(req.Condition) {
		httputil.RespondError(w, h.Log, apperrors.ErrInvalidCondition)
		return
	}

	product := &models.Product{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Price:       price,
		Condition:   req.Condition,
		ImagePath:   req.ImagePath,
		SellerID:    seller.ID,
		SellerName:  seller.Name,
		SellerEmail: seller.Email,
		Status:      "active",
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.Products.Create(r.Context(), product); err != nil {
		httputil.RespondError(w, h.Log, err)
		return
	}

	h.resolveImageURL(product)
	h.Log.Info().Str("productId", product.ID).Str("sellerId", seller.ID).Msg("listing created")
	httputil.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"product": product,
	})
}

// List returns all products newest first, each with a freshly signed image URL
// when an image exists. Accepts an optional ?sellerId= filter.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var (
		products []*models.Product
		err      error
	)
	if sellerID := r.URL.Query().Get("sellerId"); sellerID != "" {
		products, err = h.Products.ListBySeller(r.Context(), sellerID)
	} else {
		products, err = h.Products.List(r.Context())
	}
	if err != nil {
		httputil.RespondError(w, h.Log, err)
		return
	}

	for _, p := range products {
		h.resolveImageURL(p)
	}
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"products": products})
}

// Get returns one product by id with its resolved image URL.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.Products.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		httputil.RespondError(w, h.Log, err)
		return
	}
	h.resolveImageURL(product)
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"product": product})
}

// UploadImage stores a multipart file in the object store and returns its
// path plus a signed URL.
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.UserID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.RespondError(w, h.Log, apperrors.InvalidArg("no file provided"))
		return
	}
	defer file.Close()

	path, err := h.Objects.Save(actorID, header.Filename, file)
	if err != nil {
		httputil.RespondError(w, h.Log, apperrors.Wrap(apperrors.CodeInternal, "failed to store image", err))
		return
	}

	h.Log.Info().Str("userId", actorID).Str("path", path).Msg("image uploaded")
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"path":    path,
		"url":     h.Objects.SignedURL(path),
	})
}

// ServeFile serves a stored object when the request carries a valid, unexpired
// signature.
func (h *Handler) ServeFile(w http.ResponseWriter, r *http.Request) {
	objectPath := mux.Vars(r)["path"]
	expires, err := strconv.ParseInt(r.URL.Query().Get("expires"), 10, 64)
	if err != nil || !h.Objects.Verify(objectPath, expires, r.URL.Query().Get("sig")) {
		httputil.RespondError(w, h.Log, apperrors.ErrExpiredSignature)
		return
	}

	f, err := h.Objects.Open(objectPath)
	if err != nil {
		httputil.RespondError(w, h.Log, apperrors.NotFound("file not found"))
		return
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		httputil.RespondError(w, h.Log, err)
		return
	}
	http.ServeContent(w, r, stat.Name(), stat.ModTime(), f)
}

func (h *Handler) resolveImageURL(p *models.Product) {
	if p.ImagePath != "" {
		p.ImageURL = h.Objects.SignedURL(p.ImagePath)
	}
}
