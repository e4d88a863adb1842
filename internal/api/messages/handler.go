// Package messages implements the messaging endpoints: sending, the
// conversation list, and per-conversation message history.
package messages

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/srm-campusmart/backend/internal/httputil"
	"github.com/srm-campusmart/backend/internal/middleware"
	"github.com/srm-campusmart/backend/internal/models"
	"github.com/srm-campusmart/backend/internal/storage"
	apperrors "github.com/srm-campusmart/backend/pkg/errors"
)

// Handler holds the dependencies for messaging HTTP requests.
type Handler struct {
	Messages *storage.MessageStore
	Users    *storage.UserStore
	Products *storage.ProductStore
	Log      zerolog.Logger
}

// Send appends a message and upserts the conversation summary in one atomic
// write. The conversation keeps the product that seeded it; later messages do
// not change it.
func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.UserID(r.Context())

	var req struct {
		ProductID  string `json:"productId"`
		ReceiverID string `json:"receiverId"`
		Message    string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, h.Log, apperrors.InvalidArg("invalid request body"))
		return
	}
	if req.ReceiverID == "" || req.ReceiverID == actorID {
		httputil.RespondError(w, h.Log, apperrors.ErrMissingReceiver)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		httputil.RespondError(w, h.Log, apperrors.ErrEmptyMessage)
		return
	}

	sender, err := h.Users.Get(r.Context(), actorID)
	if err != nil {
		httputil.RespondError(w, h.Log, err)
		return
	}

	conversationID := models.ConversationID(actorID, req.ReceiverID)
	now := time.Now().UTC()

	msg := &models.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		ProductID:      req.ProductID,
		SenderID:       actorID,
		SenderName:     sender.Name,
		ReceiverID:     req.ReceiverID,
		Message:        req.Message,
		CreatedAt:      now,
	}

	// Seeded product wins over whatever later sends reference. Only a
	// missing summary means "seed now"; any other lookup failure aborts so a
	// transient store error can never replace the seed.
	productID := req.ProductID
	existing, err := h.Messages.GetConversation(r.Context(), conversationID)
	switch {
	case err == nil:
		productID = existing.ProductID
	case isNotFound(err):
	default:
		httputil.RespondError(w, h.Log, err)
		return
	}

	conv := &models.Conversation{
		ID:            conversationID,
		Participants:  [2]string{actorID, req.ReceiverID},
		ProductID:     productID,
		LastMessage:   req.Message,
		LastMessageAt: now,
	}

	if err := h.Messages.Append(r.Context(), msg, conv); err != nil {
		httputil.RespondError(w, h.Log, err)
		return
	}

	h.Log.Info().
		Str("conversationId", conversationID).
		Str("senderId", actorID).
		Msg("message sent")
	httputil.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": msg,
	})
}

// ListConversations returns the caller's conversations newest first, each
// enriched with the seeding product and the counterpart's public profile. A
// missing product or user yields null in that slot rather than an error.
func (h *Handler) ListConversations(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.UserID(r.Context())

	convs, err := h.Messages.ListConversations(r.Context(), actorID)
	if err != nil {
		httputil.RespondError(w, h.Log, err)
		return
	}

	views := make([]*models.ConversationView, 0, len(convs))
	for _, conv := range convs {
		view := &models.ConversationView{Conversation: *conv}

		if conv.ProductID != "" {
			if product, err := h.Products.Get(r.Context(), conv.ProductID); err == nil {
				view.Product = product
			} else if !isNotFound(err) {
				httputil.RespondError(w, h.Log, err)
				return
			}
		}

		if other, err := h.Users.Get(r.Context(), conv.OtherParticipant(actorID)); err == nil {
			view.OtherUser = other.Public()
		} else if !isNotFound(err) {
			httputil.RespondError(w, h.Log, err)
			return
		}

		views = append(views, view)
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"conversations": views})
}

// ListMessages returns one conversation's messages oldest first. The caller
// must be a participant; membership is checked against the stored participant
// pair, with the id-derived pair as a fallback when no summary exists yet.
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.UserID(r.Context())
	conversationID := mux.Vars(r)["conversationId"]

	conv, err := h.Messages.GetConversation(r.Context(), conversationID)
	switch {
	case err == nil:
		if !conv.HasParticipant(actorID) {
			httputil.RespondError(w, h.Log, apperrors.ErrNotParticipant)
			return
		}
	case isNotFound(err):
		a, b, ok := storage.ParticipantsFromID(conversationID)
		if !ok || (a != actorID && b != actorID) {
			httputil.RespondError(w, h.Log, apperrors.ErrNotParticipant)
			return
		}
	default:
		httputil.RespondError(w, h.Log, err)
		return
	}

	msgs, err := h.Messages.ListMessages(r.Context(), conversationID)
	if err != nil {
		httputil.RespondError(w, h.Log, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"messages": msgs})
}

func isNotFound(err error) bool {
	var appErr *apperrors.AppError
	return errors.As(err, &appErr) && appErr.Code == apperrors.CodeNotFound
}
