package storage

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"

	"github.com/srm-campusmart/backend/internal/kv"
	"github.com/srm-campusmart/backend/internal/models"
	apperrors "github.com/srm-campusmart/backend/pkg/errors"
)

const (
	messagePrefix      = "message:"
	conversationPrefix = "conversation:"
)

// MessageStore owns both message records and conversation summaries, since a
// send touches both.
type MessageStore struct {
	kv kv.Store
}

func NewMessageStore(store kv.Store) *MessageStore {
	return &MessageStore{kv: store}
}

func messageKey(conversationID, messageID string) string {
	return messagePrefix + conversationID + ":" + messageID
}

func conversationKey(id string) string { return conversationPrefix + id }

// Append writes the message and the updated conversation summary as one atomic
// batch, so the summary can never lag a persisted message.
func (s *MessageStore) Append(ctx context.Context, msg *models.Message, conv *models.Conversation) error {
	rawMsg, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	rawConv, err := json.Marshal(conv)
	if err != nil {
		return err
	}
	ops := []kv.Op{
		{Kind: kv.OpSet, Key: messageKey(msg.ConversationID, msg.ID), Value: rawMsg},
		{Kind: kv.OpSet, Key: conversationKey(conv.ID), Value: rawConv},
	}
	if err := s.kv.Atomic(ctx, ops); err != nil {
		return apperrors.ErrStoreFailure(err)
	}
	return nil
}

// GetConversation returns the summary record, or kv.ErrNotFound wrapped as a
// domain not-found when absent.
func (s *MessageStore) GetConversation(ctx context.Context, id string) (*models.Conversation, error) {
	raw, err := s.kv.Get(ctx, conversationKey(id))
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, apperrors.NotFound("conversation not found")
		}
		return nil, apperrors.ErrStoreFailure(err)
	}
	var conv models.Conversation
	if err := json.Unmarshal(raw, &conv); err != nil {
		return nil, apperrors.ErrStoreFailure(err)
	}
	return &conv, nil
}

// ListConversations scans all summaries and keeps those whose stored
// participants include userID, newest last message first.
func (s *MessageStore) ListConversations(ctx context.Context, userID string) ([]*models.Conversation, error) {
	raws, err := s.kv.GetByPrefix(ctx, conversationPrefix)
	if err != nil {
		return nil, apperrors.ErrStoreFailure(err)
	}
	convs := make([]*models.Conversation, 0, len(raws))
	for _, raw := range raws {
		var conv models.Conversation
		if err := json.Unmarshal(raw, &conv); err != nil {
			return nil, apperrors.ErrStoreFailure(err)
		}
		if conv.HasParticipant(userID) {
			c := conv
			convs = append(convs, &c)
		}
	}
	sort.Slice(convs, func(i, j int) bool {
		return convs[i].LastMessageAt.After(convs[j].LastMessageAt)
	})
	return convs, nil
}

// ListMessages returns every message under the conversation's key namespace,
// oldest first by creation timestamp.
func (s *MessageStore) ListMessages(ctx context.Context, conversationID string) ([]*models.Message, error) {
	prefix := messagePrefix + conversationID + ":"
	raws, err := s.kv.GetByPrefix(ctx, prefix)
	if err != nil {
		return nil, apperrors.ErrStoreFailure(err)
	}
	msgs := make([]*models.Message, 0, len(raws))
	for _, raw := range raws {
		var msg models.Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			return nil, apperrors.ErrStoreFailure(err)
		}
		// Guard against prefix bleed between conversation ids sharing a
		// textual prefix: trust the record, not the key.
		if msg.ConversationID != conversationID {
			continue
		}
		m := msg
		msgs = append(msgs, &m)
	}
	sort.Slice(msgs, func(i, j int) bool {
		return msgs[i].CreatedAt.Before(msgs[j].CreatedAt)
	})
	return msgs, nil
}

// ParticipantsFromID recovers the participant pair from a sorted-join
// conversation id. Only used as a fallback when no summary record exists yet.
func ParticipantsFromID(conversationID string) (string, string, bool) {
	parts := strings.SplitN(conversationID, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}
