package storage

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srm-campusmart/backend/internal/kv/memory"
	"github.com/srm-campusmart/backend/internal/models"
)

func appendMessage(t *testing.T, s *MessageStore, from, to, text string, at time.Time) *models.Message {
	t.Helper()
	convID := models.ConversationID(from, to)
	msg := &models.Message{
		ID:             uuid.NewString(),
		ConversationID: convID,
		SenderID:       from,
		ReceiverID:     to,
		Message:        text,
		CreatedAt:      at,
	}
	conv := &models.Conversation{
		ID:            convID,
		Participants:  [2]string{from, to},
		LastMessage:   text,
		LastMessageAt: at,
	}
	require.NoError(t, s.Append(context.Background(), msg, conv))
	return msg
}

func TestAppendUpdatesSummary(t *testing.T) {
	s := NewMessageStore(memory.NewStore())
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	appendMessage(t, s, "alice", "bob", "first", base)
	appendMessage(t, s, "bob", "alice", "second", base.Add(time.Minute))

	conv, err := s.GetConversation(ctx, models.ConversationID("alice", "bob"))
	require.NoError(t, err)
	assert.Equal(t, "second", conv.LastMessage)
	assert.Equal(t, base.Add(time.Minute), conv.LastMessageAt)
}

func TestListMessagesOldestFirst(t *testing.T) {
	s := NewMessageStore(memory.NewStore())
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	appendMessage(t, s, "alice", "bob", "two", base.Add(2*time.Minute))
	appendMessage(t, s, "bob", "alice", "one", base.Add(1*time.Minute))
	appendMessage(t, s, "alice", "bob", "three", base.Add(3*time.Minute))

	msgs, err := s.ListMessages(ctx, models.ConversationID("alice", "bob"))
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, "one", msgs[0].Message)
	assert.Equal(t, "two", msgs[1].Message)
	assert.Equal(t, "three", msgs[2].Message)
}

func TestListConversationsFiltersAndSorts(t *testing.T) {
	s := NewMessageStore(memory.NewStore())
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	appendMessage(t, s, "alice", "bob", "hey bob", base)
	appendMessage(t, s, "alice", "carol", "hey carol", base.Add(time.Minute))
	appendMessage(t, s, "bob", "carol", "not alice's", base.Add(2*time.Minute))

	convs, err := s.ListConversations(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, convs, 2)
	// Newest last message first.
	assert.Equal(t, models.ConversationID("alice", "carol"), convs[0].ID)
	assert.Equal(t, models.ConversationID("alice", "bob"), convs[1].ID)

	convs, err = s.ListConversations(ctx, "mallory")
	require.NoError(t, err)
	assert.Empty(t, convs)
}

func TestListMessagesIgnoresPrefixBleed(t *testing.T) {
	s := NewMessageStore(memory.NewStore())
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	appendMessage(t, s, "a", "b", "short pair", base)
	// A participant id containing the separator makes "a:b:c" fall under the
	// "message:a:b:" key namespace; the stored conversation id disambiguates.
	appendMessage(t, s, "a", "b:c", "other pair", base)

	msgs, err := s.ListMessages(ctx, models.ConversationID("a", "b"))
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "short pair", msgs[0].Message)
}

func TestParticipantsFromID(t *testing.T) {
	a, b, ok := ParticipantsFromID("alice:bob")
	require.True(t, ok)
	assert.Equal(t, "alice", a)
	assert.Equal(t, "bob", b)

	_, _, ok = ParticipantsFromID("loner")
	assert.False(t, ok)
}
