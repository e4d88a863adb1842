package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConversationIDOrderIndependent(t *testing.T) {
	assert.Equal(t, ConversationID("alice", "bob"), ConversationID("bob", "alice"))
	assert.Equal(t, "alice:bob", ConversationID("bob", "alice"))
}

func TestHasParticipant(t *testing.T) {
	conv := &Conversation{Participants: [2]string{"alice", "bob"}}
	assert.True(t, conv.HasParticipant("alice"))
	assert.True(t, conv.HasParticipant("bob"))
	assert.False(t, conv.HasParticipant("mallory"))
	// Substring of the joined id must not count as membership.
	assert.False(t, conv.HasParticipant("ali"))
}

func TestOtherParticipant(t *testing.T) {
	conv := &Conversation{Participants: [2]string{"alice", "bob"}}
	assert.Equal(t, "bob", conv.OtherParticipant("alice"))
	assert.Equal(t, "alice", conv.OtherParticipant("bob"))
}

func TestValidCondition(t *testing.T) {
	for _, c := range []string{"brand-new", "like-new", "good", "fair", "poor"} {
		assert.True(t, ValidCondition(c), c)
	}
	assert.False(t, ValidCondition("mint"))
	assert.False(t, ValidCondition(""))
}
