package models

import (
	"sort"
	"time"
)

// ConversationID derives the conversation identity for an unordered pair of
// user ids: the two ids sorted lexicographically and joined with ":". Repeated
// messaging between the same two users always resolves to the same id.
func ConversationID(a, b string) string {
	ids := []string{a, b}
	sort.Strings(ids)
	return ids[0] + ":" + ids[1]
}

// Message is one append-only chat message. SenderName is a snapshot of the
// sender's profile name at send time.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId"`
	ProductID      string    `json:"productId"`
	SenderID       string    `json:"senderId"`
	SenderName     string    `json:"senderName"`
	ReceiverID     string    `json:"receiverId"`
	Message        string    `json:"message"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Conversation is the per-pair summary record, upserted on every send.
// ProductID is the product that seeded the conversation; later messages do not
// change it.
type Conversation struct {
	ID            string    `json:"id"`
	Participants  [2]string `json:"participants"` // Always 2
	ProductID     string    `json:"productId"`
	LastMessage   string    `json:"lastMessage"`
	LastMessageAt time.Time `json:"lastMessageAt"`
}

// HasParticipant is a structured membership check against the stored
// participant pair, never a substring test on the conversation id.
func (c *Conversation) HasParticipant(userID string) bool {
	return c.Participants[0] == userID || c.Participants[1] == userID
}

// OtherParticipant returns the participant that is not userID.
func (c *Conversation) OtherParticipant(userID string) string {
	if c.Participants[0] == userID {
		return c.Participants[1]
	}
	return c.Participants[0]
}

// ConversationView is a Conversation enriched with the referenced product and
// the counterpart's public profile. Either slot may be null when the record it
// points at has gone missing; callers must handle partial enrichment.
type ConversationView struct {
	Conversation
	Product   *Product    `json:"product"`
	OtherUser *PublicUser `json:"otherUser"`
}
