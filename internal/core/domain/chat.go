package domain

import (
	"errors"
	"time"
)

var ErrConversationNotFound = errors.New("conversation not found")
var ErrNotParticipant = errors.New("not a conversation participant")

// Conversation is a two-party chat channel between a brand and a creator,
// opened when an offer is accepted.
type Conversation struct {
	ID            string    `json:"id" bson:"_id,omitempty"`
	OfferID       string    `json:"offer_id" bson:"offer_id"`
	BrandID       string    `json:"brand_id" bson:"brand_id"`
	CreatorID     string    `json:"creator_id" bson:"creator_id"`
	LastMessageAt time.Time `json:"last_message_at" bson:"last_message_at"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}

// HasParticipant reports whether userID is one of the two parties.
func (c Conversation) HasParticipant(userID string) bool {
	return c.BrandID == userID || c.CreatorID == userID
}

// Message is a single chat message inside a conversation.
type Message struct {
	ID             string    `json:"id" bson:"_id,omitempty"`
	ConversationID string    `json:"conversation_id" bson:"conversation_id"`
	SenderID       string    `json:"sender_id" bson:"sender_id"`
	Body           string    `json:"body" bson:"body"`
	SentAt         time.Time `json:"sent_at" bson:"sent_at"`
}
