package ports

import (
	"context"

	"github.com/collabhub/marketplace-api/internal/core/domain"
)

// OutboundMessage is a message accepted for delivery but not yet persisted;
// the dispatcher routes it to a worker sharded by conversation so
// per-conversation ordering holds.
type OutboundMessage struct {
	ConversationID string
	SenderID       string
	Body           string
}

// MessageSink consumes outbound messages; implemented by the chat service
// and fed by the queue dispatcher.
type MessageSink interface {
	Deliver(ctx context.Context, msg OutboundMessage) error
}

// ChatService implements conversations between offer parties.
type ChatService interface {
	MessageSink

	// Open creates the conversation for an accepted offer. Idempotent on
	// the offer: opening twice returns the existing conversation.
	Open(ctx context.Context, offer domain.Offer) (*domain.Conversation, error)
	Get(ctx context.Context, userID, conversationID string) (*domain.Conversation, error)
	ListForUser(ctx context.Context, userID string) ([]domain.Conversation, error)
	// Send validates the sender is a participant and persists the message.
	Send(ctx context.Context, userID, conversationID, body string) (*domain.Message, error)
	Messages(ctx context.Context, userID, conversationID string, limit int) ([]domain.Message, error)
}
