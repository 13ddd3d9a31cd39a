package ports

import (
	"context"
	"time"

	"github.com/collabhub/marketplace-api/internal/core/domain"
)

// ChatRepository defines the interface for conversation and message
// persistence.
type ChatRepository interface {
	CreateConversation(ctx context.Context, conv *domain.Conversation) (*domain.Conversation, error)
	FindConversation(ctx context.Context, id string) (*domain.Conversation, error)
	ListConversations(ctx context.Context, participantID string) ([]domain.Conversation, error)
	AppendMessage(ctx context.Context, msg *domain.Message) (*domain.Message, error)
	ListMessages(ctx context.Context, conversationID string, limit int) ([]domain.Message, error)
	TouchConversation(ctx context.Context, id string, at time.Time) error
}
