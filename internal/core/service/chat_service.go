package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/collabhub/marketplace-api/internal/api/metrics"
	"github.com/collabhub/marketplace-api/internal/core/domain"
	"github.com/collabhub/marketplace-api/internal/core/ports"
)

var ErrEmptyMessage = errors.New("empty message body")

const defaultMessagePage = 50

type ChatService struct {
	repo   ports.ChatRepository
	logger zerolog.Logger
}

func NewChatService(repo ports.ChatRepository, logger zerolog.Logger) *ChatService {
	return &ChatService{repo: repo, logger: logger}
}

// Open creates the conversation for an accepted offer. Creating twice for
// the same offer returns the existing conversation.
func (s *ChatService) Open(ctx context.Context, offer domain.Offer) (*domain.Conversation, error) {
	conv := &domain.Conversation{
		ID:        "chat_" + uuid.NewString(),
		OfferID:   offer.ID,
		BrandID:   offer.BrandID,
		CreatorID: offer.CreatorID,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.repo.CreateConversation(ctx, conv)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("conversation_id", created.ID).Str("offer_id", offer.ID).Msg("conversation opened")
	return created, nil
}

func (s *ChatService) Get(ctx context.Context, userID, conversationID string) (*domain.Conversation, error) {
	conv, err := s.repo.FindConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.HasParticipant(userID) {
		return nil, domain.ErrNotParticipant
	}
	return conv, nil
}

func (s *ChatService) ListForUser(ctx context.Context, userID string) ([]domain.Conversation, error) {
	return s.repo.ListConversations(ctx, userID)
}

// Send persists a message after checking the sender is a participant.
func (s *ChatService) Send(ctx context.Context, userID, conversationID, body string) (*domain.Message, error) {
	if body == "" {
		return nil, ErrEmptyMessage
	}
	conv, err := s.repo.FindConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.HasParticipant(userID) {
		return nil, domain.ErrNotParticipant
	}

	now := time.Now().UTC()
	msg := &domain.Message{
		ID:             "msg_" + uuid.NewString(),
		ConversationID: conversationID,
		SenderID:       userID,
		Body:           body,
		SentAt:         now,
	}

	created, err := s.repo.AppendMessage(ctx, msg)
	if err != nil {
		return nil, err
	}
	if err := s.repo.TouchConversation(ctx, conversationID, now); err != nil {
		s.logger.Warn().Err(err).Str("conversation_id", conversationID).Msg("failed to touch conversation")
	}

	metrics.MessagesTotal.Inc()
	return created, nil
}

// Deliver consumes an outbound message from the dispatcher. Same checks as
// Send; errors are logged by the dispatcher worker.
func (s *ChatService) Deliver(ctx context.Context, msg ports.OutboundMessage) error {
	_, err := s.Send(ctx, msg.SenderID, msg.ConversationID, msg.Body)
	return err
}

func (s *ChatService) Messages(ctx context.Context, userID, conversationID string, limit int) ([]domain.Message, error) {
	if _, err := s.Get(ctx, userID, conversationID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultMessagePage
	}
	return s.repo.ListMessages(ctx, conversationID, limit)
}
