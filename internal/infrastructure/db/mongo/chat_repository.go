package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/collabhub/marketplace-api/internal/core/domain"
)

const (
	conversationsCollection = "conversations"
	messagesCollection      = "messages"
)

// MongoChatRepository persists conversations and messages. EnsureIndexes
// puts a unique index on conversations.offer_id, which is what makes Open
// idempotent per offer.
type MongoChatRepository struct {
	convs    *mongo.Collection
	messages *mongo.Collection
}

func NewChatRepository(db *mongo.Database) *MongoChatRepository {
	return &MongoChatRepository{
		convs:    db.Collection(conversationsCollection),
		messages: db.Collection(messagesCollection),
	}
}

// EnsureIndexes creates necessary indexes on both chat collections.
func (r *MongoChatRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := r.convs.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "offer_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "brand_id", Value: 1}}},
		{Keys: bson.D{{Key: "creator_id", Value: 1}}},
	}); err != nil {
		return err
	}

	_, err := r.messages.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "conversation_id", Value: 1}, {Key: "sent_at", Value: 1}}},
	})
	return err
}

func (r *MongoChatRepository) CreateConversation(ctx context.Context, conv *domain.Conversation) (*domain.Conversation, error) {
	if _, err := r.convs.InsertOne(ctx, conv); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Already opened for this offer; hand back the existing one.
			var existing domain.Conversation
			if ferr := r.convs.FindOne(ctx, bson.M{"offer_id": conv.OfferID}).Decode(&existing); ferr == nil {
				return &existing, nil
			}
		}
		return nil, fmt.Errorf("insert conversation: %w", err)
	}
	return conv, nil
}

func (r *MongoChatRepository) FindConversation(ctx context.Context, id string) (*domain.Conversation, error) {
	var conv domain.Conversation
	if err := r.convs.FindOne(ctx, bson.M{"_id": id}).Decode(&conv); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrConversationNotFound
		}
		return nil, fmt.Errorf("find conversation: %w", err)
	}
	return &conv, nil
}

func (r *MongoChatRepository) ListConversations(ctx context.Context, participantID string) ([]domain.Conversation, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"brand_id": participantID},
		bson.M{"creator_id": participantID},
	}}

	cursor, err := r.convs.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "last_message_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	defer cursor.Close(ctx)

	var convs []domain.Conversation
	if err := cursor.All(ctx, &convs); err != nil {
		return nil, fmt.Errorf("decode conversations: %w", err)
	}
	return convs, nil
}

func (r *MongoChatRepository) AppendMessage(ctx context.Context, msg *domain.Message) (*domain.Message, error) {
	if _, err := r.messages.InsertOne(ctx, msg); err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}
	return msg, nil
}

func (r *MongoChatRepository) ListMessages(ctx context.Context, conversationID string, limit int) ([]domain.Message, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "sent_at", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := r.messages.Find(ctx, bson.M{"conversation_id": conversationID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer cursor.Close(ctx)

	var msgs []domain.Message
	if err := cursor.All(ctx, &msgs); err != nil {
		return nil, fmt.Errorf("decode messages: %w", err)
	}
	return msgs, nil
}

func (r *MongoChatRepository) TouchConversation(ctx context.Context, id string, at time.Time) error {
	res, err := r.convs.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"last_message_at": at}})
	if err != nil {
		return fmt.Errorf("touch conversation: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrConversationNotFound
	}
	return nil
}
