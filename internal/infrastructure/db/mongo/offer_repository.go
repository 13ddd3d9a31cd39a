package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/collabhub/marketplace-api/internal/core/domain"
	"github.com/collabhub/marketplace-api/internal/core/ports"
)

const offersCollection = "offers"

type MongoOfferRepository struct {
	coll *mongo.Collection
}

func NewOfferRepository(db *mongo.Database) *MongoOfferRepository {
	return &MongoOfferRepository{coll: db.Collection(offersCollection)}
}

func (r *MongoOfferRepository) Create(ctx context.Context, offer *domain.Offer) (*domain.Offer, error) {
	if _, err := r.coll.InsertOne(ctx, offer); err != nil {
		return nil, fmt.Errorf("insert offer: %w", err)
	}
	return offer, nil
}

func (r *MongoOfferRepository) FindByID(ctx context.Context, id string) (*domain.Offer, error) {
	var offer domain.Offer
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&offer); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOfferNotFound
		}
		return nil, fmt.Errorf("find offer: %w", err)
	}
	return &offer, nil
}

func (r *MongoOfferRepository) Update(ctx context.Context, offer *domain.Offer) (*domain.Offer, error) {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": offer.ID}, offer)
	if err != nil {
		return nil, fmt.Errorf("update offer: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrOfferNotFound
	}
	return offer, nil
}

func (r *MongoOfferRepository) List(ctx context.Context, filter ports.OfferFilter) ([]domain.Offer, error) {
	query := bson.M{}
	if filter.BrandID != "" {
		query["brand_id"] = filter.BrandID
	}
	if filter.CreatorID != "" {
		query["creator_id"] = filter.CreatorID
	}
	if filter.CampaignID != "" {
		query["campaign_id"] = filter.CampaignID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	cursor, err := r.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}
	defer cursor.Close(ctx)

	var offers []domain.Offer
	if err := cursor.All(ctx, &offers); err != nil {
		return nil, fmt.Errorf("decode offers: %w", err)
	}
	return offers, nil
}
