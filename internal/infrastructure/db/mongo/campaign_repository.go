package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/collabhub/marketplace-api/internal/core/domain"
)

const campaignsCollection = "campaigns"

type MongoCampaignRepository struct {
	coll *mongo.Collection
}

func NewCampaignRepository(db *mongo.Database) *MongoCampaignRepository {
	return &MongoCampaignRepository{coll: db.Collection(campaignsCollection)}
}

func (r *MongoCampaignRepository) Create(ctx context.Context, campaign *domain.Campaign) (*domain.Campaign, error) {
	if _, err := r.coll.InsertOne(ctx, campaign); err != nil {
		return nil, fmt.Errorf("insert campaign: %w", err)
	}
	return campaign, nil
}

func (r *MongoCampaignRepository) FindByID(ctx context.Context, id string) (*domain.Campaign, error) {
	var campaign domain.Campaign
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&campaign); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCampaignNotFound
		}
		return nil, fmt.Errorf("find campaign: %w", err)
	}
	return &campaign, nil
}

func (r *MongoCampaignRepository) Update(ctx context.Context, campaign *domain.Campaign) (*domain.Campaign, error) {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": campaign.ID}, campaign)
	if err != nil {
		return nil, fmt.Errorf("update campaign: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrCampaignNotFound
	}
	return campaign, nil
}

func (r *MongoCampaignRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete campaign: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCampaignNotFound
	}
	return nil
}

func (r *MongoCampaignRepository) ListByBrand(ctx context.Context, brandID string) ([]domain.Campaign, error) {
	return r.list(ctx, bson.M{"brand_id": brandID})
}

func (r *MongoCampaignRepository) ListActive(ctx context.Context, niche string) ([]domain.Campaign, error) {
	filter := bson.M{"status": domain.CampaignActive}
	if niche != "" {
		filter["niche"] = niche
	}
	return r.list(ctx, filter)
}

func (r *MongoCampaignRepository) list(ctx context.Context, filter bson.M) ([]domain.Campaign, error) {
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	defer cursor.Close(ctx)

	var campaigns []domain.Campaign
	if err := cursor.All(ctx, &campaigns); err != nil {
		return nil, fmt.Errorf("decode campaigns: %w", err)
	}
	return campaigns, nil
}
