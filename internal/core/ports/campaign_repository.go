package ports

import (
	"context"

	"github.com/collabhub/marketplace-api/internal/core/domain"
)

// CampaignRepository defines the interface for campaign persistence.
type CampaignRepository interface {
	Create(ctx context.Context, campaign *domain.Campaign) (*domain.Campaign, error)
	FindByID(ctx context.Context, id string) (*domain.Campaign, error)
	Update(ctx context.Context, campaign *domain.Campaign) (*domain.Campaign, error)
	Delete(ctx context.Context, id string) error
	ListByBrand(ctx context.Context, brandID string) ([]domain.Campaign, error)
	// ListActive returns active campaigns, optionally filtered by niche.
	ListActive(ctx context.Context, niche string) ([]domain.Campaign, error)
}
