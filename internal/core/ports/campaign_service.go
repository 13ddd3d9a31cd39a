package ports

import (
	"context"
	"time"

	"github.com/collabhub/marketplace-api/internal/core/domain"
)

// CreateCampaignInput carries the fields a brand supplies for a new
// campaign. Campaigns always start as drafts.
type CreateCampaignInput struct {
	BrandID      string
	Title        string
	Description  string
	Budget       float64
	Deadline     time.Time
	Requirements []string
	Niche        string
}

// UpdateCampaignInput is a partial update; nil fields are left alone.
type UpdateCampaignInput struct {
	Title        *string
	Description  *string
	Budget       *float64
	Deadline     *time.Time
	Requirements *[]string
	Niche        *string
}

// CampaignService implements the brand campaign lifecycle. Mutations are
// owner-gated: a brand can only touch its own campaigns
// (domain.ErrForbidden otherwise).
type CampaignService interface {
	Create(ctx context.Context, input CreateCampaignInput) (*domain.Campaign, error)
	Get(ctx context.Context, id string) (*domain.Campaign, error)
	Update(ctx context.Context, brandID, id string, input UpdateCampaignInput) (*domain.Campaign, error)
	Delete(ctx context.Context, brandID, id string) error
	// Publish moves a draft to active. domain.ErrInvalidTransition when
	// the campaign is not a draft.
	Publish(ctx context.Context, brandID, id string) (*domain.Campaign, error)
	Complete(ctx context.Context, brandID, id string) (*domain.Campaign, error)
	Cancel(ctx context.Context, brandID, id string) (*domain.Campaign, error)
	ListByBrand(ctx context.Context, brandID string) ([]domain.Campaign, error)
	ListActive(ctx context.Context, niche string) ([]domain.Campaign, error)
}
