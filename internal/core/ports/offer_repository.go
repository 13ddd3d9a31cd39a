package ports

import (
	"context"

	"github.com/collabhub/marketplace-api/internal/core/domain"
)

// OfferFilter narrows offer listings. Zero values mean "any".
type OfferFilter struct {
	BrandID    string
	CreatorID  string
	CampaignID string
	Status     domain.OfferStatus
}

// OfferRepository defines the interface for offer persistence.
type OfferRepository interface {
	Create(ctx context.Context, offer *domain.Offer) (*domain.Offer, error)
	FindByID(ctx context.Context, id string) (*domain.Offer, error)
	Update(ctx context.Context, offer *domain.Offer) (*domain.Offer, error)
	List(ctx context.Context, filter OfferFilter) ([]domain.Offer, error)
}
