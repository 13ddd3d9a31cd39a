package ports

import (
	"context"
	"time"

	"github.com/collabhub/marketplace-api/internal/core/domain"
)

// SendOfferInput carries a brand's proposal to a creator.
type SendOfferInput struct {
	BrandID      string
	CampaignID   string
	CreatorID    string
	Amount       float64
	Message      string
	Requirements []string
	Deadline     time.Time
}

// OfferService implements the offer lifecycle: brands send and withdraw,
// creators accept and reject. Accepting an offer opens a conversation
// between the two parties.
type OfferService interface {
	Send(ctx context.Context, input SendOfferInput) (*domain.Offer, error)
	Get(ctx context.Context, userID, id string) (*domain.Offer, error)
	Accept(ctx context.Context, creatorID, id string) (*domain.Offer, error)
	Reject(ctx context.Context, creatorID, id string) (*domain.Offer, error)
	Withdraw(ctx context.Context, brandID, id string) (*domain.Offer, error)
	List(ctx context.Context, filter OfferFilter) ([]domain.Offer, error)
}
