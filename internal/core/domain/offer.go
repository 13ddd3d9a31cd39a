package domain

import (
	"errors"
	"time"
)

// OfferStatus represents the lifecycle state of a collaboration offer.
type OfferStatus string

const (
	OfferPending   OfferStatus = "pending"
	OfferAccepted  OfferStatus = "accepted"
	OfferRejected  OfferStatus = "rejected"
	OfferWithdrawn OfferStatus = "withdrawn"
)

// Only the brand may withdraw, only the creator may accept or reject; both
// transitions are terminal.
var validOfferTransitions = map[OfferStatus][]OfferStatus{
	OfferPending: {OfferAccepted, OfferRejected, OfferWithdrawn},
}

var ErrOfferNotFound = errors.New("offer not found")

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s OfferStatus) CanTransitionTo(next OfferStatus) bool {
	for _, allowed := range validOfferTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Offer is a brand's proposal to a specific creator for a campaign.
type Offer struct {
	ID           string      `json:"id" bson:"_id,omitempty"`
	CampaignID   string      `json:"campaign_id" bson:"campaign_id"`
	BrandID      string      `json:"brand_id" bson:"brand_id"`
	CreatorID    string      `json:"creator_id" bson:"creator_id"`
	Amount       float64     `json:"amount" bson:"amount"`
	Message      string      `json:"message" bson:"message"`
	Requirements []string    `json:"requirements" bson:"requirements"`
	Deadline     time.Time   `json:"deadline" bson:"deadline"`
	Status       OfferStatus `json:"status" bson:"status"`
	CreatedAt    time.Time   `json:"created_at" bson:"created_at"`
	ResolvedAt   *time.Time  `json:"resolved_at,omitempty" bson:"resolved_at,omitempty"`
}
