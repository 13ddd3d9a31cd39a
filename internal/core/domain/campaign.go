package domain

import (
	"errors"
	"time"
)

// CampaignStatus represents the lifecycle state of a campaign.
type CampaignStatus string

const (
	CampaignDraft     CampaignStatus = "draft"
	CampaignActive    CampaignStatus = "active"
	CampaignCompleted CampaignStatus = "completed"
	CampaignCancelled CampaignStatus = "cancelled"
)

// validCampaignTransitions defines the allowed state machine transitions.
var validCampaignTransitions = map[CampaignStatus][]CampaignStatus{
	CampaignDraft:  {CampaignActive, CampaignCancelled},
	CampaignActive: {CampaignCompleted, CampaignCancelled},
}

var ErrCampaignNotFound = errors.New("campaign not found")
var ErrInvalidTransition = errors.New("invalid status transition")
var ErrForbidden = errors.New("access forbidden")

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s CampaignStatus) CanTransitionTo(next CampaignStatus) bool {
	for _, allowed := range validCampaignTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Campaign is a brand's call for creator content.
type Campaign struct {
	ID           string         `json:"id" bson:"_id,omitempty"`
	BrandID      string         `json:"brand_id" bson:"brand_id"`
	Title        string         `json:"title" bson:"title"`
	Description  string         `json:"description" bson:"description"`
	Budget       float64        `json:"budget" bson:"budget"`
	Deadline     time.Time      `json:"deadline" bson:"deadline"`
	Requirements []string       `json:"requirements" bson:"requirements"`
	Niche        string         `json:"niche" bson:"niche"`
	Status       CampaignStatus `json:"status" bson:"status"`
	CreatedAt    time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" bson:"updated_at"`
	PublishedAt  *time.Time     `json:"published_at,omitempty" bson:"published_at,omitempty"`
}
