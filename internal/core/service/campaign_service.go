package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/collabhub/marketplace-api/internal/core/domain"
	"github.com/collabhub/marketplace-api/internal/core/ports"
)

var ErrInvalidCampaign = errors.New("invalid campaign input")

type CampaignService struct {
	repo   ports.CampaignRepository
	logger zerolog.Logger
}

func NewCampaignService(repo ports.CampaignRepository, logger zerolog.Logger) *CampaignService {
	return &CampaignService{repo: repo, logger: logger}
}

// Create stores a new draft campaign for the brand.
func (s *CampaignService) Create(ctx context.Context, input ports.CreateCampaignInput) (*domain.Campaign, error) {
	if input.BrandID == "" || input.Title == "" {
		return nil, ErrInvalidCampaign
	}

	now := time.Now().UTC()
	campaign := &domain.Campaign{
		ID:           "cmp_" + uuid.NewString(),
		BrandID:      input.BrandID,
		Title:        input.Title,
		Description:  input.Description,
		Budget:       input.Budget,
		Deadline:     input.Deadline,
		Requirements: input.Requirements,
		Niche:        input.Niche,
		Status:       domain.CampaignDraft,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, campaign)
	if err != nil {
		s.logger.Error().Err(err).Str("brand_id", input.BrandID).Msg("failed to create campaign")
		return nil, err
	}

	s.logger.Info().Str("campaign_id", created.ID).Str("brand_id", input.BrandID).Msg("campaign created")
	return created, nil
}

func (s *CampaignService) Get(ctx context.Context, id string) (*domain.Campaign, error) {
	return s.repo.FindByID(ctx, id)
}

// Update applies a partial edit to a campaign the brand owns.
func (s *CampaignService) Update(ctx context.Context, brandID, id string, input ports.UpdateCampaignInput) (*domain.Campaign, error) {
	campaign, err := s.owned(ctx, brandID, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		campaign.Title = *input.Title
	}
	if input.Description != nil {
		campaign.Description = *input.Description
	}
	if input.Budget != nil {
		campaign.Budget = *input.Budget
	}
	if input.Deadline != nil {
		campaign.Deadline = *input.Deadline
	}
	if input.Requirements != nil {
		campaign.Requirements = *input.Requirements
	}
	if input.Niche != nil {
		campaign.Niche = *input.Niche
	}
	campaign.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, campaign)
}

func (s *CampaignService) Delete(ctx context.Context, brandID, id string) error {
	if _, err := s.owned(ctx, brandID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Publish moves a draft campaign to active, making it visible to creators.
func (s *CampaignService) Publish(ctx context.Context, brandID, id string) (*domain.Campaign, error) {
	return s.transition(ctx, brandID, id, domain.CampaignActive)
}

func (s *CampaignService) Complete(ctx context.Context, brandID, id string) (*domain.Campaign, error) {
	return s.transition(ctx, brandID, id, domain.CampaignCompleted)
}

func (s *CampaignService) Cancel(ctx context.Context, brandID, id string) (*domain.Campaign, error) {
	return s.transition(ctx, brandID, id, domain.CampaignCancelled)
}

func (s *CampaignService) ListByBrand(ctx context.Context, brandID string) ([]domain.Campaign, error) {
	return s.repo.ListByBrand(ctx, brandID)
}

func (s *CampaignService) ListActive(ctx context.Context, niche string) ([]domain.Campaign, error) {
	return s.repo.ListActive(ctx, niche)
}

func (s *CampaignService) transition(ctx context.Context, brandID, id string, next domain.CampaignStatus) (*domain.Campaign, error) {
	campaign, err := s.owned(ctx, brandID, id)
	if err != nil {
		return nil, err
	}
	if !campaign.Status.CanTransitionTo(next) {
		return nil, domain.ErrInvalidTransition
	}

	now := time.Now().UTC()
	campaign.Status = next
	campaign.UpdatedAt = now
	if next == domain.CampaignActive {
		campaign.PublishedAt = &now
	}

	updated, err := s.repo.Update(ctx, campaign)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("campaign_id", id).Str("status", string(next)).Msg("campaign status changed")
	return updated, nil
}

func (s *CampaignService) owned(ctx context.Context, brandID, id string) (*domain.Campaign, error) {
	campaign, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if campaign.BrandID != brandID {
		return nil, domain.ErrForbidden
	}
	return campaign, nil
}
