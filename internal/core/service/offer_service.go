package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/collabhub/marketplace-api/internal/api/metrics"
	"github.com/collabhub/marketplace-api/internal/core/domain"
	"github.com/collabhub/marketplace-api/internal/core/ports"
)

var ErrInvalidOffer = errors.New("invalid offer input")
var ErrCampaignNotActive = errors.New("campaign is not active")

type OfferService struct {
	repo      ports.OfferRepository
	campaigns ports.CampaignRepository
	chats     ports.ChatService
	logger    zerolog.Logger
}

func NewOfferService(repo ports.OfferRepository, campaigns ports.CampaignRepository, chats ports.ChatService, logger zerolog.Logger) *OfferService {
	return &OfferService{repo: repo, campaigns: campaigns, chats: chats, logger: logger}
}

// Send creates a pending offer from a brand to a creator. The campaign
// must belong to the brand and be active.
func (s *OfferService) Send(ctx context.Context, input ports.SendOfferInput) (*domain.Offer, error) {
	if input.BrandID == "" || input.CreatorID == "" || input.CampaignID == "" || input.Amount <= 0 {
		return nil, ErrInvalidOffer
	}

	campaign, err := s.campaigns.FindByID(ctx, input.CampaignID)
	if err != nil {
		return nil, err
	}
	if campaign.BrandID != input.BrandID {
		return nil, domain.ErrForbidden
	}
	if campaign.Status != domain.CampaignActive {
		return nil, ErrCampaignNotActive
	}

	offer := &domain.Offer{
		ID:           "offer_" + uuid.NewString(),
		CampaignID:   input.CampaignID,
		BrandID:      input.BrandID,
		CreatorID:    input.CreatorID,
		Amount:       input.Amount,
		Message:      input.Message,
		Requirements: input.Requirements,
		Deadline:     input.Deadline,
		Status:       domain.OfferPending,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, offer)
	if err != nil {
		return nil, err
	}

	metrics.OffersTotal.WithLabelValues(string(domain.OfferPending)).Inc()
	s.logger.Info().Str("offer_id", created.ID).Str("campaign_id", input.CampaignID).Str("creator_id", input.CreatorID).Msg("offer sent")
	return created, nil
}

// Get returns the offer if the caller is one of its parties.
func (s *OfferService) Get(ctx context.Context, userID, id string) (*domain.Offer, error) {
	offer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if offer.BrandID != userID && offer.CreatorID != userID {
		return nil, domain.ErrForbidden
	}
	return offer, nil
}

// Accept resolves a pending offer in the creator's favour and opens the
// conversation between the two parties.
func (s *OfferService) Accept(ctx context.Context, creatorID, id string) (*domain.Offer, error) {
	offer, err := s.resolve(ctx, id, domain.OfferAccepted, func(o *domain.Offer) bool {
		return o.CreatorID == creatorID
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.chats.Open(ctx, *offer); err != nil {
		// The offer is already resolved; a chat failure should not undo
		// that, the conversation opens lazily on first use instead.
		s.logger.Error().Err(err).Str("offer_id", id).Msg("failed to open conversation")
	}
	return offer, nil
}

func (s *OfferService) Reject(ctx context.Context, creatorID, id string) (*domain.Offer, error) {
	return s.resolve(ctx, id, domain.OfferRejected, func(o *domain.Offer) bool {
		return o.CreatorID == creatorID
	})
}

func (s *OfferService) Withdraw(ctx context.Context, brandID, id string) (*domain.Offer, error) {
	return s.resolve(ctx, id, domain.OfferWithdrawn, func(o *domain.Offer) bool {
		return o.BrandID == brandID
	})
}

func (s *OfferService) List(ctx context.Context, filter ports.OfferFilter) ([]domain.Offer, error) {
	return s.repo.List(ctx, filter)
}

func (s *OfferService) resolve(ctx context.Context, id string, next domain.OfferStatus, allowed func(*domain.Offer) bool) (*domain.Offer, error) {
	offer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !allowed(offer) {
		return nil, domain.ErrForbidden
	}
	if !offer.Status.CanTransitionTo(next) {
		return nil, domain.ErrInvalidTransition
	}

	now := time.Now().UTC()
	offer.Status = next
	offer.ResolvedAt = &now

	updated, err := s.repo.Update(ctx, offer)
	if err != nil {
		return nil, err
	}

	metrics.OffersTotal.WithLabelValues(string(next)).Inc()
	s.logger.Info().Str("offer_id", id).Str("status", string(next)).Msg("offer resolved")
	return updated, nil
}
