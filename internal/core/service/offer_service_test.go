package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/collabhub/marketplace-api/internal/core/domain"
	"github.com/collabhub/marketplace-api/internal/core/ports"
)

type stubOfferRepo struct {
	offers map[string]*domain.Offer
}

func newStubOfferRepo() *stubOfferRepo {
	return &stubOfferRepo{offers: make(map[string]*domain.Offer)}
}

func cloneOffer(o *domain.Offer) *domain.Offer {
	if o == nil {
		return nil
	}
	clone := *o
	return &clone
}

func (r *stubOfferRepo) Create(_ context.Context, o *domain.Offer) (*domain.Offer, error) {
	r.offers[o.ID] = cloneOffer(o)
	return cloneOffer(o), nil
}

func (r *stubOfferRepo) FindByID(_ context.Context, id string) (*domain.Offer, error) {
	o, ok := r.offers[id]
	if !ok {
		return nil, domain.ErrOfferNotFound
	}
	return cloneOffer(o), nil
}

func (r *stubOfferRepo) Update(_ context.Context, o *domain.Offer) (*domain.Offer, error) {
	if _, ok := r.offers[o.ID]; !ok {
		return nil, domain.ErrOfferNotFound
	}
	r.offers[o.ID] = cloneOffer(o)
	return cloneOffer(o), nil
}

func (r *stubOfferRepo) List(_ context.Context, filter ports.OfferFilter) ([]domain.Offer, error) {
	var out []domain.Offer
	for _, o := range r.offers {
		if filter.BrandID != "" && o.BrandID != filter.BrandID {
			continue
		}
		if filter.CreatorID != "" && o.CreatorID != filter.CreatorID {
			continue
		}
		if filter.CampaignID != "" && o.CampaignID != filter.CampaignID {
			continue
		}
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		out = append(out, *o)
	}
	return out, nil
}

// stubChats records Open calls.
type stubChats struct {
	opened []string
	fail   bool
}

func (s *stubChats) Open(_ context.Context, offer domain.Offer) (*domain.Conversation, error) {
	if s.fail {
		return nil, errors.New("chat store down")
	}
	s.opened = append(s.opened, offer.ID)
	return &domain.Conversation{ID: "chat_1", OfferID: offer.ID}, nil
}

func (s *stubChats) Get(context.Context, string, string) (*domain.Conversation, error) {
	return nil, domain.ErrConversationNotFound
}

func (s *stubChats) ListForUser(context.Context, string) ([]domain.Conversation, error) {
	return nil, nil
}

func (s *stubChats) Send(context.Context, string, string, string) (*domain.Message, error) {
	return nil, domain.ErrConversationNotFound
}

func (s *stubChats) Deliver(context.Context, ports.OutboundMessage) error { return nil }

func (s *stubChats) Messages(context.Context, string, string, int) ([]domain.Message, error) {
	return nil, nil
}

func offerFixture(t *testing.T) (*OfferService, *stubChats, *domain.Offer) {
	t.Helper()
	campaigns := newStubCampaignRepo()
	campaigns.campaigns["cmp_1"] = &domain.Campaign{
		ID:      "cmp_1",
		BrandID: "usr_brand_1",
		Status:  domain.CampaignActive,
		Niche:   "lifestyle",
	}
	chats := &stubChats{}
	svc := NewOfferService(newStubOfferRepo(), campaigns, chats, zerolog.Nop())

	offer, err := svc.Send(context.Background(), ports.SendOfferInput{
		BrandID:    "usr_brand_1",
		CampaignID: "cmp_1",
		CreatorID:  "usr_creator_1",
		Amount:     1500,
		Message:    "We love your lifestyle content!",
		Deadline:   time.Now().Add(14 * 24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	return svc, chats, offer
}

func TestOfferService_Send_StartsPending(t *testing.T) {
	_, _, offer := offerFixture(t)
	if offer.Status != domain.OfferPending {
		t.Fatalf("expected pending, got %s", offer.Status)
	}
	if offer.ID == "" {
		t.Fatalf("expected generated id")
	}
}

func TestOfferService_Send_RequiresActiveCampaign(t *testing.T) {
	campaigns := newStubCampaignRepo()
	campaigns.campaigns["cmp_1"] = &domain.Campaign{ID: "cmp_1", BrandID: "usr_brand_1", Status: domain.CampaignDraft}
	svc := NewOfferService(newStubOfferRepo(), campaigns, &stubChats{}, zerolog.Nop())

	_, err := svc.Send(context.Background(), ports.SendOfferInput{
		BrandID: "usr_brand_1", CampaignID: "cmp_1", CreatorID: "usr_creator_1", Amount: 100,
	})
	if !errors.Is(err, ErrCampaignNotActive) {
		t.Fatalf("expected ErrCampaignNotActive, got %v", err)
	}
}

func TestOfferService_Send_OnlyCampaignOwner(t *testing.T) {
	campaigns := newStubCampaignRepo()
	campaigns.campaigns["cmp_1"] = &domain.Campaign{ID: "cmp_1", BrandID: "usr_brand_1", Status: domain.CampaignActive}
	svc := NewOfferService(newStubOfferRepo(), campaigns, &stubChats{}, zerolog.Nop())

	_, err := svc.Send(context.Background(), ports.SendOfferInput{
		BrandID: "usr_brand_2", CampaignID: "cmp_1", CreatorID: "usr_creator_1", Amount: 100,
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestOfferService_Accept_OpensConversation(t *testing.T) {
	svc, chats, offer := offerFixture(t)

	accepted, err := svc.Accept(context.Background(), "usr_creator_1", offer.ID)
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if accepted.Status != domain.OfferAccepted {
		t.Fatalf("expected accepted, got %s", accepted.Status)
	}
	if accepted.ResolvedAt == nil {
		t.Fatalf("expected resolved timestamp")
	}
	if len(chats.opened) != 1 || chats.opened[0] != offer.ID {
		t.Fatalf("conversation not opened: %v", chats.opened)
	}
}

func TestOfferService_Accept_ChatFailureDoesNotUndoOffer(t *testing.T) {
	svc, chats, offer := offerFixture(t)
	chats.fail = true

	accepted, err := svc.Accept(context.Background(), "usr_creator_1", offer.ID)
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if accepted.Status != domain.OfferAccepted {
		t.Fatalf("offer resolution rolled back on chat failure")
	}
}

func TestOfferService_Accept_OnlyRecipient(t *testing.T) {
	svc, _, offer := offerFixture(t)

	if _, err := svc.Accept(context.Background(), "usr_creator_2", offer.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestOfferService_ResolutionIsTerminal(t *testing.T) {
	svc, _, offer := offerFixture(t)

	if _, err := svc.Reject(context.Background(), "usr_creator_1", offer.ID); err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if _, err := svc.Accept(context.Background(), "usr_creator_1", offer.ID); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition after reject, got %v", err)
	}
	if _, err := svc.Withdraw(context.Background(), "usr_brand_1", offer.ID); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition after reject, got %v", err)
	}
}

func TestOfferService_Withdraw_OnlyBrand(t *testing.T) {
	svc, _, offer := offerFixture(t)

	if _, err := svc.Withdraw(context.Background(), "usr_creator_1", offer.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	withdrawn, err := svc.Withdraw(context.Background(), "usr_brand_1", offer.ID)
	if err != nil {
		t.Fatalf("withdraw failed: %v", err)
	}
	if withdrawn.Status != domain.OfferWithdrawn {
		t.Fatalf("expected withdrawn, got %s", withdrawn.Status)
	}
}

func TestOfferService_List_FiltersByStatus(t *testing.T) {
	svc, _, offer := offerFixture(t)
	_, _ = svc.Accept(context.Background(), "usr_creator_1", offer.ID)

	accepted, err := svc.List(context.Background(), ports.OfferFilter{CreatorID: "usr_creator_1", Status: domain.OfferAccepted})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(accepted) != 1 {
		t.Fatalf("expected 1 accepted offer, got %d", len(accepted))
	}

	pending, _ := svc.List(context.Background(), ports.OfferFilter{CreatorID: "usr_creator_1", Status: domain.OfferPending})
	if len(pending) != 0 {
		t.Fatalf("expected no pending offers, got %d", len(pending))
	}
}
