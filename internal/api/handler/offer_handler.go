package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/collabhub/marketplace-api/internal/core/domain"
	"github.com/collabhub/marketplace-api/internal/core/ports"
)

type OfferHandler struct {
	offers ports.OfferService
}

func NewOfferHandler(offers ports.OfferService) *OfferHandler {
	return &OfferHandler{offers: offers}
}

type sendOfferRequest struct {
	CampaignID   string    `json:"campaign_id" validate:"required"`
	CreatorID    string    `json:"creator_id"  validate:"required"`
	Amount       float64   `json:"amount"      validate:"required,gt=0"`
	Message      string    `json:"message,omitempty"`
	Requirements []string  `json:"requirements,omitempty"`
	Deadline     time.Time `json:"deadline"    validate:"required"`
}

// Send proposes a collaboration to a creator against an active campaign.
//
// @Summary      Send an offer
// @Tags         offers
// @Accept       json
// @Produce      json
// @Param        body  body      sendOfferRequest  true  "Offer fields"
// @Success      201   {object}  domain.Offer
// @Failure      422   {object}  map[string]string
// @Security     BearerAuth
// @Router       /offers [post]
func (h *OfferHandler) Send(c echo.Context) error {
	brandID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req sendOfferRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	offer, err := h.offers.Send(c.Request().Context(), ports.SendOfferInput{
		BrandID:      brandID,
		CampaignID:   req.CampaignID,
		CreatorID:    req.CreatorID,
		Amount:       req.Amount,
		Message:      req.Message,
		Requirements: req.Requirements,
		Deadline:     req.Deadline,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, offer)
}

// Get returns one offer; only its brand or creator may read it.
//
// @Summary      Get an offer
// @Tags         offers
// @Produce      json
// @Param        id   path      string  true  "Offer id"
// @Success      200  {object}  domain.Offer
// @Failure      403  {object}  map[string]string
// @Security     BearerAuth
// @Router       /offers/{id} [get]
func (h *OfferHandler) Get(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	offer, err := h.offers.Get(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, offer)
}

// List returns the caller's offers, optionally filtered by status.
//
// @Summary      List offers
// @Tags         offers
// @Produce      json
// @Param        status  query    string  false  "Status filter"
// @Success      200  {array}  domain.Offer
// @Security     BearerAuth
// @Router       /offers [get]
func (h *OfferHandler) List(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	filter := ports.OfferFilter{Status: domain.OfferStatus(c.QueryParam("status"))}
	if role == domain.RoleBrand {
		filter.BrandID = userID
	} else {
		filter.CreatorID = userID
	}

	offers, err := h.offers.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, offers)
}

// Accept resolves a pending offer in the creator's favor and opens the
// conversation between the parties.
//
// @Summary      Accept an offer
// @Tags         offers
// @Produce      json
// @Param        id   path      string  true  "Offer id"
// @Success      200  {object}  domain.Offer
// @Failure      422  {object}  map[string]string
// @Security     BearerAuth
// @Router       /offers/{id}/accept [post]
func (h *OfferHandler) Accept(c echo.Context) error {
	return h.resolve(c, h.offers.Accept)
}

// Reject declines a pending offer.
//
// @Summary      Reject an offer
// @Tags         offers
// @Produce      json
// @Param        id   path      string  true  "Offer id"
// @Success      200  {object}  domain.Offer
// @Failure      422  {object}  map[string]string
// @Security     BearerAuth
// @Router       /offers/{id}/reject [post]
func (h *OfferHandler) Reject(c echo.Context) error {
	return h.resolve(c, h.offers.Reject)
}

// Withdraw retracts a pending offer; only the sending brand can.
//
// @Summary      Withdraw an offer
// @Tags         offers
// @Produce      json
// @Param        id   path      string  true  "Offer id"
// @Success      200  {object}  domain.Offer
// @Failure      422  {object}  map[string]string
// @Security     BearerAuth
// @Router       /offers/{id}/withdraw [post]
func (h *OfferHandler) Withdraw(c echo.Context) error {
	return h.resolve(c, h.offers.Withdraw)
}

func (h *OfferHandler) resolve(c echo.Context, fn func(ctx context.Context, userID, id string) (*domain.Offer, error)) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	offer, err := fn(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, offer)
}
