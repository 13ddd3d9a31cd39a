package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/collabhub/marketplace-api/internal/core/domain"
	"github.com/collabhub/marketplace-api/internal/core/ports"
)

type CampaignHandler struct {
	campaigns ports.CampaignService
}

func NewCampaignHandler(campaigns ports.CampaignService) *CampaignHandler {
	return &CampaignHandler{campaigns: campaigns}
}

type createCampaignRequest struct {
	Title        string    `json:"title"       validate:"required,min=3"`
	Description  string    `json:"description" validate:"required,min=10"`
	Budget       float64   `json:"budget"      validate:"required,gt=0"`
	Deadline     time.Time `json:"deadline"    validate:"required"`
	Requirements []string  `json:"requirements,omitempty"`
	Niche        string    `json:"niche"       validate:"required"`
}

type updateCampaignRequest struct {
	Title        *string    `json:"title,omitempty"`
	Description  *string    `json:"description,omitempty"`
	Budget       *float64   `json:"budget,omitempty"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	Requirements *[]string  `json:"requirements,omitempty"`
	Niche        *string    `json:"niche,omitempty"`
}

// Create opens a new draft campaign for the calling brand.
//
// @Summary      Create a campaign
// @Tags         campaigns
// @Accept       json
// @Produce      json
// @Param        body  body      createCampaignRequest  true  "Campaign fields"
// @Success      201   {object}  domain.Campaign
// @Failure      400   {object}  map[string]string
// @Security     BearerAuth
// @Router       /campaigns [post]
func (h *CampaignHandler) Create(c echo.Context) error {
	brandID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createCampaignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	campaign, err := h.campaigns.Create(c.Request().Context(), ports.CreateCampaignInput{
		BrandID:      brandID,
		Title:        req.Title,
		Description:  req.Description,
		Budget:       req.Budget,
		Deadline:     req.Deadline,
		Requirements: req.Requirements,
		Niche:        req.Niche,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, campaign)
}

// Get returns one campaign.
//
// @Summary      Get a campaign
// @Tags         campaigns
// @Produce      json
// @Param        id   path      string  true  "Campaign id"
// @Success      200  {object}  domain.Campaign
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /campaigns/{id} [get]
func (h *CampaignHandler) Get(c echo.Context) error {
	campaign, err := h.campaigns.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, campaign)
}

// Update edits a draft's fields; only the owning brand may edit.
//
// @Summary      Update a campaign
// @Tags         campaigns
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "Campaign id"
// @Param        body  body      updateCampaignRequest  true  "Fields to change"
// @Success      200   {object}  domain.Campaign
// @Failure      403   {object}  map[string]string
// @Security     BearerAuth
// @Router       /campaigns/{id} [put]
func (h *CampaignHandler) Update(c echo.Context) error {
	brandID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateCampaignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	campaign, err := h.campaigns.Update(c.Request().Context(), brandID, c.Param("id"), ports.UpdateCampaignInput{
		Title:        req.Title,
		Description:  req.Description,
		Budget:       req.Budget,
		Deadline:     req.Deadline,
		Requirements: req.Requirements,
		Niche:        req.Niche,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, campaign)
}

// Delete removes a campaign; only the owning brand may delete.
//
// @Summary      Delete a campaign
// @Tags         campaigns
// @Param        id  path  string  true  "Campaign id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Security     BearerAuth
// @Router       /campaigns/{id} [delete]
func (h *CampaignHandler) Delete(c echo.Context) error {
	brandID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	if err := h.campaigns.Delete(c.Request().Context(), brandID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Publish moves a draft campaign to active so creators can see it.
//
// @Summary      Publish a campaign
// @Tags         campaigns
// @Produce      json
// @Param        id   path      string  true  "Campaign id"
// @Success      200  {object}  domain.Campaign
// @Failure      422  {object}  map[string]string
// @Security     BearerAuth
// @Router       /campaigns/{id}/publish [post]
func (h *CampaignHandler) Publish(c echo.Context) error {
	return h.transition(c, h.campaigns.Publish)
}

// Complete marks an active campaign finished.
//
// @Summary      Complete a campaign
// @Tags         campaigns
// @Produce      json
// @Param        id   path      string  true  "Campaign id"
// @Success      200  {object}  domain.Campaign
// @Failure      422  {object}  map[string]string
// @Security     BearerAuth
// @Router       /campaigns/{id}/complete [post]
func (h *CampaignHandler) Complete(c echo.Context) error {
	return h.transition(c, h.campaigns.Complete)
}

// Cancel aborts a draft or active campaign.
//
// @Summary      Cancel a campaign
// @Tags         campaigns
// @Produce      json
// @Param        id   path      string  true  "Campaign id"
// @Success      200  {object}  domain.Campaign
// @Failure      422  {object}  map[string]string
// @Security     BearerAuth
// @Router       /campaigns/{id}/cancel [post]
func (h *CampaignHandler) Cancel(c echo.Context) error {
	return h.transition(c, h.campaigns.Cancel)
}

// List returns campaigns for the caller: brands see their own, creators
// see active campaigns filtered by the niche query parameter.
//
// @Summary      List campaigns
// @Tags         campaigns
// @Produce      json
// @Param        niche  query    string  false  "Niche filter (creators only)"
// @Success      200  {array}  domain.Campaign
// @Security     BearerAuth
// @Router       /campaigns [get]
func (h *CampaignHandler) List(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if role == domain.RoleBrand {
		campaigns, err := h.campaigns.ListByBrand(c.Request().Context(), userID)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, campaigns)
	}

	campaigns, err := h.campaigns.ListActive(c.Request().Context(), c.QueryParam("niche"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, campaigns)
}

func (h *CampaignHandler) transition(c echo.Context, fn func(ctx context.Context, brandID, id string) (*domain.Campaign, error)) error {
	brandID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	campaign, err := fn(c.Request().Context(), brandID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, campaign)
}
