package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/collabhub/marketplace-api/internal/core/domain"
	"github.com/collabhub/marketplace-api/internal/core/ports"
)

type ProfileHandler struct {
	sessions ports.SessionService
	users    ports.UserRepository
}

func NewProfileHandler(sessions ports.SessionService, users ports.UserRepository) *ProfileHandler {
	return &ProfileHandler{sessions: sessions, users: users}
}

type updateProfileRequest struct {
	Name           *string                `json:"name,omitempty"`
	Bio            *string                `json:"bio,omitempty"`
	Niche          *string                `json:"niche,omitempty"`
	SocialAccounts *domain.SocialAccounts `json:"social_accounts,omitempty"`
	Description    *string                `json:"description,omitempty"`
	Industry       *string                `json:"industry,omitempty"`
}

// Get returns the profile of the session user.
//
// @Summary      Own profile
// @Tags         profile
// @Produce      json
// @Param        X-Device-ID  header    string  true  "Device installation id"
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]string
// @Security     BearerAuth
// @Router       /profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	device, err := ctxDevice(c)
	if err != nil {
		return err
	}

	sess := h.sessions.Current(device)
	if !sess.IsAuthenticated || sess.User == nil {
		return domain.ErrNotAuthenticated
	}
	return c.JSON(http.StatusOK, sess.User)
}

// Update applies a partial profile edit through the session service so the
// stored record and the in-memory session stay consistent.
//
// @Summary      Update own profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        X-Device-ID  header    string                true  "Device installation id"
// @Param        body         body      updateProfileRequest  true  "Fields to change"
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]string
// @Security     BearerAuth
// @Router       /profile [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	device, err := ctxDevice(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	patch := domain.UserPatch{
		Name:           req.Name,
		Bio:            req.Bio,
		Niche:          req.Niche,
		SocialAccounts: req.SocialAccounts,
		Description:    req.Description,
		Industry:       req.Industry,
	}
	user, err := h.sessions.UpdateUser(c.Request().Context(), device, patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// ListCreators lets a brand browse onboarded creators, optionally by niche.
//
// @Summary      Browse creators
// @Tags         profile
// @Produce      json
// @Param        niche  query     string  false  "Niche filter"
// @Success      200  {array}  domain.User
// @Security     BearerAuth
// @Router       /creators [get]
func (h *ProfileHandler) ListCreators(c echo.Context) error {
	creators, err := h.users.ListCreators(c.Request().Context(), c.QueryParam("niche"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, creators)
}
