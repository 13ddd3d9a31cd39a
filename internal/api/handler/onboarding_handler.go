package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/collabhub/marketplace-api/internal/core/domain"
	"github.com/collabhub/marketplace-api/internal/core/ports"
)

type OnboardingHandler struct {
	flow ports.OnboardingService
}

func NewOnboardingHandler(flow ports.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{flow: flow}
}

type stepsResponse struct {
	Role  domain.Role `json:"role"`
	Steps []string    `json:"steps"`
}

type recordStepRequest struct {
	Values map[string]string `json:"values" validate:"required"`
}

type recordStepResponse struct {
	Step       string `json:"step"`
	CanAdvance bool   `json:"can_advance"`
}

type completeResponse struct {
	User  *domain.User `json:"user"`
	Route domain.Route `json:"route"`
}

// Steps lists the ordered onboarding steps for the caller's role.
//
// @Summary      Onboarding steps
// @Tags         onboarding
// @Produce      json
// @Success      200  {object}  stepsResponse
// @Security     BearerAuth
// @Router       /onboarding/steps [get]
func (h *OnboardingHandler) Steps(c echo.Context) error {
	_, role, err := ctxClaims(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stepsResponse{Role: role, Steps: h.flow.Steps(role)})
}

// RecordStep validates and stores one step's values. Values accumulate
// across calls, so revisiting a step keeps what was already entered.
//
// @Summary      Record an onboarding step
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Param        X-Device-ID  header    string             true  "Device installation id"
// @Param        step         path      string             true  "Step name"
// @Param        body         body      recordStepRequest  true  "Step values"
// @Success      200  {object}  recordStepResponse
// @Failure      422  {object}  map[string]string
// @Security     BearerAuth
// @Router       /onboarding/steps/{step} [put]
func (h *OnboardingHandler) RecordStep(c echo.Context) error {
	device, err := ctxDevice(c)
	if err != nil {
		return err
	}
	_, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req recordStepRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	step := c.Param("step")
	if err := h.flow.Record(c.Request().Context(), device, role, step, req.Values); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, recordStepResponse{
		Step:       step,
		CanAdvance: h.flow.CanAdvance(device, role, step),
	})
}

// Complete finishes onboarding: every step must validate, and only then is
// the assembled profile applied to the account.
//
// @Summary      Complete onboarding
// @Tags         onboarding
// @Produce      json
// @Param        X-Device-ID  header    string  true  "Device installation id"
// @Success      200  {object}  completeResponse
// @Failure      422  {object}  map[string]string
// @Security     BearerAuth
// @Router       /onboarding/complete [post]
func (h *OnboardingHandler) Complete(c echo.Context) error {
	device, err := ctxDevice(c)
	if err != nil {
		return err
	}
	_, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	user, err := h.flow.Complete(c.Request().Context(), device, role)
	if err != nil {
		return err
	}

	route := domain.RouteCreatorHome
	if role == domain.RoleBrand {
		route = domain.RouteBrandHome
	}
	return c.JSON(http.StatusOK, completeResponse{User: user, Route: route})
}
