package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/collabhub/marketplace-api/internal/api/metrics"
	"github.com/collabhub/marketplace-api/internal/core/domain"
	"github.com/collabhub/marketplace-api/internal/core/ports"
)

type AuthHandler struct {
	gateway  ports.IdentityGateway
	sessions ports.SessionService
}

func NewAuthHandler(gateway ports.IdentityGateway, sessions ports.SessionService) *AuthHandler {
	return &AuthHandler{gateway: gateway, sessions: sessions}
}

type requestOTPRequest struct {
	Identifier string `json:"identifier" validate:"required"`
}

type requestOTPResponse struct {
	Identifier string `json:"identifier"`
	OTPSent    bool   `json:"otp_sent"`
}

type verifyOTPRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Code       string `json:"code"       validate:"required,len=6"`
}

type signupRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Role       string `json:"role"       validate:"required,oneof=creator brand"`
	Name       string `json:"name,omitempty"`
	Niche      string `json:"niche,omitempty"`
	Industry   string `json:"industry,omitempty"`
}

type authResponse struct {
	Token   string       `json:"token,omitempty"`
	User    *domain.User `json:"user,omitempty"`
	NewUser bool         `json:"new_user"`
	Route   domain.Route `json:"route"`
}

// RequestOTP issues a verification code for a phone number or email.
//
// @Summary      Request a verification code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      requestOTPRequest  true  "Identifier to verify"
// @Success      200   {object}  requestOTPResponse
// @Failure      400   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /auth/otp/request [post]
func (h *AuthHandler) RequestOTP(c echo.Context) error {
	var req requestOTPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.gateway.RequestOTP(c.Request().Context(), req.Identifier)
	if err != nil {
		metrics.OTPRequestsTotal.WithLabelValues(otpRequestReason(err)).Inc()
		return err
	}

	metrics.OTPRequestsTotal.WithLabelValues("issued").Inc()
	return c.JSON(http.StatusOK, requestOTPResponse{Identifier: res.Identifier, OTPSent: res.Delivered})
}

// VerifyOTP checks a verification code. Known identifiers come back logged
// in with a session established for the device; unseen ones get new_user
// so the client can collect a role and call signup.
//
// @Summary      Verify a code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        X-Device-ID  header    string            true  "Device installation id"
// @Param        body         body      verifyOTPRequest  true  "Identifier and code"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /auth/otp/verify [post]
func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	device, err := ctxDevice(c)
	if err != nil {
		return err
	}

	var req verifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.gateway.VerifyOTP(c.Request().Context(), req.Identifier, req.Code)
	if err != nil {
		metrics.OTPVerificationsTotal.WithLabelValues(otpVerifyReason(err)).Inc()
		return err
	}
	metrics.OTPVerificationsTotal.WithLabelValues("ok").Inc()

	if res.NewUser {
		return c.JSON(http.StatusOK, authResponse{NewUser: true, Route: domain.RouteAuth})
	}

	sess, err := h.sessions.Login(c.Request().Context(), device, *res.User, res.Token)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{
		Token: res.Token,
		User:  res.User,
		Route: domain.ResolveRoute(sess),
	})
}

// CompleteSignup creates the account for a verified identifier with the
// selected role and logs the device in.
//
// @Summary      Complete signup
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        X-Device-ID  header    string         true  "Device installation id"
// @Param        body         body      signupRequest  true  "Identifier, role, and profile seed"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/signup [post]
func (h *AuthHandler) CompleteSignup(c echo.Context) error {
	device, err := ctxDevice(c)
	if err != nil {
		return err
	}

	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return err
	}

	seed := ports.ProfileSeed{Name: req.Name, Niche: req.Niche, Industry: req.Industry}
	res, err := h.gateway.CompleteSignup(c.Request().Context(), req.Identifier, role, seed)
	if err != nil {
		return err
	}

	sess, err := h.sessions.Login(c.Request().Context(), device, *res.User, res.Token)
	if err != nil {
		return err
	}

	metrics.SignupsTotal.WithLabelValues(string(role)).Inc()
	return c.JSON(http.StatusCreated, authResponse{
		Token: res.Token,
		User:  res.User,
		Route: domain.ResolveRoute(sess),
	})
}

func otpRequestReason(err error) string {
	switch err {
	case domain.ErrInvalidIdentifier:
		return "invalid_identifier"
	case domain.ErrTooManyRequests:
		return "rate_limited"
	default:
		return "error"
	}
}

func otpVerifyReason(err error) string {
	switch err {
	case domain.ErrInvalidCode:
		return "invalid"
	case domain.ErrCodeExpired:
		return "expired"
	case domain.ErrTooManyAttempts:
		return "locked_out"
	default:
		return "error"
	}
}
