package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/collabhub/marketplace-api/internal/api/metrics"
	"github.com/collabhub/marketplace-api/internal/core/domain"
	"github.com/collabhub/marketplace-api/internal/core/ports"
)

type SessionHandler struct {
	sessions ports.SessionService
}

func NewSessionHandler(sessions ports.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

type sessionResponse struct {
	Phase           domain.SessionPhase `json:"phase"`
	IsAuthenticated bool                `json:"is_authenticated"`
	User            *domain.User        `json:"user,omitempty"`
	Role            domain.Role         `json:"role,omitempty"`
	Route           domain.Route        `json:"route"`
}

type setRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=creator brand"`
}

func toSessionResponse(sess domain.Session) sessionResponse {
	return sessionResponse{
		Phase:           sess.Phase,
		IsAuthenticated: sess.IsAuthenticated,
		User:            sess.User,
		Role:            sess.Role,
		Route:           domain.ResolveRoute(sess),
	}
}

// Restore rebuilds the device session from its stored credentials.
//
// @Summary      Restore a stored session
// @Tags         session
// @Produce      json
// @Param        X-Device-ID  header    string  true  "Device installation id"
// @Success      200   {object}  sessionResponse
// @Router       /session/restore [post]
func (h *SessionHandler) Restore(c echo.Context) error {
	device, err := ctxDevice(c)
	if err != nil {
		return err
	}

	sess, err := h.sessions.LoadStoredAuth(c.Request().Context(), device)
	if err != nil {
		metrics.SessionRestoresTotal.WithLabelValues("error").Inc()
		return err
	}

	if sess.IsAuthenticated {
		metrics.SessionRestoresTotal.WithLabelValues("authenticated").Inc()
	} else {
		metrics.SessionRestoresTotal.WithLabelValues("unauthenticated").Inc()
	}
	return c.JSON(http.StatusOK, toSessionResponse(sess))
}

// Current returns the in-memory session snapshot for the device.
//
// @Summary      Current session
// @Tags         session
// @Produce      json
// @Param        X-Device-ID  header    string  true  "Device installation id"
// @Success      200   {object}  sessionResponse
// @Router       /session [get]
func (h *SessionHandler) Current(c echo.Context) error {
	device, err := ctxDevice(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSessionResponse(h.sessions.Current(device)))
}

// Logout clears the device session and its stored credentials.
//
// @Summary      Log out
// @Tags         session
// @Produce      json
// @Param        X-Device-ID  header    string  true  "Device installation id"
// @Success      200   {object}  sessionResponse
// @Router       /session/logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	device, err := ctxDevice(c)
	if err != nil {
		return err
	}

	if err := h.sessions.Logout(c.Request().Context(), device); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSessionResponse(h.sessions.Current(device)))
}

// SetRole records the role picked on the selection screen. The choice is
// persisted before login so it survives an app restart.
//
// @Summary      Select a role
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        X-Device-ID  header    string          true  "Device installation id"
// @Param        body         body      setRoleRequest  true  "Selected role"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Router       /session/role [put]
func (h *SessionHandler) SetRole(c echo.Context) error {
	device, err := ctxDevice(c)
	if err != nil {
		return err
	}

	var req setRoleRequest
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
	if err := h.sessions.SetRole(c.Request().Context(), device, role); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSessionResponse(h.sessions.Current(device)))
}
