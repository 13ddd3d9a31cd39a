package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/collabhub/marketplace-api/internal/core/domain"
)

// deviceHeader carries the installation identifier a client generates once
// and sends on every request. Session state is scoped to it.
const deviceHeader = "X-Device-ID"

// ctxDevice extracts the device identifier; every session-bound endpoint
// requires it.
func ctxDevice(c echo.Context) (string, error) {
	device := c.Request().Header.Get(deviceHeader)
	if device == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, "missing device identifier")
	}
	return device, nil
}

// ctxClaims extracts the auth claims injected by the Auth middleware and
// fast-fails before any service call: both a user id and a valid role must
// be present for the token to be operationally usable.
func ctxClaims(c echo.Context) (userID string, role domain.Role, err error) {
	userID, _ = c.Get("user_id").(string)
	if userID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	raw, _ := c.Get("role").(string)
	role, perr := domain.ParseRole(raw)
	if perr != nil {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "token missing role claim")
	}

	return userID, role, nil
}
