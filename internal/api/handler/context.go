package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxActor extracts the authenticated actor injected by the Auth middleware
// and performs a fast-fail check before any service call: every route behind
// the middleware needs a concrete user identity, so a token without a
// user_id claim is structurally valid but operationally unusable.
func ctxActor(c echo.Context) (userID, role string, err error) {
	userID, _ = c.Get("user_id").(string)
	role, _ = c.Get("role").(string)
	if userID == "" || role == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, role, nil
}
