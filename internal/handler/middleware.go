package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/XavierGabriel92/velt-booking/internal/auth"
	"github.com/XavierGabriel92/velt-booking/internal/models"
)

const (
	ctxToken   = "token"
	ctxUserID  = "userID"
	ctxScopeID = "scopeID"

	// ScopeHeader carries the caller's tab-scoped booking-session id. A new
	// one is minted and echoed back when the header is absent.
	ScopeHeader = "X-Client-Session"
)

// RequireAuth extracts the bearer token and its user id, and pins a
// client-scope id onto the request. Token verification stays with the
// backend; a token we cannot even read is rejected here.
func RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, err := auth.BearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			return unauthorized(c)
		}
		userID, err := auth.UserID(token)
		if err != nil {
			return unauthorized(c)
		}

		scopeID := c.Request().Header.Get(ScopeHeader)
		if scopeID == "" {
			scopeID = uuid.NewString()
		}
		c.Response().Header().Set(ScopeHeader, scopeID)

		c.Set(ctxToken, token)
		c.Set(ctxUserID, userID)
		c.Set(ctxScopeID, scopeID)
		return next(c)
	}
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
		Error:   "unauthorized",
		Message: "Session is invalid or expired, sign in again",
		Code:    http.StatusUnauthorized,
	})
}

func token(c echo.Context) string {
	s, _ := c.Get(ctxToken).(string)
	return s
}

func userID(c echo.Context) string {
	s, _ := c.Get(ctxUserID).(string)
	return s
}

func scopeID(c echo.Context) string {
	s, _ := c.Get(ctxScopeID).(string)
	return s
}
