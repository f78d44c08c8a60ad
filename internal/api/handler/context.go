package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/frienemy/social-api/internal/api/middleware"
	"github.com/frienemy/social-api/internal/core/domain"
)

// ctxClaim extracts the identity claim injected by the Auth middleware and
// fast-fails before any service call when it is absent or lacks a subject.
func ctxClaim(c echo.Context) (*domain.IdentityClaim, error) {
	claim, _ := c.Get(middleware.ClaimKey).(*domain.IdentityClaim)
	if claim == nil || claim.ID == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return claim, nil
}
