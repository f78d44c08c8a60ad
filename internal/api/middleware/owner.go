package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/frienemy/social-api/internal/core/domain"
)

// Owner authorizes that the authenticated identity owns the resource named
// in the request body. Requires Auth to have run first. A body that names a
// different id than the claim subject is rejected before the handler runs.
func Owner() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claim, _ := c.Get(ClaimKey).(*domain.IdentityClaim)
			if claim == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			body, err := io.ReadAll(c.Request().Body)
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
			}
			// Re-buffer so the handler can still bind the body.
			c.Request().Body = io.NopCloser(bytes.NewReader(body))

			var target struct {
				ID string `json:"id"`
			}
			if len(body) > 0 {
				// A malformed body is the handler's problem, not the gate's.
				_ = json.Unmarshal(body, &target)
			}

			if target.ID != "" && target.ID != claim.ID {
				return domain.ErrForbidden
			}

			return next(c)
		}
	}
}
