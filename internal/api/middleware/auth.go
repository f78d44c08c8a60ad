package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/frienemy/social-api/internal/core/domain"
)

// ClaimKey is the echo context key the verified identity claim is stored under.
const ClaimKey = "identity"

// TokenVerifier is the slice of the credential service the gate needs.
type TokenVerifier interface {
	VerifyToken(token string) (*domain.IdentityClaim, error)
}

// Auth authenticates the bearer token and injects the identity claim into
// the request context. It performs no writes and never swallows handler
// errors; on failure the handler is never reached.
func Auth(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claim, err := verifier.VerifyToken(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(ClaimKey, claim)
			return next(c)
		}
	}
}
