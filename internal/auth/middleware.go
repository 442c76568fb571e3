package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// identityKey is where the verified identity lives in the echo context.
const identityKey = "auth.identity"

// Middleware rejects requests without a valid bearer credential and attaches
// the verified identity for downstream handlers.
func Middleware(v *Verifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authorization header is required")
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authorization header must be: Bearer <token>")
			}

			identity, err := v.Verify(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			SetIdentity(c, identity)
			return next(c)
		}
	}
}

// SetIdentity attaches a verified identity to the request. Called by the
// middleware; exported so handler tests can authenticate a bare context.
func SetIdentity(c echo.Context, identity *Identity) {
	c.Set(identityKey, identity)
}

// IdentityFrom returns the verified identity, or nil on an unauthenticated
// context.
func IdentityFrom(c echo.Context) *Identity {
	identity, _ := c.Get(identityKey).(*Identity)
	return identity
}
