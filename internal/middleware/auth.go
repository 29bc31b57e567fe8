package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ticketplace/backend/internal/tokens"
)

// UserIDKey is where RequireAuth stores the verified subject in the echo
// context.
const UserIDKey = "user_id"

type RequireAuth struct {
	Verifier *tokens.Verifier
}

func NewRequireAuth(v *tokens.Verifier) *RequireAuth {
	return &RequireAuth{Verifier: v}
}

// Middleware authorizes the request from the accessToken cookie or an
// Authorization bearer header. Only access-kind tokens pass; a refresh
// token is not a bearer credential.
func (m *RequireAuth) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := tokenFromRequest(c)
		if token == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
		}

		claims, err := m.Verifier.Verify(token)
		if err != nil || claims.Kind != tokens.KindAccess {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}

		c.Set(UserIDKey, claims.Subject)
		return next(c)
	}
}

func tokenFromRequest(c echo.Context) string {
	if cookie, err := c.Cookie("accessToken"); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	if after, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return after
	}
	return ""
}
