package auth

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/larlarbooks/larlar/pkg/errcodes"
	"github.com/larlarbooks/larlar/pkg/models"
)

// Middleware provides authentication middleware.
type Middleware struct {
	authService *Service
}

// NewMiddleware creates a new auth middleware.
func NewMiddleware(authService *Service) *Middleware {
	return &Middleware{
		authService: authService,
	}
}

// Authenticate extracts and validates the JWT from the session cookie or the
// Authorization header. If valid, it verifies the user still exists and
// stores the RequestContext. If not authenticated, it returns 401.
func (m *Middleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := tokenFromRequest(c)
		if token == "" {
			return errcodes.Unauthorized("Authentication required")
		}

		user, err := m.userFromToken(c, token)
		if err != nil {
			return err
		}

		SetRequestContext(c, NewRequestContext(user.ID), user)
		return next(c)
	}
}

// AuthenticateOptional stores the RequestContext if a valid session is
// present and otherwise continues anonymously.
func (m *Middleware) AuthenticateOptional(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		rc := Anonymous
		var user *models.User
		if token := tokenFromRequest(c); token != "" {
			if u, err := m.userFromToken(c, token); err == nil {
				user = u
				rc = NewRequestContext(u.ID)
			}
		}
		SetRequestContext(c, rc, user)
		return next(c)
	}
}

func (m *Middleware) userFromToken(c echo.Context, token string) (*models.User, error) {
	claims, err := m.authService.ValidateToken(token)
	if err != nil {
		return nil, errcodes.Unauthorized("Invalid or expired token")
	}

	user, err := m.authService.GetUserByID(c.Request().Context(), claims.UserID)
	if err != nil {
		return nil, errcodes.Unauthorized("User not found")
	}
	return user, nil
}

func tokenFromRequest(c echo.Context) string {
	if cookie, err := c.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}
