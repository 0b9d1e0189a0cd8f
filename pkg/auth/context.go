package auth

import (
	"github.com/labstack/echo/v4"
	"github.com/larlarbooks/larlar/pkg/models"
)

const (
	requestContextKey = "request_context"
	userKey           = "user"
)

// RequestContext is the session state of a request. Handlers pass it
// explicitly into services instead of services reading the session.
type RequestContext struct {
	UserID          string
	IsAuthenticated bool
}

// Anonymous is the RequestContext of a request without a session.
var Anonymous = RequestContext{}

// NewRequestContext returns the context of a request made by userID.
func NewRequestContext(userID string) RequestContext {
	return RequestContext{UserID: userID, IsAuthenticated: userID != ""}
}

// RequestContextFrom returns the RequestContext stored on c by the
// middleware, or Anonymous.
func RequestContextFrom(c echo.Context) RequestContext {
	rc, ok := c.Get(requestContextKey).(RequestContext)
	if !ok {
		return Anonymous
	}
	return rc
}

// SetRequestContext stores rc (and the loaded user, if any) on c.
func SetRequestContext(c echo.Context, rc RequestContext, user *models.User) {
	c.Set(requestContextKey, rc)
	if user != nil {
		c.Set(userKey, user)
	}
}

// UserFrom returns the user loaded by the middleware, if any.
func UserFrom(c echo.Context) *models.User {
	user, _ := c.Get(userKey).(*models.User)
	return user
}
