package publishers

import (
	"github.com/labstack/echo/v4"
	"github.com/larlarbooks/larlar/pkg/auth"
	"github.com/uptrace/bun"
)

func RegisterRoutes(e *echo.Echo, db *bun.DB, authMiddleware *auth.Middleware) {
	h := &handler{
		publisherService: NewService(db),
	}

	g := e.Group("/publishers")
	g.GET("", h.list)
	g.POST("", h.create, authMiddleware.Authenticate)
}
