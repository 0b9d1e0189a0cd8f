package genres

import (
	"github.com/labstack/echo/v4"
	"github.com/larlarbooks/larlar/pkg/auth"
	"github.com/uptrace/bun"
)

func RegisterRoutes(e *echo.Echo, db *bun.DB, authMiddleware *auth.Middleware) {
	h := &handler{
		genreService: NewService(db),
	}

	g := e.Group("/genres")
	g.GET("", h.list)
	g.POST("", h.create, authMiddleware.Authenticate)
}
