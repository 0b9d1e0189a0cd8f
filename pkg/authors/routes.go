package authors

import (
	"github.com/labstack/echo/v4"
	"github.com/larlarbooks/larlar/pkg/auth"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers author lookup routes. Reads are public, creating
// requires a session.
func RegisterRoutes(e *echo.Echo, db *bun.DB, authMiddleware *auth.Middleware) {
	h := &handler{
		authorService: NewService(db),
	}

	g := e.Group("/authors")
	g.GET("", h.list)
	g.GET("/:id", h.retrieve)
	g.POST("", h.create, authMiddleware.Authenticate)
}
