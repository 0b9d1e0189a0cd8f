package books

import (
	"github.com/labstack/echo/v4"
	"github.com/larlarbooks/larlar/pkg/auth"
	"github.com/larlarbooks/larlar/pkg/config"
	"github.com/larlarbooks/larlar/pkg/storage"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers the book routes. Reads are public, every write
// requires a session.
func RegisterRoutes(e *echo.Echo, db *bun.DB, cfg *config.Config, store storage.Store, authMiddleware *auth.Middleware) *Service {
	bookService := NewService(db, store, cfg.EnforcePublishedLock)

	h := &handler{
		bookService: bookService,
		store:       store,
	}

	g := e.Group("/books")
	g.GET("", h.list)
	g.GET("/:id", h.retrieve)

	w := g.Group("", authMiddleware.Authenticate)
	w.POST("", h.create)
	w.PATCH("/:id", h.update)
	w.POST("/:id/publish", h.publish)
	w.PUT("/:id/authors", h.updateAuthors)
	w.PUT("/:id/genres", h.updateGenres)
	w.PUT("/:id/publishers", h.updatePublishers)
	w.PUT("/:id/chapters", h.attachChapters)
	w.PUT("/:id/pdf", h.attachPDF)

	return bookService
}
