package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/larlarbooks/larlar/pkg/auth"
	"github.com/larlarbooks/larlar/pkg/authors"
	"github.com/larlarbooks/larlar/pkg/binder"
	"github.com/larlarbooks/larlar/pkg/books"
	"github.com/larlarbooks/larlar/pkg/config"
	"github.com/larlarbooks/larlar/pkg/errcodes"
	"github.com/larlarbooks/larlar/pkg/genres"
	"github.com/larlarbooks/larlar/pkg/publishers"
	"github.com/larlarbooks/larlar/pkg/storage"
	"github.com/larlarbooks/larlar/pkg/uploads"
	"github.com/larlarbooks/larlar/pkg/users"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/health"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/echo/v4/middleware/recovery"
	"github.com/uptrace/bun"
)

func New(cfg *config.Config, db *bun.DB, store storage.Store) (*http.Server, error) {
	e, err := newEcho(cfg, db, store)
	if err != nil {
		return nil, err
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:           e,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return srv, nil
}

func newEcho(cfg *config.Config, db *bun.DB, store storage.Store) (*echo.Echo, error) {
	e := echo.New()

	b, err := binder.New()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	e.Binder = b

	e.Use(logger.Middleware())
	e.Use(recovery.Middleware())
	e.Use(middleware.CORS())

	health.RegisterRoutes(e)

	authMiddleware := auth.RegisterRoutes(e, db, cfg.JWTSecret)

	users.RegisterRoutes(e, db, authMiddleware)
	authors.RegisterRoutes(e, db, authMiddleware)
	genres.RegisterRoutes(e, db, authMiddleware)
	publishers.RegisterRoutes(e, db, authMiddleware)
	books.RegisterRoutes(e, db, cfg, store, authMiddleware)
	uploads.RegisterRoutes(e, cfg, store, authMiddleware)

	e.RouteNotFound("/*", notFoundHandler)
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	return e, nil
}

func notFoundHandler(c echo.Context) error {
	c.SetPath("/:path")
	return errcodes.NotFound("Page")
}
