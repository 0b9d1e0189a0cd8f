package uploads

import (
	"github.com/labstack/echo/v4"
	"github.com/larlarbooks/larlar/pkg/auth"
	"github.com/larlarbooks/larlar/pkg/config"
	"github.com/larlarbooks/larlar/pkg/storage"
)

func RegisterRoutes(e *echo.Echo, cfg *config.Config, store storage.Store, authMiddleware *auth.Middleware) {
	h := &handler{
		uploadService: NewService(store, cfg.MaxPDFUploadBytes),
	}

	g := e.Group("/upload", authMiddleware.Authenticate)
	g.POST("/cover", h.uploadCover)
	g.POST("/pdf", h.uploadPDF)
	g.GET("/presign", h.presign)

	e.GET("/pdf/*", h.proxyPDF)
	e.OPTIONS("/pdf/*", h.preflight)
}
