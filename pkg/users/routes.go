package users

import (
	"github.com/labstack/echo/v4"
	"github.com/larlarbooks/larlar/pkg/auth"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers registration and profile routes.
func RegisterRoutes(e *echo.Echo, db *bun.DB, authMiddleware *auth.Middleware) *Service {
	userService := NewService(db)

	h := &handler{
		userService: userService,
	}

	e.POST("/register", h.register)

	profile := e.Group("/profile")
	profile.Use(authMiddleware.Authenticate)
	profile.GET("", h.retrieve)
	profile.PATCH("", h.update)
	profile.PATCH("/email", h.updateEmail)
	profile.PATCH("/phone", h.updatePhone)

	return userService
}
