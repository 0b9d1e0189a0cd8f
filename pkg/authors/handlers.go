package authors

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/larlarbooks/larlar/pkg/auth"
	"github.com/larlarbooks/larlar/pkg/errcodes"
	"github.com/larlarbooks/larlar/pkg/models"
	"github.com/larlarbooks/larlar/pkg/pagination"
	"github.com/pkg/errors"
)

type handler struct {
	authorService *Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListAuthorsQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	authors, total, err := h.authorService.ListAuthorsWithTotal(ctx, ListAuthorsOptions{
		Limit:  &params.Limit,
		Offset: &params.Offset,
		Search: params.Search,
		UserID: params.UserID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{
		"success":    true,
		"authors":    authors,
		"pagination": pagination.New(total, params.Limit, params.Offset),
	}))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()
	rc := auth.RequestContextFrom(c)

	params := CreateAuthorPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	// Linking a profile to someone else's account would let it claim their
	// books.
	if params.UserID != nil && *params.UserID != rc.UserID {
		return errcodes.Forbidden("Linking an author to another user")
	}

	author := &models.Author{
		AuthorName:            params.AuthorName,
		AuthorProfileImageURL: params.AuthorProfileImageURL,
		UserID:                params.UserID,
	}
	if err := h.authorService.CreateAuthor(ctx, author); err != nil {
		return err
	}

	return errors.WithStack(c.JSON(http.StatusCreated, map[string]any{
		"success": true,
		"author":  author,
	}))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	author, err := h.authorService.RetrieveAuthor(ctx, RetrieveAuthorOptions{ID: &id})
	if err != nil {
		return err
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"author":  author,
	}))
}
