package publishers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/larlarbooks/larlar/pkg/models"
	"github.com/larlarbooks/larlar/pkg/pagination"
	"github.com/pkg/errors"
)

type handler struct {
	publisherService *Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListPublishersQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	publishers, total, err := h.publisherService.ListPublishersWithTotal(ctx, ListPublishersOptions{
		Limit:  &params.Limit,
		Offset: &params.Offset,
		Search: params.Search,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{
		"success":    true,
		"publishers": publishers,
		"pagination": pagination.New(total, params.Limit, params.Offset),
	}))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreatePublisherPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	publisher := &models.Publisher{
		PublisherName: params.PublisherName,
		ContactEmail:  params.ContactEmail,
		Website:       params.Website,
	}
	if err := h.publisherService.CreatePublisher(ctx, publisher); err != nil {
		return err
	}

	return errors.WithStack(c.JSON(http.StatusCreated, map[string]any{
		"success":   true,
		"publisher": publisher,
	}))
}
