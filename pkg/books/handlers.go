package books

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/larlarbooks/larlar/pkg/auth"
	"github.com/larlarbooks/larlar/pkg/htmlutil"
	"github.com/larlarbooks/larlar/pkg/models"
	"github.com/larlarbooks/larlar/pkg/myanmar"
	"github.com/larlarbooks/larlar/pkg/pagination"
	"github.com/larlarbooks/larlar/pkg/storage"
	"github.com/pkg/errors"
)

const descriptionPreviewLength = 160

type handler struct {
	bookService *Service
	store       storage.Store
}

// bookResponse is a book with its relations flattened and its content
// unpacked for the reader.
type bookResponse struct {
	*models.Book
	Authors            []*models.Author    `json:"authors"`
	Genres             []*models.Genre     `json:"genres"`
	Publishers         []*models.Publisher `json:"publishers"`
	Chapters           []models.Chapter    `json:"chapters"`
	BookCoverURL       *string             `json:"bookCoverUrl"`
	PDFPath            *string             `json:"pdfPath"`
	PDFURL             *string             `json:"pdfUrl"`
	PDFProxyURL        *string             `json:"pdfProxyUrl"`
	PageCount          *int                `json:"pageCount"`
	WordCount          int                 `json:"wordCount"`
	DescriptionPreview *string             `json:"descriptionPreview,omitempty"`
}

func (h *handler) newBookResponse(book *models.Book) (*bookResponse, error) {
	resp := &bookResponse{
		Book:       book,
		Authors:    []*models.Author{},
		Genres:     []*models.Genre{},
		Publishers: []*models.Publisher{},
	}
	for _, ba := range book.BookAuthors {
		if ba.Author != nil {
			resp.Authors = append(resp.Authors, ba.Author)
		}
	}
	for _, bg := range book.BookGenres {
		if bg.Genre != nil {
			resp.Genres = append(resp.Genres, bg.Genre)
		}
	}
	for _, bp := range book.BookPublishers {
		if bp.Publisher != nil {
			resp.Publishers = append(resp.Publishers, bp.Publisher)
		}
	}

	chapters, err := book.Content(models.ContentTypeJSON).Chapters()
	if err != nil {
		return nil, err
	}
	resp.Chapters = chapters
	for _, ch := range chapters {
		resp.WordCount += htmlutil.Words(ch.Content)
	}

	if book.BookCoverPath != nil {
		resp.BookCoverURL = stringPtr(h.store.PublicURL(*book.BookCoverPath))
	}
	if pdf := book.Content(models.ContentTypePDF); pdf != nil && pdf.ContentPath != nil {
		resp.PDFPath = pdf.ContentPath
		resp.PDFURL = stringPtr(h.store.PublicURL(*pdf.ContentPath))
		if !storage.IsAbsoluteURL(*pdf.ContentPath) {
			resp.PDFProxyURL = stringPtr("/pdf/" + url.PathEscape(*pdf.ContentPath))
		}
		resp.PageCount = pdf.PageCount
	}
	if book.Description != nil {
		if text := htmlutil.Text(*book.Description); text != "" {
			resp.DescriptionPreview = stringPtr(myanmar.Truncate(text, descriptionPreviewLength))
		}
	}
	return resp, nil
}

func (h *handler) respond(c echo.Context, status int, result *Result) error {
	resp, err := h.newBookResponse(result.Book)
	if err != nil {
		return err
	}
	body := map[string]any{
		"success": true,
		"book":    resp,
	}
	if len(result.Warnings) > 0 {
		body["warnings"] = result.Warnings
	}
	return errors.WithStack(c.JSON(status, body))
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListBooksQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	books, total, err := h.bookService.ListBooksWithTotal(ctx, ListBooksOptions{
		Limit:  &params.Limit,
		Offset: &params.Offset,
		Search: params.Search,
		UserID: params.UserID,
		Status: params.Status,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	resp := make([]*bookResponse, 0, len(books))
	for _, book := range books {
		br, err := h.newBookResponse(book)
		if err != nil {
			return err
		}
		resp = append(resp, br)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{
		"success":    true,
		"books":      resp,
		"pagination": pagination.New(total, params.Limit, params.Offset),
	}))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	book, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{ID: &id})
	if err != nil {
		return err
	}

	return h.respond(c, http.StatusOK, &Result{Book: book})
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := BookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	result, err := h.bookService.SaveDraft(ctx, auth.RequestContextFrom(c), nil, params)
	if err != nil {
		return err
	}

	return h.respond(c, http.StatusCreated, result)
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	params := BookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	result, err := h.bookService.SaveDraft(ctx, auth.RequestContextFrom(c), &id, params)
	if err != nil {
		return err
	}

	return h.respond(c, http.StatusOK, result)
}

func (h *handler) publish(c echo.Context) error {
	ctx := c.Request().Context()

	book, err := h.bookService.Publish(ctx, c.Param("id"))
	if err != nil {
		return err
	}

	return h.respond(c, http.StatusOK, &Result{Book: book})
}

func (h *handler) updateAuthors(c echo.Context) error {
	ctx := c.Request().Context()

	params := AuthorIDsPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	book, err := h.bookService.UpdateAuthors(ctx, c.Param("id"), params.AuthorIDs)
	if err != nil {
		return err
	}

	return h.respond(c, http.StatusOK, &Result{Book: book})
}

func (h *handler) updateGenres(c echo.Context) error {
	ctx := c.Request().Context()

	params := GenreIDsPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	book, err := h.bookService.UpdateGenres(ctx, c.Param("id"), params.GenreIDs)
	if err != nil {
		return err
	}

	return h.respond(c, http.StatusOK, &Result{Book: book})
}

func (h *handler) updatePublishers(c echo.Context) error {
	ctx := c.Request().Context()

	params := PublisherIDsPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	book, err := h.bookService.UpdatePublishers(ctx, c.Param("id"), params.PublisherIDs)
	if err != nil {
		return err
	}

	return h.respond(c, http.StatusOK, &Result{Book: book})
}

func (h *handler) attachChapters(c echo.Context) error {
	ctx := c.Request().Context()

	params := ChaptersPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	result, err := h.bookService.AttachChapters(ctx, c.Param("id"), params.Chapters)
	if err != nil {
		return err
	}

	return h.respond(c, http.StatusOK, result)
}

func (h *handler) attachPDF(c echo.Context) error {
	ctx := c.Request().Context()

	params := PDFPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	book, err := h.bookService.AttachPDF(ctx, c.Param("id"), params.PDFPath, params.PageCount, params.Status)
	if err != nil {
		return err
	}

	return h.respond(c, http.StatusOK, &Result{Book: book})
}

func stringPtr(s string) *string {
	return &s
}
