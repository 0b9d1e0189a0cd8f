package uploads

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/larlarbooks/larlar/pkg/errcodes"
	"github.com/larlarbooks/larlar/pkg/storage"
	"github.com/pkg/errors"
)

type handler struct {
	uploadService *Service
}

func (h *handler) uploadCover(c echo.Context) error {
	ctx := c.Request().Context()

	params := CoverPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	upload, err := h.uploadService.UploadCover(ctx, params.BookName, params.DataURL, params.Filename)
	if err != nil {
		return err
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"path":    upload.Path,
		"url":     upload.URL,
	}))
}

func (h *handler) uploadPDF(c echo.Context) error {
	ctx := c.Request().Context()

	params := PDFForm{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	fh, ok := params.FormFiles["file"]
	if !ok || fh == nil {
		return errcodes.ValidationError(`"file" is required`)
	}
	if limit := h.uploadService.maxPDFBytes; limit > 0 && fh.Size > limit {
		return errcodes.ValidationError(fmt.Sprintf("PDF must be at most %d bytes", limit))
	}

	f, err := fh.Open()
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()

	var r io.Reader = f
	if limit := h.uploadService.maxPDFBytes; limit > 0 {
		r = io.LimitReader(f, limit+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return errors.WithStack(err)
	}

	upload, err := h.uploadService.UploadPDF(ctx, UploadPDFOptions{
		BookName: params.BookName,
		BookID:   params.BookID,
		Filename: fh.Filename,
		Data:     data,
	})
	if err != nil {
		return err
	}

	body := map[string]any{
		"success": true,
		"path":    upload.Path,
		"url":     upload.URL,
	}
	if upload.PageCount != nil {
		body["pageCount"] = *upload.PageCount
	}
	if len(upload.Warnings) > 0 {
		body["warnings"] = upload.Warnings
	}
	return errors.WithStack(c.JSON(http.StatusOK, body))
}

func (h *handler) presign(c echo.Context) error {
	ctx := c.Request().Context()

	params := PresignQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	u, err := h.uploadService.PresignedURL(ctx, params.Key, time.Duration(params.ExpiresIn)*time.Second)
	if err != nil {
		return err
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{
		"success":   true,
		"url":       u,
		"expiresIn": params.ExpiresIn,
	}))
}

func (h *handler) proxyPDF(c echo.Context) error {
	ctx := c.Request().Context()

	raw, err := url.PathUnescape(c.Param("*"))
	if err != nil {
		return errcodes.ValidationError("Invalid path")
	}

	obj, key, err := h.uploadService.OpenPDF(ctx, raw)
	if err != nil {
		return err
	}
	defer obj.Body.Close()

	header := c.Response().Header()
	setCORSHeaders(header)
	header.Set(echo.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", path.Base(key)))
	header.Set("Cache-Control", storage.CacheControl)
	if obj.ContentLength > 0 {
		header.Set(echo.HeaderContentLength, strconv.FormatInt(obj.ContentLength, 10))
	}

	return errors.WithStack(c.Stream(http.StatusOK, pdfContentType, obj.Body))
}

func (h *handler) preflight(c echo.Context) error {
	setCORSHeaders(c.Response().Header())
	return errors.WithStack(c.NoContent(http.StatusNoContent))
}

func setCORSHeaders(header http.Header) {
	header.Set(echo.HeaderAccessControlAllowOrigin, "*")
	header.Set(echo.HeaderAccessControlAllowMethods, "GET, OPTIONS")
	header.Set(echo.HeaderAccessControlAllowHeaders, "Range, Content-Type")
	header.Set(echo.HeaderAccessControlExposeHeaders, "Content-Length, Content-Disposition")
}
