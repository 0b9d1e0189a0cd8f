// Package uploads stores covers and PDFs in the object store and serves
// stored PDFs to the reader from the API's own origin.
package uploads

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/larlarbooks/larlar/pkg/errcodes"
	"github.com/larlarbooks/larlar/pkg/storage"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
)

const (
	pdfContentType = "application/pdf"

	pageCountWarning = "Couldn't read the page count from the PDF."
)

func init() {
	// pdfcpu otherwise creates a config directory under the user's home.
	api.DisableConfigDir()
}

type Service struct {
	store       storage.Store
	maxPDFBytes int64
}

func NewService(store storage.Store, maxPDFBytes int64) *Service {
	return &Service{
		store:       store,
		maxPDFBytes: maxPDFBytes,
	}
}

type Upload struct {
	Path      string   `json:"path"`
	URL       string   `json:"url"`
	PageCount *int     `json:"pageCount,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}

// UploadCover stores a data URL cover under the key derived from the book
// name. The extension comes from filename when given, else from the data
// URL's media type.
func (svc *Service) UploadCover(ctx context.Context, bookName, dataURL string, filename *string) (*Upload, error) {
	blob, err := storage.DecodeDataURL(dataURL)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(blob.ContentType, "image/") {
		return nil, errcodes.ValidationError("Cover must be an image")
	}

	name := "cover." + storage.Extension(blob.ContentType, "jpg")
	if filename != nil && strings.TrimSpace(*filename) != "" {
		name = *filename
	}
	key := storage.CoverKey(bookName, name)

	u, err := svc.store.Put(ctx, key, blob.Data, blob.ContentType)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("cover uploaded", logger.Data{"key": key, "bytes": len(blob.Data)})

	return &Upload{Path: key, URL: u}, nil
}

type UploadPDFOptions struct {
	BookName string
	BookID   *string
	Filename string
	Data     []byte
}

// UploadPDF stores a PDF under the book's content key, or under a temporary
// key when the book doesn't exist yet. The page count is best effort.
func (svc *Service) UploadPDF(ctx context.Context, opts UploadPDFOptions) (*Upload, error) {
	if len(opts.Data) == 0 {
		return nil, errcodes.ValidationError(`"file" can't be empty`)
	}
	if svc.maxPDFBytes > 0 && int64(len(opts.Data)) > svc.maxPDFBytes {
		return nil, errcodes.ValidationError(fmt.Sprintf("PDF must be at most %d bytes", svc.maxPDFBytes))
	}
	if mtype := mimetype.Detect(opts.Data); !mtype.Is(pdfContentType) {
		return nil, errcodes.ValidationError(fmt.Sprintf("File must be a PDF, got %s", mtype.String()))
	}

	var key string
	if opts.BookID != nil && strings.TrimSpace(*opts.BookID) != "" {
		bookID, err := uuid.Parse(strings.TrimSpace(*opts.BookID))
		if err != nil {
			return nil, errcodes.ValidationError(`"bookId" must be a valid UUID`)
		}
		key = storage.ContentKey(bookID.String(), opts.Filename)
	} else {
		key = storage.TempContentKey(time.Now(), opts.Filename)
	}

	upload := &Upload{Path: key}
	log := logger.FromContext(ctx)

	pages, err := pageCount(opts.Data)
	if err != nil {
		log.Err(err).Warn("couldn't count PDF pages", logger.Data{"key": key})
		upload.Warnings = append(upload.Warnings, pageCountWarning)
	} else {
		upload.PageCount = &pages
	}

	upload.URL, err = svc.store.Put(ctx, key, opts.Data, pdfContentType)
	if err != nil {
		return nil, err
	}

	log.Info("pdf uploaded", logger.Data{"key": key, "bytes": len(opts.Data), "book_name": opts.BookName})

	return upload, nil
}

func pageCount(data []byte) (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("pdf parser panic: %v", r)
		}
	}()

	n, err = api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	return n, nil
}

// PresignedURL returns a temporary direct-download URL for key.
func (svc *Service) PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	key, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	return svc.store.PresignedGetURL(ctx, key, expiry)
}

// OpenPDF returns the stored object for a PDF proxy request.
func (svc *Service) OpenPDF(ctx context.Context, key string) (*storage.Object, string, error) {
	key, err := cleanKey(key)
	if err != nil {
		return nil, "", err
	}
	obj, err := svc.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, "", errcodes.NotFound("PDF")
		}
		return nil, "", err
	}
	return obj, key, nil
}

// cleanKey only accepts relative storage keys. Absolute URLs and parent
// directory segments are rejected.
func cleanKey(key string) (string, error) {
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	if key == "" {
		return "", errcodes.ValidationError("Path is required")
	}
	if storage.IsAbsoluteURL(key) || strings.Contains(key, "://") {
		return "", errcodes.ValidationError("Absolute URLs can't be proxied")
	}
	for _, segment := range strings.Split(key, "/") {
		if segment == ".." {
			return "", errcodes.ValidationError("Invalid path")
		}
	}
	return key, nil
}
