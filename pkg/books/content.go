package books

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/larlarbooks/larlar/pkg/errcodes"
	"github.com/larlarbooks/larlar/pkg/models"
	"github.com/larlarbooks/larlar/pkg/storage"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/segmentio/encoding/json"
	"github.com/uptrace/bun"
)

const chapterUploadWarning = "Chapters were saved, but uploading the chapter bundle to storage failed."

// chapterUpload is a chapter bundle that has been pushed to storage (or
// failed to be) and still has to be written to the book's json content row.
type chapterUpload struct {
	content string
	path    *string
	warning string
	err     error
}

// uploadChapters never fails the request: when storage is unavailable the
// bundle is still persisted in the content row, just without a path.
func (svc *Service) uploadChapters(ctx context.Context, bookID string, chapters []models.Chapter) *chapterUpload {
	if chapters == nil {
		chapters = []models.Chapter{}
	}
	bundle := models.ChapterBundle{Chapters: chapters}

	raw, err := json.Marshal(bundle)
	if err != nil {
		return &chapterUpload{err: errors.WithStack(err)}
	}
	upload := &chapterUpload{content: string(raw)}

	key := storage.ChaptersKey(bookID)
	if _, err := svc.store.PutJSON(ctx, key, bundle); err != nil {
		logger.FromContext(ctx).Err(err).Warn("chapter bundle upload failed, saving to database only", logger.Data{
			"book_id": bookID,
			"key":     key,
		})
		upload.warning = chapterUploadWarning
		return upload
	}
	upload.path = &key
	return upload
}

func (u *chapterUpload) save(ctx context.Context, db bun.IDB, bookID string) error {
	if u.err != nil {
		return u.err
	}
	return upsertContent(ctx, db, &models.BookContent{
		BookID:      bookID,
		ContentType: models.ContentTypeJSON,
		Content:     &u.content,
		ContentPath: u.path,
	})
}

func upsertPDF(ctx context.Context, db bun.IDB, bookID, pdfPath string, pageCount *int) error {
	path := strings.TrimSpace(pdfPath)
	return upsertContent(ctx, db, &models.BookContent{
		BookID:      bookID,
		ContentType: models.ContentTypePDF,
		ContentPath: &path,
		PageCount:   pageCount,
	})
}

// upsertContent keeps at most one content row per book and content type.
func upsertContent(ctx context.Context, db bun.IDB, content *models.BookContent) error {
	now := time.Now()
	content.CreatedAt = now
	content.UpdatedAt = now

	_, err := db.NewInsert().
		Model(content).
		On("CONFLICT (book_id, content_type) DO UPDATE").
		Set("updated_at = EXCLUDED.updated_at").
		Set("content = EXCLUDED.content").
		Set("content_path = EXCLUDED.content_path").
		Set("page_count = EXCLUDED.page_count").
		Returning("*").
		Exec(ctx)
	return errors.WithStack(err)
}

// resolveCover turns a submitted cover into the key stored on the book.
// Data URLs are uploaded under a key derived from the book name, anything
// else is taken as an existing storage key or URL.
func (svc *Service) resolveCover(ctx context.Context, bookName, cover string) (*string, error) {
	cover = strings.TrimSpace(cover)
	if cover == "" {
		return nil, nil
	}
	if !storage.IsDataURL(cover) {
		return &cover, nil
	}

	blob, err := storage.DecodeDataURL(cover)
	if err != nil {
		return nil, err
	}
	key := storage.CoverKey(bookName, "cover."+storage.Extension(blob.ContentType, "jpg"))
	if _, err := svc.store.Put(ctx, key, blob.Data, blob.ContentType); err != nil {
		return nil, err
	}
	return &key, nil
}

// AttachChapters replaces the book's chapter bundle. A storage failure is
// reported as a warning and the bundle is kept in the database.
func (svc *Service) AttachChapters(ctx context.Context, bookID string, chapters []models.Chapter) (*Result, error) {
	defer svc.lock(bookID)()

	if _, err := svc.RetrieveBook(ctx, RetrieveBookOptions{ID: &bookID}); err != nil {
		return nil, err
	}

	result := &Result{}
	upload := svc.uploadChapters(ctx, bookID, chapters)
	result.warn(upload.warning)

	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if err := upload.save(ctx, tx, bookID); err != nil {
			return err
		}
		return touch(ctx, tx, bookID)
	})
	if err != nil {
		return nil, err
	}

	result.Book, err = svc.RetrieveBook(ctx, RetrieveBookOptions{ID: &bookID})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AttachPDF points the book at a stored PDF. Without an explicit status a
// draft book is published in the same transaction; an explicit status is
// applied as given.
func (svc *Service) AttachPDF(ctx context.Context, bookID, pdfPath string, pageCount *int, explicitStatus *string) (*models.Book, error) {
	if strings.TrimSpace(pdfPath) == "" {
		return nil, errcodes.ValidationError(`"pdfPath" can't be blank`)
	}
	if explicitStatus != nil && *explicitStatus != models.BookStatusDraft && *explicitStatus != models.BookStatusPublished {
		return nil, errcodes.ValidationError(`"status" must be one of [draft published]`)
	}

	defer svc.lock(bookID)()

	book, err := svc.RetrieveBook(ctx, RetrieveBookOptions{ID: &bookID})
	if err != nil {
		return nil, err
	}

	err = svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if err := upsertPDF(ctx, tx, bookID, pdfPath, pageCount); err != nil {
			return err
		}

		status := book.Status
		switch {
		case explicitStatus != nil:
			status = *explicitStatus
		case book.Status == models.BookStatusDraft || book.Status == "":
			status = models.BookStatusPublished
		}
		if status == book.Status {
			return touch(ctx, tx, bookID)
		}
		book.Status = status
		return updateColumns(ctx, tx, book, []string{"status"})
	})
	if err != nil {
		return nil, err
	}

	return svc.RetrieveBook(ctx, RetrieveBookOptions{ID: &bookID})
}

// Publish moves a draft to published. Publishing a published book is a
// no-op.
func (svc *Service) Publish(ctx context.Context, bookID string) (*models.Book, error) {
	defer svc.lock(bookID)()

	book, err := svc.RetrieveBook(ctx, RetrieveBookOptions{ID: &bookID})
	if err != nil {
		return nil, err
	}
	if book.IsPublished() {
		return book, nil
	}

	book.Status = models.BookStatusPublished
	if err := updateColumns(ctx, svc.db, book, []string{"status"}); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("book published", logger.Data{"book_id": bookID})

	return svc.RetrieveBook(ctx, RetrieveBookOptions{ID: &bookID})
}

func touch(ctx context.Context, db bun.IDB, bookID string) error {
	_, err := db.NewUpdate().
		Model((*models.Book)(nil)).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", bookID).
		Exec(ctx)
	return errors.WithStack(err)
}
