package books

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/im7mortal/kmutex"
	"github.com/larlarbooks/larlar/pkg/auth"
	"github.com/larlarbooks/larlar/pkg/database"
	"github.com/larlarbooks/larlar/pkg/errcodes"
	"github.com/larlarbooks/larlar/pkg/models"
	"github.com/larlarbooks/larlar/pkg/myanmar"
	"github.com/larlarbooks/larlar/pkg/patch"
	"github.com/larlarbooks/larlar/pkg/storage"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type RetrieveBookOptions struct {
	ID *string
}

type ListBooksOptions struct {
	Limit  *int
	Offset *int
	Search *string
	UserID *string
	Status *string

	includeTotal bool
}

// Result is a book after a workflow operation, plus the non-fatal problems
// the operation ran into.
type Result struct {
	Book     *models.Book
	Warnings []string
}

func (r *Result) warn(msg string) {
	if msg != "" {
		r.Warnings = append(r.Warnings, msg)
	}
}

type Service struct {
	db    *bun.DB
	store storage.Store
	// locks serializes mutations of the same book within this process.
	locks *kmutex.Kmutex

	enforcePublishedLock bool
}

func NewService(db *bun.DB, store storage.Store, enforcePublishedLock bool) *Service {
	return &Service{
		db:                   db,
		store:                store,
		locks:                kmutex.New(),
		enforcePublishedLock: enforcePublishedLock,
	}
}

func (svc *Service) lock(bookID string) func() {
	svc.locks.Lock(bookID)
	return func() {
		svc.locks.Unlock(bookID)
	}
}

func (svc *Service) RetrieveBook(ctx context.Context, opts RetrieveBookOptions) (*models.Book, error) {
	book := &models.Book{}

	q := withRelations(svc.db.NewSelect().Model(book))

	if opts.ID != nil {
		q = q.Where("b.id = ?", *opts.ID)
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Book")
		}
		return nil, errors.WithStack(err)
	}

	return book, nil
}

func (svc *Service) ListBooksWithTotal(ctx context.Context, opts ListBooksOptions) ([]*models.Book, int, error) {
	opts.includeTotal = true
	return svc.listBooksWithTotal(ctx, opts)
}

func (svc *Service) listBooksWithTotal(ctx context.Context, opts ListBooksOptions) ([]*models.Book, int, error) {
	books := []*models.Book{}
	var total int
	var err error

	q := withRelations(svc.db.NewSelect().Model(&books)).
		Order("b.created_at DESC")

	if opts.Search != nil && *opts.Search != "" {
		pattern := database.ContainsPattern(myanmar.Normalize(*opts.Search))
		q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				Where("b.book_name LIKE ? ESCAPE '\\'", pattern).
				WhereOr("b.description LIKE ? ESCAPE '\\'", pattern)
		})
	}
	if opts.UserID != nil {
		q = q.Where("EXISTS (SELECT 1 FROM book_authors AS uba JOIN authors AS ua ON ua.id = uba.author_id WHERE uba.book_id = b.id AND ua.user_id = ?)", *opts.UserID)
	}
	if opts.Status != nil {
		q = q.Where("b.status = ?", *opts.Status)
	}
	if opts.Limit != nil {
		q = q.Limit(*opts.Limit)
	}
	if opts.Offset != nil {
		q = q.Offset(*opts.Offset)
	}

	if opts.includeTotal {
		total, err = q.ScanAndCount(ctx)
	} else {
		err = q.Scan(ctx)
	}
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	return books, total, nil
}

func withRelations(q *bun.SelectQuery) *bun.SelectQuery {
	return q.
		Relation("BookAuthors", func(sq *bun.SelectQuery) *bun.SelectQuery {
			return sq.Order("ba.id ASC")
		}).
		Relation("BookAuthors.Author").
		Relation("BookGenres", func(sq *bun.SelectQuery) *bun.SelectQuery {
			return sq.Order("bg.id ASC")
		}).
		Relation("BookGenres.Genre").
		Relation("BookPublishers", func(sq *bun.SelectQuery) *bun.SelectQuery {
			return sq.Order("bp.id ASC")
		}).
		Relation("BookPublishers.Publisher").
		Relation("BookContents", func(sq *bun.SelectQuery) *bun.SelectQuery {
			return sq.Order("bc.content_type ASC")
		})
}

// SaveDraft creates a book when bookID is nil and partially updates it
// otherwise.
func (svc *Service) SaveDraft(ctx context.Context, rc auth.RequestContext, bookID *string, payload BookPayload) (*Result, error) {
	if bookID == nil {
		return svc.CreateBook(ctx, rc, payload)
	}
	return svc.UpdateBook(ctx, rc, *bookID, payload)
}

// CreateBook inserts a book with its relations and content in one
// transaction. A new book is a draft unless the payload sets a status or
// attaches a PDF.
func (svc *Service) CreateBook(ctx context.Context, rc auth.RequestContext, payload BookPayload) (*Result, error) {
	if !rc.IsAuthenticated {
		return nil, errcodes.Unauthorized("Authentication required")
	}

	bookName := ""
	if payload.BookName.HasValue() {
		bookName = myanmar.Normalize(strings.TrimSpace(payload.BookName.Value))
	}
	if bookName == "" {
		return nil, errcodes.ValidationError(`"bookName" can't be blank`)
	}
	if payload.UserID != nil && *payload.UserID != rc.UserID {
		return nil, errcodes.Forbidden("Creating a book for another user")
	}
	if err := validatePayload(&payload); err != nil {
		return nil, err
	}

	now := time.Now()
	book := &models.Book{
		ID:          uuid.NewString(),
		CreatedAt:   now,
		UpdatedAt:   now,
		BookName:    bookName,
		Subtitle:    normalizedPtr(payload.Subtitle),
		Description: normalizedPtr(payload.Description),
		Language:    trimmedPtr(payload.Language),
		Price:       payload.Price.Ptr(),
		Status:      models.BookStatusDraft,
	}
	switch {
	case payload.Status.HasValue():
		book.Status = payload.Status.Value
	case payload.PDFPath.HasValue():
		book.Status = models.BookStatusPublished
	}

	result := &Result{}

	// Uploads happen before the transaction so a storage failure leaves
	// nothing behind.
	if payload.BookCoverPath.HasValue() {
		cover, err := svc.resolveCover(ctx, bookName, payload.BookCoverPath.Value)
		if err != nil {
			return nil, err
		}
		book.BookCoverPath = cover
	}
	var chapters *chapterUpload
	if payload.Chapters.Set {
		chapters = svc.uploadChapters(ctx, book.ID, payload.Chapters.Value)
		result.warn(chapters.warning)
	}

	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(book).Returning("*").Exec(ctx); err != nil {
			return errors.WithStack(err)
		}

		authorIDs, _ := payload.authors()
		if len(cleanIDs(authorIDs)) == 0 {
			author, err := authorForUser(ctx, tx, rc.UserID)
			if err != nil {
				return err
			}
			authorIDs = []string{author.ID}
		}
		if err := replaceAuthors(ctx, tx, book.ID, authorIDs); err != nil {
			return err
		}

		if err := replaceGenres(ctx, tx, book.ID, payload.GenreIDs.Value); err != nil {
			return err
		}

		publisherIDs := cleanIDs(payload.PublisherIDs.Value)
		if len(publisherIDs) == 0 {
			publisher, err := publisherForUser(ctx, tx, rc.UserID)
			if err != nil {
				return err
			}
			publisherIDs = []string{publisher.ID}
		}
		if err := replacePublishers(ctx, tx, book.ID, publisherIDs); err != nil {
			return err
		}

		if payload.PDFPath.HasValue() {
			if err := upsertPDF(ctx, tx, book.ID, payload.PDFPath.Value, payload.PageCount.Ptr()); err != nil {
				return err
			}
		}
		if chapters != nil {
			if err := chapters.save(ctx, tx, book.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Book, err = svc.RetrieveBook(ctx, RetrieveBookOptions{ID: &book.ID})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateBook applies a partial update. Relation fields replace the whole
// set, chapters and pdfPath attach content, and attaching a PDF publishes
// a draft unless the same payload sets the status.
func (svc *Service) UpdateBook(ctx context.Context, rc auth.RequestContext, bookID string, payload BookPayload) (*Result, error) {
	defer svc.lock(bookID)()

	book, err := svc.RetrieveBook(ctx, RetrieveBookOptions{ID: &bookID})
	if err != nil {
		return nil, err
	}
	if payload.UserID != nil && *payload.UserID != rc.UserID {
		return nil, errcodes.Forbidden("Editing a book for another user")
	}
	if payload.BookName.Set && (payload.BookName.Null || strings.TrimSpace(payload.BookName.Value) == "") {
		return nil, errcodes.ValidationError(`"bookName" can't be blank`)
	}
	if payload.Status.Null {
		return nil, errcodes.ValidationError(`"status" can't be null`)
	}
	if err := validatePayload(&payload); err != nil {
		return nil, err
	}
	if svc.enforcePublishedLock {
		if err := checkPublishedLock(book, &payload); err != nil {
			return nil, err
		}
	}

	columns := []string{}
	if payload.BookName.Set {
		book.BookName = myanmar.Normalize(strings.TrimSpace(payload.BookName.Value))
		columns = append(columns, "book_name")
	}
	if payload.Subtitle.Set {
		book.Subtitle = normalizedPtr(payload.Subtitle)
		columns = append(columns, "subtitle")
	}
	if payload.Description.Set {
		book.Description = normalizedPtr(payload.Description)
		columns = append(columns, "description")
	}
	if payload.Language.Set {
		book.Language = trimmedPtr(payload.Language)
		columns = append(columns, "language")
	}
	if payload.Price.Set {
		book.Price = payload.Price.Ptr()
		columns = append(columns, "price")
	}
	if payload.Status.Set {
		book.Status = payload.Status.Value
		columns = append(columns, "status")
	} else if payload.PDFPath.HasValue() && !book.IsPublished() {
		book.Status = models.BookStatusPublished
		columns = append(columns, "status")
	}

	result := &Result{}

	if payload.BookCoverPath.Set {
		book.BookCoverPath = nil
		if payload.BookCoverPath.HasValue() {
			cover, err := svc.resolveCover(ctx, book.BookName, payload.BookCoverPath.Value)
			if err != nil {
				return nil, err
			}
			book.BookCoverPath = cover
		}
		columns = append(columns, "book_cover_path")
	}
	var chapters *chapterUpload
	if payload.Chapters.Set {
		chapters = svc.uploadChapters(ctx, book.ID, payload.Chapters.Value)
		result.warn(chapters.warning)
	}

	err = svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if len(columns) == 0 {
			if err := touch(ctx, tx, book.ID); err != nil {
				return err
			}
		} else if err := updateColumns(ctx, tx, book, columns); err != nil {
			return err
		}
		if ids, ok := payload.authors(); ok {
			if err := replaceAuthors(ctx, tx, book.ID, ids); err != nil {
				return err
			}
		}
		if payload.GenreIDs.Set {
			if err := replaceGenres(ctx, tx, book.ID, payload.GenreIDs.Value); err != nil {
				return err
			}
		}
		if payload.PublisherIDs.Set {
			if err := replacePublishers(ctx, tx, book.ID, payload.PublisherIDs.Value); err != nil {
				return err
			}
		}
		if payload.PDFPath.HasValue() {
			if err := upsertPDF(ctx, tx, book.ID, payload.PDFPath.Value, payload.PageCount.Ptr()); err != nil {
				return err
			}
		}
		if chapters != nil {
			if err := chapters.save(ctx, tx, book.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Book, err = svc.RetrieveBook(ctx, RetrieveBookOptions{ID: &book.ID})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func updateColumns(ctx context.Context, db bun.IDB, book *models.Book, columns []string) error {
	if len(columns) == 0 {
		return nil
	}

	book.UpdatedAt = time.Now()
	columns = append(columns, "updated_at")

	_, err := db.
		NewUpdate().
		Model(book).
		Column(columns...).
		WherePK().
		Exec(ctx)
	return errors.WithStack(err)
}

func validatePayload(p *BookPayload) error {
	if p.Status.HasValue() && p.Status.Value != models.BookStatusDraft && p.Status.Value != models.BookStatusPublished {
		return errcodes.ValidationError(`"status" must be one of [draft published]`)
	}
	if p.Price.HasValue() && p.Price.Value < 0 {
		return errcodes.ValidationError(`"price" must be at least 0`)
	}
	if p.PDFPath.Set && (p.PDFPath.Null || strings.TrimSpace(p.PDFPath.Value) == "") {
		return errcodes.ValidationError(`"pdfPath" can't be blank`)
	}
	if p.PageCount.HasValue() && p.PageCount.Value < 0 {
		return errcodes.ValidationError(`"pageCount" must be at least 0`)
	}
	if p.Chapters.Null {
		return errcodes.ValidationError(`"chapters" can't be null`)
	}
	return nil
}

func normalizedPtr(f patch.Field[string]) *string {
	return myanmar.NormalizePtr(trimmedPtr(f))
}

func trimmedPtr(f patch.Field[string]) *string {
	if !f.HasValue() {
		return nil
	}
	trimmed := strings.TrimSpace(f.Value)
	return &trimmed
}
