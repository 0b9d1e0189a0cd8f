package books

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/larlarbooks/larlar/pkg/errcodes"
	"github.com/larlarbooks/larlar/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

// UpdateAuthors replaces every author link of the book. Blank IDs are
// dropped, so an empty list removes all links.
func (svc *Service) UpdateAuthors(ctx context.Context, bookID string, authorIDs []string) (*models.Book, error) {
	return svc.replaceRelation(ctx, bookID, authorIDs, replaceAuthors, lockedRelation("authors", (*models.Book).AuthorIDs))
}

// UpdateGenres replaces every genre link of the book.
func (svc *Service) UpdateGenres(ctx context.Context, bookID string, genreIDs []string) (*models.Book, error) {
	return svc.replaceRelation(ctx, bookID, genreIDs, replaceGenres, lockedRelation("genres", (*models.Book).GenreIDs))
}

// UpdatePublishers replaces every publisher link of the book.
func (svc *Service) UpdatePublishers(ctx context.Context, bookID string, publisherIDs []string) (*models.Book, error) {
	return svc.replaceRelation(ctx, bookID, publisherIDs, replacePublishers, nil)
}

type replaceFunc func(ctx context.Context, db bun.IDB, bookID string, ids []string) error

// guardFunc checks a relation replacement against the current book.
type guardFunc func(book *models.Book, ids []string) error

func (svc *Service) replaceRelation(ctx context.Context, bookID string, ids []string, replace replaceFunc, guard guardFunc) (*models.Book, error) {
	defer svc.lock(bookID)()

	book, err := svc.RetrieveBook(ctx, RetrieveBookOptions{ID: &bookID})
	if err != nil {
		return nil, err
	}
	if svc.enforcePublishedLock && guard != nil {
		if err := guard(book, ids); err != nil {
			return nil, err
		}
	}

	err = svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if err := replace(ctx, tx, bookID, ids); err != nil {
			return err
		}
		return touch(ctx, tx, bookID)
	})
	if err != nil {
		return nil, err
	}

	return svc.RetrieveBook(ctx, RetrieveBookOptions{ID: &bookID})
}

func replaceAuthors(ctx context.Context, db bun.IDB, bookID string, authorIDs []string) error {
	ids := cleanIDs(authorIDs)
	if err := ensureExist(ctx, db, (*models.Author)(nil), ids, "Author"); err != nil {
		return err
	}

	_, err := db.NewDelete().
		Model((*models.BookAuthor)(nil)).
		Where("book_id = ?", bookID).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if len(ids) == 0 {
		return nil
	}

	now := time.Now()
	links := make([]*models.BookAuthor, 0, len(ids))
	for _, id := range ids {
		links = append(links, &models.BookAuthor{CreatedAt: now, BookID: bookID, AuthorID: id})
	}
	_, err = db.NewInsert().Model(&links).Exec(ctx)
	return errors.WithStack(err)
}

func replaceGenres(ctx context.Context, db bun.IDB, bookID string, genreIDs []string) error {
	ids := cleanIDs(genreIDs)
	if err := ensureExist(ctx, db, (*models.Genre)(nil), ids, "Genre"); err != nil {
		return err
	}

	_, err := db.NewDelete().
		Model((*models.BookGenre)(nil)).
		Where("book_id = ?", bookID).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if len(ids) == 0 {
		return nil
	}

	now := time.Now()
	links := make([]*models.BookGenre, 0, len(ids))
	for _, id := range ids {
		links = append(links, &models.BookGenre{CreatedAt: now, BookID: bookID, GenreID: id})
	}
	_, err = db.NewInsert().Model(&links).Exec(ctx)
	return errors.WithStack(err)
}

func replacePublishers(ctx context.Context, db bun.IDB, bookID string, publisherIDs []string) error {
	ids := cleanIDs(publisherIDs)
	if err := ensureExist(ctx, db, (*models.Publisher)(nil), ids, "Publisher"); err != nil {
		return err
	}

	_, err := db.NewDelete().
		Model((*models.BookPublisher)(nil)).
		Where("book_id = ?", bookID).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if len(ids) == 0 {
		return nil
	}

	now := time.Now()
	links := make([]*models.BookPublisher, 0, len(ids))
	for _, id := range ids {
		links = append(links, &models.BookPublisher{CreatedAt: now, BookID: bookID, PublisherID: id})
	}
	_, err = db.NewInsert().Model(&links).Exec(ctx)
	return errors.WithStack(err)
}

// cleanIDs trims IDs, drops blank ones and collapses duplicates, keeping
// the first occurrence's position.
func cleanIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	cleaned := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		cleaned = append(cleaned, id)
	}
	return cleaned
}

// ensureExist fails with a not-found error naming resource unless every ID
// has a row in model's table.
func ensureExist(ctx context.Context, db bun.IDB, model interface{}, ids []string, resource string) error {
	if len(ids) == 0 {
		return nil
	}
	count, err := db.NewSelect().
		Model(model).
		Where("id IN (?)", bun.In(ids)).
		Count(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if count != len(ids) {
		return errcodes.NotFound(resource)
	}
	return nil
}

func userByID(ctx context.Context, db bun.IDB, userID string) (*models.User, error) {
	user := &models.User{}
	err := db.NewSelect().Model(user).Where("u.id = ?", userID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("User")
		}
		return nil, errors.WithStack(err)
	}
	return user, nil
}

// authorForUser returns the author profile linked to the account, creating
// one named after the account if it has none yet.
func authorForUser(ctx context.Context, db bun.IDB, userID string) (*models.Author, error) {
	author := &models.Author{}
	err := db.NewSelect().Model(author).Where("a.user_id = ?", userID).Scan(ctx)
	if err == nil {
		return author, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, errors.WithStack(err)
	}

	user, err := userByID(ctx, db, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	author = &models.Author{
		ID:         uuid.NewString(),
		CreatedAt:  now,
		UpdatedAt:  now,
		AuthorName: user.DisplayName(),
		UserID:     &user.ID,
	}
	if _, err := db.NewInsert().Model(author).Exec(ctx); err != nil {
		return nil, errors.WithStack(err)
	}
	return author, nil
}

// publisherForUser returns the account's publisher, creating it on the
// account's first book.
func publisherForUser(ctx context.Context, db bun.IDB, userID string) (*models.Publisher, error) {
	publisher := &models.Publisher{}
	err := db.NewSelect().Model(publisher).Where("pub.user_id = ?", userID).Scan(ctx)
	if err == nil {
		return publisher, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, errors.WithStack(err)
	}

	user, err := userByID(ctx, db, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	publisher = &models.Publisher{
		ID:            uuid.NewString(),
		CreatedAt:     now,
		UpdatedAt:     now,
		PublisherName: user.DisplayName(),
		ContactEmail:  &user.Email,
		UserID:        &user.ID,
	}
	if _, err := db.NewInsert().Model(publisher).Exec(ctx); err != nil {
		return nil, errors.WithStack(err)
	}
	return publisher, nil
}
