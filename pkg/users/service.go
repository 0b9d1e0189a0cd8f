package users

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/larlarbooks/larlar/pkg/auth"
	"github.com/larlarbooks/larlar/pkg/database"
	"github.com/larlarbooks/larlar/pkg/errcodes"
	"github.com/larlarbooks/larlar/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"golang.org/x/sync/errgroup"
)

const emailTakenMessage = "User with this email already exists"

// Service handles account operations.
type Service struct {
	db *bun.DB
}

// NewService creates a new users service.
func NewService(db *bun.DB) *Service {
	return &Service{db: db}
}

// RegisterOptions contains options for registering an account.
type RegisterOptions struct {
	Name     string
	Email    string
	Password string
}

// Register creates an account together with the author profile its books
// are credited to.
func (s *Service) Register(ctx context.Context, opts RegisterOptions) (*models.User, error) {
	email := strings.TrimSpace(opts.Email)

	exists, err := s.emailTaken(ctx, s.db, email, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errcodes.Conflict(emailTakenMessage)
	}

	hashedPassword, err := auth.HashPassword(opts.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		ID:           uuid.NewString(),
		CreatedAt:    now,
		UpdatedAt:    now,
		Email:        email,
		PasswordHash: hashedPassword,
		FullName:     strings.TrimSpace(opts.Name),
	}

	err = s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(user).Returning("*").Exec(ctx); err != nil {
			if database.IsUniqueViolation(err) {
				// Lost a race with a concurrent registration.
				return errcodes.Conflict(emailTakenMessage)
			}
			return errors.WithStack(err)
		}
		author := &models.Author{
			ID:         uuid.NewString(),
			CreatedAt:  now,
			UpdatedAt:  now,
			AuthorName: user.FullName,
			UserID:     &user.ID,
		}
		_, err := tx.NewInsert().Model(author).Exec(ctx)
		return errors.WithStack(err)
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Retrieve gets a user by ID.
func (s *Service) Retrieve(ctx context.Context, id string) (*models.User, error) {
	user := &models.User{}
	err := s.db.NewSelect().
		Model(user).
		Where("u.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Profile")
		}
		return nil, errors.WithStack(err)
	}
	return user, nil
}

// Stats summarizes the books credited to an account.
type Stats struct {
	BooksAuthored  int `json:"booksAuthored"`
	PublishedBooks int `json:"publishedBooks"`
	CoAuthors      int `json:"coAuthors"`
}

// Stats counts the books credited to the user's author profile. The
// counts are independent and run concurrently.
func (s *Service) Stats(ctx context.Context, userID string) (*Stats, error) {
	stats := &Stats{}

	authored := func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("EXISTS (SELECT 1 FROM book_authors AS ba JOIN authors AS a ON a.id = ba.author_id WHERE ba.book_id = b.id AND a.user_id = ?)", userID)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := authored(s.db.NewSelect().Model((*models.Book)(nil))).Count(ctx)
		stats.BooksAuthored = n
		return errors.WithStack(err)
	})
	g.Go(func() error {
		n, err := authored(s.db.NewSelect().Model((*models.Book)(nil))).
			Where("b.status = ?", models.BookStatusPublished).
			Count(ctx)
		stats.PublishedBooks = n
		return errors.WithStack(err)
	})
	g.Go(func() error {
		var n int
		err := s.db.NewSelect().
			TableExpr("book_authors AS other").
			ColumnExpr("COUNT(DISTINCT other.author_id)").
			Join("JOIN book_authors AS mine ON mine.book_id = other.book_id").
			Join("JOIN authors AS a ON a.id = mine.author_id").
			Where("a.user_id = ?", userID).
			Where("other.author_id != mine.author_id").
			Scan(ctx, &n)
		stats.CoAuthors = n
		return errors.WithStack(err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

// UpdateOptions lists the columns to write.
type UpdateOptions struct {
	Columns []string
}

// Update writes the given columns of the user.
func (s *Service) Update(ctx context.Context, user *models.User, opts UpdateOptions) error {
	if len(opts.Columns) == 0 {
		return nil
	}

	user.UpdatedAt = time.Now()
	columns := append(opts.Columns, "updated_at")

	_, err := s.db.NewUpdate().
		Model(user).
		Column(columns...).
		WherePK().
		Exec(ctx)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return errcodes.Conflict("Email is already in use")
		}
		return errors.WithStack(err)
	}
	return nil
}

// UpdateEmail changes the user's email, rejecting addresses used by any
// other account.
func (s *Service) UpdateEmail(ctx context.Context, user *models.User, email string) error {
	email = strings.TrimSpace(email)
	taken, err := s.emailTaken(ctx, s.db, email, user.ID)
	if err != nil {
		return err
	}
	if taken {
		return errcodes.Conflict("Email is already in use")
	}
	user.Email = email
	return s.Update(ctx, user, UpdateOptions{Columns: []string{"email"}})
}

func (s *Service) emailTaken(ctx context.Context, db bun.IDB, email, exceptID string) (bool, error) {
	q := db.NewSelect().
		Model((*models.User)(nil)).
		Where("email = ? COLLATE NOCASE", email)
	if exceptID != "" {
		q = q.Where("id != ?", exceptID)
	}
	exists, err := q.Exists(ctx)
	return exists, errors.WithStack(err)
}
