// Package testutils provides helpers shared by package tests: a migrated
// in-memory database, echo contexts wired like the server, and fixtures.
package testutils

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/larlarbooks/larlar/pkg/binder"
	"github.com/larlarbooks/larlar/pkg/config"
	"github.com/larlarbooks/larlar/pkg/database"
	"github.com/larlarbooks/larlar/pkg/errcodes"
	"github.com/larlarbooks/larlar/pkg/migrations"
	"github.com/larlarbooks/larlar/pkg/models"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"golang.org/x/crypto/bcrypt"
)

// NewDB returns an in-memory database with every migration applied.
func NewDB(t *testing.T) *bun.DB {
	t.Helper()

	db, err := database.New(config.NewForTest())
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	return db
}

// NewEcho returns an echo instance with the API's binder and error handler.
func NewEcho(t *testing.T) *echo.Echo {
	t.Helper()

	e := echo.New()
	b, err := binder.New()
	require.NoError(t, err)
	e.Binder = b
	e.HTTPErrorHandler = errcodes.NewHandler().Handle
	return e
}

// NewContext builds a JSON request context for calling a handler directly.
func NewContext(t *testing.T, payload, method, path string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var body io.Reader
	if payload != "" {
		body = strings.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rr := httptest.NewRecorder()
	return NewEcho(t).NewContext(req, rr), rr
}

// CreateUser inserts an account with the given email and password.
func CreateUser(t *testing.T, db *bun.DB, email, password string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		ID:           uuid.NewString(),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     strings.Split(email, "@")[0],
	}
	_, err = db.NewInsert().Model(user).Returning("*").Exec(context.Background())
	require.NoError(t, err)
	return user
}

// CreateAuthor inserts an author, optionally linked to userID.
func CreateAuthor(t *testing.T, db *bun.DB, name string, userID *string) *models.Author {
	t.Helper()

	author := &models.Author{
		ID:         uuid.NewString(),
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
		AuthorName: name,
		UserID:     userID,
	}
	_, err := db.NewInsert().Model(author).Returning("*").Exec(context.Background())
	require.NoError(t, err)
	return author
}

func CreateGenre(t *testing.T, db *bun.DB, name string) *models.Genre {
	t.Helper()

	genre := &models.Genre{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		GenreName: name,
	}
	_, err := db.NewInsert().Model(genre).Returning("*").Exec(context.Background())
	require.NoError(t, err)
	return genre
}

func CreatePublisher(t *testing.T, db *bun.DB, name string, userID *string) *models.Publisher {
	t.Helper()

	publisher := &models.Publisher{
		ID:            uuid.NewString(),
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
		PublisherName: name,
		UserID:        userID,
	}
	_, err := db.NewInsert().Model(publisher).Returning("*").Exec(context.Background())
	require.NoError(t, err)
	return publisher
}

// CreateBook inserts a bare book with the given status.
func CreateBook(t *testing.T, db *bun.DB, name, status string) *models.Book {
	t.Helper()

	book := &models.Book{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		BookName:  name,
		Status:    status,
	}
	_, err := db.NewInsert().Model(book).Returning("*").Exec(context.Background())
	require.NoError(t, err)
	return book
}
