package books

import (
	"context"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/larlarbooks/larlar/pkg/errcodes"
	"github.com/larlarbooks/larlar/pkg/models"
	"github.com/larlarbooks/larlar/pkg/patch"
	"github.com/larlarbooks/larlar/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishedLock(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	book := f.create(t, BookPayload{
		BookName:      patch.Of("Test"),
		Subtitle:      patch.Of("Sub"),
		BookCoverPath: patch.Of("book-covers/test.jpg"),
		Status:        patch.Of(models.BookStatusPublished),
	})

	cases := map[string]BookPayload{
		"name":     {BookName: patch.Of("Renamed")},
		"subtitle": {Subtitle: patch.Null[string]()},
		"authors":  {AuthorIDs: patch.Of([]string{})},
		"genres":   {GenreIDs: patch.Of([]string{"g1"})},
		"cover":    {BookCoverPath: patch.Of("data:image/png;base64,iVBORw0KGgo=")},
	}
	for name, payload := range cases {
		t.Run(name, func(tt *testing.T) {
			_, err := f.svc.UpdateBook(ctx, f.rc, book.ID, payload)
			var e *errcodes.Error
			require.ErrorAs(tt, err, &e)
			assert.Equal(tt, http.StatusConflict, e.HTTPCode)
			assert.Contains(tt, e.Message, "Published books can't change")
		})
	}

	// Resending the current values and editing unlocked fields is fine.
	result, err := f.svc.UpdateBook(ctx, f.rc, book.ID, BookPayload{
		BookName:      patch.Of(" Test "),
		AuthorIDs:     patch.Of(book.AuthorIDs()),
		BookCoverPath: patch.Of("book-covers/test.jpg"),
		Description:   patch.Of("Still editable"),
		Price:         patch.Of(2.0),
	})
	require.NoError(t, err)
	assert.Equal(t, "Still editable", *result.Book.Description)

	// Moving back to draft in the same payload unlocks everything.
	result, err = f.svc.UpdateBook(ctx, f.rc, book.ID, BookPayload{
		BookName: patch.Of("Renamed"),
		Status:   patch.Of(models.BookStatusDraft),
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", result.Book.BookName)
	assert.Equal(t, models.BookStatusDraft, result.Book.Status)
}

func TestPublishedLock_RelationRoutes(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	genre := testutils.CreateGenre(t, f.db, "Poetry")
	other := testutils.CreateAuthor(t, f.db, "Min Thu", nil)
	publisher := testutils.CreatePublisher(t, f.db, "Yangon Press", nil)
	book := f.create(t, BookPayload{
		BookName: patch.Of("Test"),
		GenreIDs: patch.Of([]string{genre.ID}),
		Status:   patch.Of(models.BookStatusPublished),
	})

	_, err := f.svc.UpdateAuthors(ctx, book.ID, []string{other.ID})
	requireCode(t, err, http.StatusConflict)
	_, err = f.svc.UpdateGenres(ctx, book.ID, []string{})
	requireCode(t, err, http.StatusConflict)

	current, err := f.svc.RetrieveBook(ctx, RetrieveBookOptions{ID: &book.ID})
	require.NoError(t, err)
	assert.Equal(t, book.AuthorIDs(), current.AuthorIDs())
	assert.Equal(t, []string{genre.ID}, current.GenreIDs())

	// Resending the current links is fine, and publishers aren't locked.
	_, err = f.svc.UpdateAuthors(ctx, book.ID, append([]string{" "}, book.AuthorIDs()...))
	require.NoError(t, err)
	_, err = f.svc.UpdateGenres(ctx, book.ID, []string{genre.ID, genre.ID})
	require.NoError(t, err)
	_, err = f.svc.UpdatePublishers(ctx, book.ID, []string{publisher.ID})
	require.NoError(t, err)

	for _, route := range []struct {
		path    string
		payload string
		call    func(h *handler, c echo.Context) error
	}{
		{"/authors", `{"authorIds":["` + other.ID + `"]}`, (*handler).updateAuthors},
		{"/genres", `{"genreIds":[]}`, (*handler).updateGenres},
	} {
		c, _, _ := f.context(t, route.payload, http.MethodPut, "/books/"+book.ID+route.path)
		c.SetParamNames("id")
		c.SetParamValues(book.ID)
		requireCode(t, route.call(f.handler(), c), http.StatusConflict)
	}

	// A draft book can change them again.
	_, err = f.svc.UpdateBook(ctx, f.rc, book.ID, BookPayload{Status: patch.Of(models.BookStatusDraft)})
	require.NoError(t, err)
	updated, err := f.svc.UpdateAuthors(ctx, book.ID, []string{other.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{other.ID}, updated.AuthorIDs())
}

func TestPublishedLock_Disabled(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	svc := NewService(f.db, f.store, false)
	book := f.create(t, BookPayload{BookName: patch.Of("Test"), Status: patch.Of(models.BookStatusPublished)})

	result, err := svc.UpdateBook(context.Background(), f.rc, book.ID, BookPayload{BookName: patch.Of("Renamed")})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", result.Book.BookName)
	assert.Equal(t, models.BookStatusPublished, result.Book.Status)

	updated, err := svc.UpdateAuthors(context.Background(), book.ID, []string{})
	require.NoError(t, err)
	assert.Empty(t, updated.AuthorIDs())
}

func TestSameIDs(t *testing.T) {
	t.Parallel()

	assert.True(t, sameIDs(nil, []string{}))
	assert.True(t, sameIDs([]string{"a", "b"}, []string{"b", "a"}))
	assert.False(t, sameIDs([]string{"a"}, []string{"a", "b"}))
	assert.False(t, sameIDs([]string{"a", "c"}, []string{"a", "b"}))
}

func TestCleanIDs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a1", "b2"}, cleanIDs([]string{"", " a1 ", "b2", "a1", "  "}))
	assert.Empty(t, cleanIDs(nil))
}
