package storage

import (
	"context"
	"io"
	"testing"

	"github.com/larlarbooks/larlar/pkg/errcodes"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_RoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := NewMemory("https://cdn.example.com")

	url, err := m.Put(ctx, "book-covers/a.png", []byte("png"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/book-covers/a.png", url)

	obj, err := m.Get(ctx, "book-covers/a.png")
	require.NoError(t, err)
	defer obj.Body.Close()
	body, err := io.ReadAll(obj.Body)
	require.NoError(t, err)
	assert.Equal(t, "png", string(body))
	assert.Equal(t, "image/png", obj.ContentType)
	assert.Equal(t, int64(3), obj.ContentLength)

	require.NoError(t, m.Delete(ctx, "book-covers/a.png"))
	_, err = m.Get(ctx, "book-covers/a.png")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_PutJSON(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := NewMemory("")

	_, err := m.PutJSON(ctx, ChaptersKey("b1"), map[string]interface{}{"chapters": []string{}})
	require.NoError(t, err)

	obj, err := m.Get(ctx, ChaptersKey("b1"))
	require.NoError(t, err)
	body, err := io.ReadAll(obj.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"chapters":[]}`, string(body))
	assert.Equal(t, "application/json", obj.ContentType)
}

func TestMemory_FailPuts(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := NewMemory("")
	m.FailPuts(errors.New("connection refused"))

	_, err := m.Put(ctx, "k", []byte("x"), "text/plain")
	require.Error(t, err)
	var e *errcodes.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "storage_error", e.Code)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Empty(t, m.Keys())

	m.FailPuts(nil)
	_, err = m.Put(ctx, "k", []byte("x"), "text/plain")
	require.NoError(t, err)
	assert.Equal(t, []string{"k"}, m.Keys())
}

func TestMemory_PresignedGetURL(t *testing.T) {
	t.Parallel()
	m := NewMemory("https://cdn.example.com")

	url, err := m.PresignedGetURL(context.Background(), "book-content/b1.pdf", 0)
	require.NoError(t, err)
	assert.Contains(t, url, "https://cdn.example.com/book-content/b1.pdf?expires=")
}
