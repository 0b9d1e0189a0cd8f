package uploads

import (
	"testing"

	"github.com/larlarbooks/larlar/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanKey(t *testing.T) {
	t.Parallel()

	key, err := cleanKey("  /book-content/b1.pdf ")
	require.NoError(t, err)
	assert.Equal(t, "book-content/b1.pdf", key)

	key, err = cleanKey("book-content/a..b.pdf")
	require.NoError(t, err)
	assert.Equal(t, "book-content/a..b.pdf", key)

	for _, bad := range []string{"", "/", "http://x/y.pdf", "s3://bucket/key", "a/../b", ".."} {
		_, err := cleanKey(bad)
		assert.Error(t, err, bad)
	}
}

func TestPageCount_Garbage(t *testing.T) {
	t.Parallel()

	_, err := pageCount([]byte("%PDF-1.7\ntruncated"))
	assert.Error(t, err)
}

func TestUploadPDF_BookIDMustBeUUID(t *testing.T) {
	t.Parallel()

	store := storage.NewMemory("https://cdn.example.com")
	svc := NewService(store, 0)

	for _, bookID := range []string{"../x", "a/b", ".."} {
		id := bookID
		_, err := svc.UploadPDF(t.Context(), UploadPDFOptions{BookName: "Test", BookID: &id, Filename: "book.pdf", Data: fakePDF})
		assert.Error(t, err, bookID)
	}
	assert.Empty(t, store.Keys())

	id := " 6F1D2C9E-8B4A-4C1E-9F3D-2A7B5E0C4D11 "
	upload, err := svc.UploadPDF(t.Context(), UploadPDFOptions{BookName: "Test", BookID: &id, Filename: "book.pdf", Data: fakePDF})
	require.NoError(t, err)
	assert.Equal(t, "book-content/6f1d2c9e-8b4a-4c1e-9f3d-2a7b5e0c4d11.pdf", upload.Path)
}
