package storage

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 1x1 transparent PNG.
var pngBytes, _ = base64.StdEncoding.DecodeString("iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mNkYAAAAAYAAjCB0C8AAAAASUVORK5CYII=")

func TestDecodeDataURL(t *testing.T) {
	t.Parallel()

	blob, err := DecodeDataURL("data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes))
	require.NoError(t, err)
	assert.Equal(t, "image/png", blob.ContentType)
	assert.Equal(t, pngBytes, blob.Data)
}

func TestDecodeDataURL_Invalid(t *testing.T) {
	t.Parallel()

	_, err := DecodeDataURL("not a data url")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid data URL format")

	assert.True(t, IsDataURL(" data:image/png;base64,AAAA"))
	assert.False(t, IsDataURL("book-covers/a.png"))
}

func TestExtension(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "png", Extension("image/png", "jpg"))
	assert.Equal(t, "jpg", Extension("image/jpeg", "bin"))
	assert.Equal(t, "pdf", Extension("application/pdf", "bin"))
	assert.Equal(t, "jpg", Extension("application/x-unknown-thing", "jpg"))
}
