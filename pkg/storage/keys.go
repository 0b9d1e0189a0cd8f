package storage

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/larlarbooks/larlar/pkg/myanmar"
)

const (
	coverPrefix   = "book-covers/"
	contentPrefix = "book-content/"
)

// CoverKey derives the cover key from the book name, so uploading a new cover
// for the same book replaces the old object.
func CoverKey(bookName, filename string) string {
	name := slug.Make(myanmar.Normalize(bookName))
	if name == "" {
		name = "book"
	}
	return coverPrefix + name + "." + extension(filename, "jpg")
}

// ContentKey is the key of a book's uploaded file, e.g. its PDF.
func ContentKey(bookID, filename string) string {
	return contentPrefix + bookID + "." + extension(filename, "pdf")
}

// ChaptersKey is the key of a book's chapter bundle.
func ChaptersKey(bookID string) string {
	return contentPrefix + bookID + "/content.json"
}

// TempContentKey is used for files uploaded before the book exists.
func TempContentKey(now time.Time, filename string) string {
	base := filepath.Base(filename)
	if base == "." || base == "/" || base == "" {
		base = "upload.pdf"
	}
	base = strings.ReplaceAll(base, " ", "-")
	return fmt.Sprintf("%stemp-%d-%s", contentPrefix, now.UnixMilli(), base)
}

func extension(filename, fallback string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(strings.TrimSpace(filename))), ".")
	if ext == "" {
		return fallback
	}
	return ext
}
