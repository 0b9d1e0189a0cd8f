package books

import (
	"fmt"
	"sort"
	"strings"

	"github.com/larlarbooks/larlar/pkg/errcodes"
	"github.com/larlarbooks/larlar/pkg/models"
	"github.com/larlarbooks/larlar/pkg/myanmar"
	"github.com/larlarbooks/larlar/pkg/storage"
)

// checkPublishedLock rejects changes to the identity of a published book:
// its name, subtitle, authors, genres and cover. Content and pricing stay
// editable, and a payload that also moves the book back to draft may change
// anything.
func checkPublishedLock(book *models.Book, p *BookPayload) error {
	if !book.IsPublished() {
		return nil
	}
	if p.Status.HasValue() && p.Status.Value == models.BookStatusDraft {
		return nil
	}

	return publishedConflict(lockedChanges(book, p))
}

// lockedRelation guards a standalone relation replacement the same way
// checkPublishedLock guards it inside a PATCH.
func lockedRelation(field string, current func(*models.Book) []string) guardFunc {
	return func(book *models.Book, ids []string) error {
		if !book.IsPublished() || sameIDs(cleanIDs(ids), current(book)) {
			return nil
		}
		return publishedConflict([]string{field})
	}
}

func publishedConflict(locked []string) error {
	if len(locked) == 0 {
		return nil
	}
	return errcodes.Conflict(fmt.Sprintf("Published books can't change %s. Move the book back to draft first.", strings.Join(locked, ", ")))
}

func lockedChanges(book *models.Book, p *BookPayload) []string {
	changed := []string{}

	if p.BookName.Set && myanmar.Normalize(strings.TrimSpace(p.BookName.Value)) != book.BookName {
		changed = append(changed, "bookName")
	}
	if p.Subtitle.Set && !equalPtr(normalizedPtr(p.Subtitle), book.Subtitle) {
		changed = append(changed, "subtitle")
	}
	if ids, ok := p.authors(); ok && !sameIDs(cleanIDs(ids), book.AuthorIDs()) {
		changed = append(changed, "authors")
	}
	if p.GenreIDs.Set && !sameIDs(cleanIDs(p.GenreIDs.Value), book.GenreIDs()) {
		changed = append(changed, "genres")
	}
	if p.BookCoverPath.Set {
		cover := trimmedPtr(p.BookCoverPath)
		if cover != nil && *cover == "" {
			cover = nil
		}
		if (cover != nil && storage.IsDataURL(*cover)) || !equalPtr(cover, book.BookCoverPath) {
			changed = append(changed, "bookCoverPath")
		}
	}

	return changed
}

func equalPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func sameIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	a = append([]string(nil), a...)
	b = append([]string(nil), b...)
	sort.Strings(a)
	sort.Strings(b)
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
