package books

import (
	"github.com/larlarbooks/larlar/pkg/models"
	"github.com/larlarbooks/larlar/pkg/patch"
)

type ListBooksQuery struct {
	Limit  int     `query:"limit" json:"limit,omitempty" default:"10" validate:"min=1,max=100"`
	Offset int     `query:"offset" json:"offset,omitempty" validate:"min=0"`
	Search *string `query:"search" json:"search,omitempty" validate:"omitempty,max=200"`
	UserID *string `query:"userId" json:"userId,omitempty"`
	Status *string `query:"status" json:"status,omitempty" validate:"omitempty,oneof=draft published"`
}

// BookPayload is the body of both POST /books and PATCH /books/:id. Every
// field is tri-state: absent keys leave the book untouched, null clears
// optional columns.
type BookPayload struct {
	BookName      patch.Field[string]           `json:"bookName"`
	Subtitle      patch.Field[string]           `json:"subtitle"`
	Description   patch.Field[string]           `json:"description"`
	Language      patch.Field[string]           `json:"language"`
	Price         patch.Field[float64]          `json:"price"`
	BookCoverPath patch.Field[string]           `json:"bookCoverPath"`
	Status        patch.Field[string]           `json:"status"`
	AuthorID      patch.Field[string]           `json:"authorId"`
	AuthorIDs     patch.Field[[]string]         `json:"authorIds"`
	GenreIDs      patch.Field[[]string]         `json:"genreIds"`
	PublisherIDs  patch.Field[[]string]         `json:"publisherIds"`
	PDFPath       patch.Field[string]           `json:"pdfPath"`
	PageCount     patch.Field[int]              `json:"pageCount"`
	Chapters      patch.Field[[]models.Chapter] `json:"chapters"`
	UserID        *string                       `json:"userId"`
}

// authors returns the requested author IDs, merging authorIds and the
// single authorId field. ok is false when neither key was sent.
func (p *BookPayload) authors() (ids []string, ok bool) {
	if !p.AuthorIDs.Set && !p.AuthorID.Set {
		return nil, false
	}
	ids = append(ids, p.AuthorIDs.Value...)
	if p.AuthorID.HasValue() {
		ids = append(ids, p.AuthorID.Value)
	}
	return ids, true
}

type AuthorIDsPayload struct {
	AuthorIDs []string `json:"authorIds"`
}

type GenreIDsPayload struct {
	GenreIDs []string `json:"genreIds"`
}

type PublisherIDsPayload struct {
	PublisherIDs []string `json:"publisherIds"`
}

type ChaptersPayload struct {
	Chapters []models.Chapter `json:"chapters"`
}

type PDFPayload struct {
	PDFPath   string  `json:"pdfPath" mod:"trim" validate:"required"`
	PageCount *int    `json:"pageCount" validate:"omitempty,min=0"`
	Status    *string `json:"status" validate:"omitempty,oneof=draft published"`
}
