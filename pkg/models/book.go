package models

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	BookStatusDraft     = "draft"
	BookStatusPublished = "published"
)

type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID            string    `bun:",pk" json:"id"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	BookName      string    `bun:",notnull" json:"bookName"`
	Subtitle      *string   `json:"subtitle"`
	Description   *string   `json:"description"`
	Language      *string   `json:"language"`
	Price         *float64  `json:"price"`
	BookCoverPath *string   `json:"bookCoverPath"`
	Status        string    `bun:",notnull" json:"status"`

	BookAuthors    []*BookAuthor    `bun:"rel:has-many,join:id=book_id" json:"bookAuthors"`
	BookGenres     []*BookGenre     `bun:"rel:has-many,join:id=book_id" json:"bookGenres"`
	BookPublishers []*BookPublisher `bun:"rel:has-many,join:id=book_id" json:"bookPublishers"`
	BookContents   []*BookContent   `bun:"rel:has-many,join:id=book_id" json:"bookContents"`
}

func (b *Book) IsPublished() bool {
	return b.Status == BookStatusPublished
}

// Content returns the book's content row of the given type, if any.
func (b *Book) Content(contentType string) *BookContent {
	for _, c := range b.BookContents {
		if c.ContentType == contentType {
			return c
		}
	}
	return nil
}

func (b *Book) AuthorIDs() []string {
	ids := make([]string, 0, len(b.BookAuthors))
	for _, ba := range b.BookAuthors {
		ids = append(ids, ba.AuthorID)
	}
	return ids
}

func (b *Book) GenreIDs() []string {
	ids := make([]string, 0, len(b.BookGenres))
	for _, bg := range b.BookGenres {
		ids = append(ids, bg.GenreID)
	}
	return ids
}
