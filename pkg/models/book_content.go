package models

import (
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
	"github.com/uptrace/bun"
)

const (
	ContentTypeJSON = "json"
	ContentTypePDF  = "pdf"
)

// BookContent holds either the chapter bundle of a book (ContentTypeJSON) or
// a reference to its stored PDF (ContentTypePDF). There is at most one row
// per book and content type.
type BookContent struct {
	bun.BaseModel `bun:"table:book_contents,alias:bc"`

	ID          int64     `bun:",pk,autoincrement" json:"id,string"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	BookID      string    `bun:",notnull" json:"bookId"`
	ContentType string    `bun:",notnull" json:"contentType"`
	Content     *string   `json:"-"`
	ContentPath *string   `json:"contentPath"`
	PageCount   *int      `json:"pageCount,omitempty"`
}

// Chapter is a titled HTML fragment. Chapters only exist inside the json
// content bundle of a book.
type Chapter struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Order   int    `json:"order"`
}

type ChapterBundle struct {
	Chapters []Chapter `json:"chapters"`
}

// Chapters decodes the chapter bundle stored in a json content row. Rows of
// any other type, or without a payload, have no chapters.
func (bc *BookContent) Chapters() ([]Chapter, error) {
	if bc == nil || bc.ContentType != ContentTypeJSON || bc.Content == nil || *bc.Content == "" {
		return []Chapter{}, nil
	}
	bundle := ChapterBundle{}
	if err := json.Unmarshal([]byte(*bc.Content), &bundle); err != nil {
		return nil, errors.WithStack(err)
	}
	if bundle.Chapters == nil {
		bundle.Chapters = []Chapter{}
	}
	return bundle.Chapters, nil
}
