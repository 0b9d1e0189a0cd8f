package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Author is a writer profile. It may be linked to at most one platform
// account through UserID.
type Author struct {
	bun.BaseModel `bun:"table:authors,alias:a"`

	ID                    string    `bun:",pk" json:"id"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`
	AuthorName            string    `bun:",notnull" json:"authorName"`
	AuthorProfileImageURL *string   `json:"authorProfileImageUrl"`
	UserID                *string   `json:"userId"`
}

type BookAuthor struct {
	bun.BaseModel `bun:"table:book_authors,alias:ba"`

	ID        int64     `bun:",pk,autoincrement" json:"id,string"`
	CreatedAt time.Time `json:"createdAt"`
	BookID    string    `bun:",notnull" json:"bookId"`
	AuthorID  string    `bun:",notnull" json:"authorId"`
	Author    *Author   `bun:"rel:belongs-to,join:author_id=id" json:"author,omitempty"`
}
