package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Publisher struct {
	bun.BaseModel `bun:"table:publishers,alias:pub"`

	ID            string    `bun:",pk" json:"id"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	PublisherName string    `bun:",notnull" json:"publisherName"`
	ContactEmail  *string   `json:"contactEmail"`
	Website       *string   `json:"website"`
	UserID        *string   `json:"userId"`
}

type BookPublisher struct {
	bun.BaseModel `bun:"table:book_publishers,alias:bp"`

	ID          int64      `bun:",pk,autoincrement" json:"id,string"`
	CreatedAt   time.Time  `json:"createdAt"`
	BookID      string     `bun:",notnull" json:"bookId"`
	PublisherID string     `bun:",notnull" json:"publisherId"`
	Publisher   *Publisher `bun:"rel:belongs-to,join:publisher_id=id" json:"publisher,omitempty"`
}
