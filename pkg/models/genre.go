package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Genre struct {
	bun.BaseModel `bun:"table:genres,alias:g"`

	ID        string    `bun:",pk" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	GenreName string    `bun:",notnull" json:"genreName"`
}

type BookGenre struct {
	bun.BaseModel `bun:"table:book_genres,alias:bg"`

	ID        int64     `bun:",pk,autoincrement" json:"id,string"`
	CreatedAt time.Time `json:"createdAt"`
	BookID    string    `bun:",notnull" json:"bookId"`
	GenreID   string    `bun:",notnull" json:"genreId"`
	Genre     *Genre    `bun:"rel:belongs-to,join:genre_id=id" json:"genre,omitempty"`
}
