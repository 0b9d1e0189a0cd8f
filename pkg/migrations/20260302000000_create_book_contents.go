package migrations

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

func init() {
	up := func(_ context.Context, db *bun.DB) error {
		// One row per (book, content type). The json row keeps the chapter
		// bundle inline; the pdf row only points at the stored file.
		_, err := db.Exec(`
			CREATE TABLE book_contents (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				book_id TEXT REFERENCES books (id) ON DELETE CASCADE NOT NULL,
				content_type TEXT NOT NULL CHECK (content_type IN ('json', 'pdf')),
				content TEXT,
				content_path TEXT,
				page_count INTEGER,
				UNIQUE (book_id, content_type)
			)
`)
		return errors.WithStack(err)
	}

	down := func(_ context.Context, db *bun.DB) error {
		_, err := db.Exec("DROP TABLE IF EXISTS book_contents")
		return errors.WithStack(err)
	}

	Migrations.MustRegister(up, down)
}
