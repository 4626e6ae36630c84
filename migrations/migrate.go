// Package migrations owns the schema and the startup seed.
package migrations

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS books (
	id         BIGSERIAL PRIMARY KEY,
	title      TEXT NOT NULL,
	author     TEXT NOT NULL,
	year       INT NOT NULL,
	category   TEXT NOT NULL,
	price      NUMERIC(10,2) NOT NULL CHECK (price >= 0),
	status     TEXT NOT NULL DEFAULT 'available',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS rentals (
	id            BIGSERIAL PRIMARY KEY,
	book_id       BIGINT NOT NULL REFERENCES books(id),
	user_name     TEXT NOT NULL,
	mode          TEXT NOT NULL,
	duration_days INT,
	start_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	expires_at    TIMESTAMPTZ,
	status        TEXT NOT NULL,
	reminded      BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE INDEX IF NOT EXISTS idx_rentals_book_id ON rentals (book_id);
CREATE INDEX IF NOT EXISTS idx_rentals_expires_at ON rentals (expires_at) WHERE status = 'active';
`

// Apply creates the tables when they do not exist yet.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
