package rentalrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanushkayy/bookstore-web/model"
	"github.com/yanushkayy/bookstore-web/util/apperr"
)

// AdminRow is a rental joined with its book for the admin listing.
type AdminRow struct {
	RentalID   int64              `json:"rental_id"`
	BookID     int64              `json:"book_id"`
	BookTitle  string             `json:"book_title"`
	BookAuthor string             `json:"book_author"`
	UserName   string             `json:"user_name"`
	Mode       model.RentalMode   `json:"mode"`
	Status     model.RentalStatus `json:"status"`
	StartAt    time.Time          `json:"start_at"`
	ExpiresAt  *time.Time         `json:"expires_at,omitempty"`
	Reminded   bool               `json:"reminded"`
}

// Upcoming is an active rent rental whose expiry falls inside a window.
type Upcoming struct {
	RentalID  int64     `json:"rental_id"`
	BookID    int64     `json:"book_id"`
	BookTitle string    `json:"book_title"`
	UserName  string    `json:"user_name"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Repo interface {
	GetBook(ctx context.Context, bookID int64) (*model.Book, error)
	CreatePurchase(ctx context.Context, bookID int64, userName string, at time.Time) (int64, error)
	CreateRent(ctx context.Context, bookID int64, userName string, durationDays int, at, expiresAt time.Time) (int64, error)
	ListAll(ctx context.Context) ([]AdminRow, error)
	ListUpcoming(ctx context.Context, from, to time.Time, unremindedOnly bool) ([]Upcoming, error)
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)
	MarkReminded(ctx context.Context, ids []int64) error
}

type repo struct{ pool *pgxpool.Pool }

func New(pool *pgxpool.Pool) Repo { return &repo{pool: pool} }

func (r *repo) GetBook(ctx context.Context, bookID int64) (*model.Book, error) {
	const q = `
SELECT id, title, author, year, category, price, status, created_at
FROM books
WHERE id = $1`
	var b model.Book
	err := r.pool.QueryRow(ctx, q, bookID).
		Scan(&b.ID, &b.Title, &b.Author, &b.Year, &b.Category, &b.Price, &b.Status, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.New(apperr.KindNotFound, "book not found")
		}
		return nil, err
	}
	return &b, nil
}

// CreatePurchase marks the book sold and records the completed purchase
// in one transaction. The guarded UPDATE arbitrates concurrent buyers:
// whoever flips the status first wins, everyone else gets a conflict.
func (r *repo) CreatePurchase(ctx context.Context, bookID int64, userName string, at time.Time) (id int64, err error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	const mark = `
UPDATE books
SET status = 'sold'
WHERE id = $1
  AND status <> 'sold'`
	ct, err := tx.Exec(ctx, mark, bookID)
	if err != nil {
		return 0, err
	}
	if ct.RowsAffected() == 0 {
		err = apperr.New(apperr.KindConflict, "book already sold")
		return 0, err
	}

	const ins = `
INSERT INTO rentals (book_id, user_name, mode, status, start_at)
VALUES ($1, $2, 'purchase', 'completed', $3)
RETURNING id`
	if err = tx.QueryRow(ctx, ins, bookID, userName, at).Scan(&id); err != nil {
		return 0, err
	}
	if err = tx.Commit(ctx); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repo) CreateRent(ctx context.Context, bookID int64, userName string, durationDays int, at, expiresAt time.Time) (int64, error) {
	const q = `
INSERT INTO rentals (book_id, user_name, mode, duration_days, status, start_at, expires_at)
VALUES ($1, $2, 'rent', $3, 'active', $4, $5)
RETURNING id`
	var id int64
	err := r.pool.QueryRow(ctx, q, bookID, userName, durationDays, at, expiresAt).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return 0, apperr.New(apperr.KindNotFound, "book not found")
		}
		return 0, err
	}
	return id, nil
}

func (r *repo) ListAll(ctx context.Context) ([]AdminRow, error) {
	const q = `
SELECT r.id, r.book_id, b.title, b.author, r.user_name, r.mode, r.status, r.start_at, r.expires_at, r.reminded
FROM rentals r
JOIN books b ON b.id = r.book_id
ORDER BY r.start_at DESC, r.id DESC`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AdminRow
	for rows.Next() {
		var a AdminRow
		if err := rows.Scan(
			&a.RentalID, &a.BookID, &a.BookTitle, &a.BookAuthor,
			&a.UserName, &a.Mode, &a.Status, &a.StartAt, &a.ExpiresAt, &a.Reminded,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *repo) ListUpcoming(ctx context.Context, from, to time.Time, unremindedOnly bool) ([]Upcoming, error) {
	q := `
SELECT r.id, r.book_id, b.title, r.user_name, r.expires_at
FROM rentals r
JOIN books b ON b.id = r.book_id
WHERE r.status = 'active'
  AND r.mode = 'rent'
  AND r.expires_at IS NOT NULL
  AND r.expires_at >= $1
  AND r.expires_at <= $2`
	if unremindedOnly {
		q += `
  AND r.reminded = FALSE`
	}
	q += `
ORDER BY r.expires_at ASC, r.id ASC`

	rows, err := r.pool.Query(ctx, q, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Upcoming
	for rows.Next() {
		var u Upcoming
		if err := rows.Scan(&u.RentalID, &u.BookID, &u.BookTitle, &u.UserName, &u.ExpiresAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// ExpireOverdue is idempotent: rentals already expired match nothing.
func (r *repo) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	const q = `
UPDATE rentals
SET status = 'expired'
WHERE status = 'active'
  AND mode = 'rent'
  AND expires_at IS NOT NULL
  AND expires_at <= $1`
	ct, err := r.pool.Exec(ctx, q, now)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

func (r *repo) MarkReminded(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	const q = `UPDATE rentals SET reminded = TRUE WHERE id = ANY($1)`
	_, err := r.pool.Exec(ctx, q, ids)
	return err
}
