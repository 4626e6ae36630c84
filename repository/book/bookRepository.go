package bookrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanushkayy/bookstore-web/model"
	"github.com/yanushkayy/bookstore-web/util/apperr"
)

// Filter holds the recognized list options; zero values are skipped.
// All present options are ANDed.
type Filter struct {
	Category string // case-insensitive substring
	Author   string // case-insensitive substring
	Year     *int   // exact
	Status   string // exact
}

type Repo interface {
	List(ctx context.Context, f Filter) ([]model.Book, error)
	Get(ctx context.Context, id int64) (*model.Book, error)
	Create(ctx context.Context, b *model.Book) (int64, error)
	Update(ctx context.Context, b *model.Book) error
	Delete(ctx context.Context, id int64) error
}

type repo struct{ pool *pgxpool.Pool }

func New(pool *pgxpool.Pool) Repo { return &repo{pool: pool} }

const bookColumns = `id, title, author, year, category, price, status, created_at`

func scanBook(row pgx.Row, b *model.Book) error {
	return row.Scan(&b.ID, &b.Title, &b.Author, &b.Year, &b.Category, &b.Price, &b.Status, &b.CreatedAt)
}

func (r *repo) List(ctx context.Context, f Filter) ([]model.Book, error) {
	q := `SELECT ` + bookColumns + ` FROM books`
	var conds []string
	var args []any
	if f.Category != "" {
		args = append(args, "%"+f.Category+"%")
		conds = append(conds, fmt.Sprintf("category ILIKE $%d", len(args)))
	}
	if f.Author != "" {
		args = append(args, "%"+f.Author+"%")
		conds = append(conds, fmt.Sprintf("author ILIKE $%d", len(args)))
	}
	if f.Year != nil {
		args = append(args, *f.Year)
		conds = append(conds, fmt.Sprintf("year = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY created_at DESC, id DESC"

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Book
	for rows.Next() {
		var b model.Book
		if err := scanBook(rows, &b); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *repo) Get(ctx context.Context, id int64) (*model.Book, error) {
	const q = `SELECT ` + bookColumns + ` FROM books WHERE id = $1`
	var b model.Book
	if err := scanBook(r.pool.QueryRow(ctx, q, id), &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.New(apperr.KindNotFound, "book not found")
		}
		return nil, err
	}
	return &b, nil
}

func (r *repo) Create(ctx context.Context, b *model.Book) (int64, error) {
	const q = `
INSERT INTO books (title, author, year, category, price, status)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, created_at`
	if err := r.pool.QueryRow(ctx, q, b.Title, b.Author, b.Year, b.Category, b.Price, b.Status).
		Scan(&b.ID, &b.CreatedAt); err != nil {
		return 0, err
	}
	return b.ID, nil
}

func (r *repo) Update(ctx context.Context, b *model.Book) error {
	const q = `
UPDATE books
SET title = $2, author = $3, year = $4, category = $5, price = $6, status = $7
WHERE id = $1`
	ct, err := r.pool.Exec(ctx, q, b.ID, b.Title, b.Author, b.Year, b.Category, b.Price, b.Status)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return apperr.New(apperr.KindNotFound, "book not found")
	}
	return nil
}

// Delete removes the book and all rentals referencing it in one
// transaction, so a reader never sees one without the other.
func (r *repo) Delete(ctx context.Context, id int64) (err error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if _, err = tx.Exec(ctx, `DELETE FROM rentals WHERE book_id = $1`, id); err != nil {
		return err
	}
	ct, err := tx.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		err = apperr.New(apperr.KindNotFound, "book not found")
		return err
	}
	return tx.Commit(ctx)
}
