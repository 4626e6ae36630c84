package migrations

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type seedBook struct {
	title    string
	author   string
	year     int
	category string
	price    float64
}

var starterBooks = []seedBook{
	{"Кобзар", "Тарас Шевченко", 1840, "поезія", 180.00},
	{"Тіні забутих предків", "Михайло Коцюбинський", 1911, "повість", 145.50},
	{"Місто", "Валер'ян Підмогильний", 1928, "роман", 210.00},
	{"Лісова пісня", "Леся Українка", 1911, "драма", 165.00},
	{"Хіба ревуть воли, як ясла повні?", "Панас Мирний", 1880, "роман", 199.99},
	{"Майстер корабля", "Юрій Яновський", 1928, "роман", 175.00},
}

// Seed inserts the starter catalog, but only into an empty shop.
func Seed(ctx context.Context, pool *pgxpool.Pool) (int, error) {
	var n int64
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM books`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	if n > 0 {
		return 0, nil
	}

	const q = `
INSERT INTO books (title, author, year, category, price, status)
VALUES ($1, $2, $3, $4, $5, 'available')`
	for _, b := range starterBooks {
		if _, err := pool.Exec(ctx, q, b.title, b.author, b.year, b.category, b.price); err != nil {
			return 0, fmt.Errorf("seed book %q: %w", b.title, err)
		}
	}
	return len(starterBooks), nil
}
