// model/book.go
package model

import "time"

type BookStatus string

const (
	BookAvailable   BookStatus = "available"
	BookUnavailable BookStatus = "unavailable"
	BookSold        BookStatus = "sold"
)

func (s BookStatus) Valid() bool {
	switch s {
	case BookAvailable, BookUnavailable, BookSold:
		return true
	}
	return false
}

// CanTransitionTo reports whether a status change is allowed.
// available and unavailable flip both ways; sold is terminal.
func (s BookStatus) CanTransitionTo(next BookStatus) bool {
	if !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	return s != BookSold
}

type Book struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Author    string     `json:"author"`
	Year      int        `json:"year"`
	Category  string     `json:"category"`
	Price     float64    `json:"price"`
	Status    BookStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
}
