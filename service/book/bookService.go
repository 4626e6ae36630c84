// Package booksvc is the catalog: it owns Book records, their status
// field and the filtered/sorted listing the shop front runs on.
package booksvc

import (
	"context"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	bookrepo "github.com/yanushkayy/bookstore-web/repository/book"

	"github.com/yanushkayy/bookstore-web/model"
	"github.com/yanushkayy/bookstore-web/util/apperr"
)

type Sort string

const (
	SortDefault  Sort = ""         // newest first
	SortAuthor   Sort = "author"   // ascending, locale-aware
	SortCategory Sort = "category" // ascending, locale-aware
	SortYear     Sort = "year"     // descending
)

// ListQuery carries the recognized filter options plus the sort mode.
type ListQuery struct {
	Category string
	Author   string
	Year     *int
	Status   string
	Sort     Sort
}

type CreateParams struct {
	Title    string
	Author   string
	Year     int
	Category string
	Price    float64
	Status   model.BookStatus // empty means available
}

// UpdateParams are partial: a nil field keeps the stored value.
type UpdateParams struct {
	Title    *string
	Author   *string
	Year     *int
	Category *string
	Price    *float64
	Status   *model.BookStatus
}

type Repo interface {
	List(ctx context.Context, f bookrepo.Filter) ([]model.Book, error)
	Get(ctx context.Context, id int64) (*model.Book, error)
	Create(ctx context.Context, b *model.Book) (int64, error)
	Update(ctx context.Context, b *model.Book) error
	Delete(ctx context.Context, id int64) error
}

type Service interface {
	List(ctx context.Context, q ListQuery) ([]model.Book, error)
	Get(ctx context.Context, id int64) (*model.Book, error)
	Create(ctx context.Context, p CreateParams) (int64, error)
	Update(ctx context.Context, id int64, p UpdateParams) (*model.Book, error)
	Delete(ctx context.Context, id int64) error
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) List(ctx context.Context, q ListQuery) ([]model.Book, error) {
	books, err := s.r.List(ctx, bookrepo.Filter{
		Category: q.Category,
		Author:   q.Author,
		Year:     q.Year,
		Status:   q.Status,
	})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	sortBooks(books, q.Sort)
	return books, nil
}

// sortBooks re-orders in place; the repo already returns newest first,
// which is the default order.
func sortBooks(books []model.Book, mode Sort) {
	switch mode {
	case SortAuthor:
		c := collate.New(language.Und, collate.IgnoreCase)
		sort.SliceStable(books, func(i, j int) bool {
			return c.CompareString(books[i].Author, books[j].Author) < 0
		})
	case SortCategory:
		c := collate.New(language.Und, collate.IgnoreCase)
		sort.SliceStable(books, func(i, j int) bool {
			return c.CompareString(books[i].Category, books[j].Category) < 0
		})
	case SortYear:
		sort.SliceStable(books, func(i, j int) bool {
			return books[i].Year > books[j].Year
		})
	}
}

func (s *service) Get(ctx context.Context, id int64) (*model.Book, error) {
	b, err := s.r.Get(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return b, nil
}

func (s *service) Create(ctx context.Context, p CreateParams) (int64, error) {
	if strings.TrimSpace(p.Title) == "" || strings.TrimSpace(p.Author) == "" || strings.TrimSpace(p.Category) == "" {
		return 0, apperr.New(apperr.KindInvalidRequest, "title, author and category are required")
	}
	if p.Price < 0 {
		return 0, apperr.New(apperr.KindInvalidRequest, "price must not be negative")
	}
	status := p.Status
	if status == "" {
		status = model.BookAvailable
	}
	if !status.Valid() {
		return 0, apperr.New(apperr.KindInvalidRequest, "unknown book status")
	}

	b := model.Book{
		Title:    p.Title,
		Author:   p.Author,
		Year:     p.Year,
		Category: p.Category,
		Price:    p.Price,
		Status:   status,
	}
	id, err := s.r.Create(ctx, &b)
	if err != nil {
		return 0, apperr.Internal(err)
	}
	return id, nil
}

func (s *service) Update(ctx context.Context, id int64, p UpdateParams) (*model.Book, error) {
	b, err := s.r.Get(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	// Omitted fields fall back to the stored value.
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Author != nil {
		b.Author = *p.Author
	}
	if p.Year != nil {
		b.Year = *p.Year
	}
	if p.Category != nil {
		b.Category = *p.Category
	}
	if p.Price != nil {
		if *p.Price < 0 {
			return nil, apperr.New(apperr.KindInvalidRequest, "price must not be negative")
		}
		b.Price = *p.Price
	}
	if p.Status != nil && *p.Status != b.Status {
		if !b.Status.CanTransitionTo(*p.Status) {
			return nil, apperr.New(apperr.KindConflict, "invalid status transition")
		}
		b.Status = *p.Status
	}

	if err := s.r.Update(ctx, b); err != nil {
		return nil, apperr.Internal(err)
	}
	return b, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.r.Delete(ctx, id); err != nil {
		return apperr.Internal(err)
	}
	return nil
}
