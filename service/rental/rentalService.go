// Package rentalsvc is the ledger: it owns Rental records, derives
// expiry timestamps and evaluates the rental state machine.
//
// Renting deliberately leaves the book status untouched, so several
// users can hold active rentals on the same title at once (multi-copy
// style inventory). Only purchase flips a book to sold.
package rentalsvc

import (
	"context"
	"strings"
	"time"

	rentalrepo "github.com/yanushkayy/bookstore-web/repository/rental"

	"github.com/yanushkayy/bookstore-web/model"
	"github.com/yanushkayy/bookstore-web/util/apperr"
	"github.com/yanushkayy/bookstore-web/util/clock"
)

// durationDays maps the accepted rent duration codes to day counts.
var durationDays = map[string]int{
	"2w": 14,
	"1m": 30,
	"3m": 90,
}

type TransactionReq struct {
	BookID   int64
	UserName string
	Mode     model.RentalMode
	Duration string // rent only: 2w | 1m | 3m
}

type TransactionResult struct {
	RentalID  int64              `json:"rental_id"`
	Mode      model.RentalMode   `json:"mode"`
	Status    model.RentalStatus `json:"status"`
	ExpiresAt *time.Time         `json:"expires_at,omitempty"`
}

type AdminRow = rentalrepo.AdminRow
type Upcoming = rentalrepo.Upcoming

type Repo interface {
	GetBook(ctx context.Context, bookID int64) (*model.Book, error)
	CreatePurchase(ctx context.Context, bookID int64, userName string, at time.Time) (int64, error)
	CreateRent(ctx context.Context, bookID int64, userName string, durationDays int, at, expiresAt time.Time) (int64, error)
	ListAll(ctx context.Context) ([]AdminRow, error)
	ListUpcoming(ctx context.Context, from, to time.Time, unremindedOnly bool) ([]Upcoming, error)
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)
	MarkReminded(ctx context.Context, ids []int64) error
}

type Service interface {
	RequestTransaction(ctx context.Context, req TransactionReq) (*TransactionResult, error)
	ListAll(ctx context.Context) ([]AdminRow, error)
	Upcoming(ctx context.Context, window time.Duration, unremindedOnly bool) ([]Upcoming, error)
	SweepExpirations(ctx context.Context, now time.Time) (int64, error)
	MarkReminded(ctx context.Context, ids []int64) error
}

type service struct {
	r     Repo
	clock clock.Clock
}

func New(r Repo, c clock.Clock) Service { return &service{r: r, clock: c} }

func (s *service) RequestTransaction(ctx context.Context, req TransactionReq) (*TransactionResult, error) {
	if req.BookID <= 0 {
		return nil, apperr.New(apperr.KindInvalidRequest, "book id is required")
	}
	if strings.TrimSpace(req.UserName) == "" {
		return nil, apperr.New(apperr.KindInvalidRequest, "user name is required")
	}
	if !req.Mode.Valid() {
		return nil, apperr.New(apperr.KindInvalidRequest, "mode must be purchase or rent")
	}

	book, err := s.r.GetBook(ctx, req.BookID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if book.Status == model.BookSold {
		return nil, apperr.New(apperr.KindConflict, "book already sold")
	}

	now := s.clock.Now()

	if req.Mode == model.ModePurchase {
		id, err := s.r.CreatePurchase(ctx, req.BookID, req.UserName, now)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		return &TransactionResult{
			RentalID: id,
			Mode:     model.ModePurchase,
			Status:   model.RentalCompleted,
		}, nil
	}

	days, ok := durationDays[req.Duration]
	if !ok {
		return nil, apperr.New(apperr.KindInvalidRequest, "invalid duration")
	}
	expires := now.Add(time.Duration(days) * 24 * time.Hour)
	id, err := s.r.CreateRent(ctx, req.BookID, req.UserName, days, now, expires)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &TransactionResult{
		RentalID:  id,
		Mode:      model.ModeRent,
		Status:    model.RentalActive,
		ExpiresAt: &expires,
	}, nil
}

func (s *service) ListAll(ctx context.Context) ([]AdminRow, error) {
	rows, err := s.r.ListAll(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return rows, nil
}

// Upcoming returns active rent rentals expiring within [now, now+window].
func (s *service) Upcoming(ctx context.Context, window time.Duration, unremindedOnly bool) ([]Upcoming, error) {
	now := s.clock.Now()
	rows, err := s.r.ListUpcoming(ctx, now, now.Add(window), unremindedOnly)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return rows, nil
}

func (s *service) SweepExpirations(ctx context.Context, now time.Time) (int64, error) {
	n, err := s.r.ExpireOverdue(ctx, now)
	if err != nil {
		return 0, apperr.Internal(err)
	}
	return n, nil
}

func (s *service) MarkReminded(ctx context.Context, ids []int64) error {
	if err := s.r.MarkReminded(ctx, ids); err != nil {
		return apperr.Internal(err)
	}
	return nil
}
