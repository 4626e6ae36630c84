package bookrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	bookrepo "github.com/yanushkayy/bookstore-web/repository/book"

	"github.com/yanushkayy/bookstore-web/model"
	"github.com/yanushkayy/bookstore-web/util/apperr"
	"github.com/yanushkayy/bookstore-web/util/testutil"
)

func TestList_FilterAndDefaultOrder(t *testing.T) {
	pool := testutil.NewTestPool(t)
	ctx := context.Background()
	testutil.Truncate(t, ctx, pool)

	testutil.InsertBook(t, ctx, pool, "Місто", "Валер'ян Підмогильний", 1928, "роман", 210, "available")
	testutil.InsertBook(t, ctx, pool, "Кобзар", "Тарас Шевченко", 1840, "поезія", 180, "available")
	romanID := testutil.InsertBook(t, ctx, pool, "Майстер корабля", "Юрій Яновський", 1928, "Роман", 175, "available")

	r := bookrepo.New(pool)

	// category matches case-insensitively, as a substring
	out, err := r.List(ctx, bookrepo.Filter{Category: "РОМАН"})
	require.NoError(t, err)
	require.Len(t, out, 2)
	// default order: newest insert first
	require.EqualValues(t, romanID, out[0].ID)

	// ANDed with year
	year := 1928
	out, err = r.List(ctx, bookrepo.Filter{Category: "роман", Year: &year, Author: "Яновський"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "Майстер корабля", out[0].Title)

	// no match is an empty list, not an error
	out, err = r.List(ctx, bookrepo.Filter{Status: "sold"})
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestGet_NotFound(t *testing.T) {
	pool := testutil.NewTestPool(t)
	ctx := context.Background()
	testutil.Truncate(t, ctx, pool)

	r := bookrepo.New(pool)
	_, err := r.Get(ctx, 12345)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestCreateAndUpdate(t *testing.T) {
	pool := testutil.NewTestPool(t)
	ctx := context.Background()
	testutil.Truncate(t, ctx, pool)

	r := bookrepo.New(pool)
	b := model.Book{Title: "Кобзар", Author: "Тарас Шевченко", Year: 1840, Category: "поезія", Price: 180, Status: model.BookAvailable}
	id, err := r.Create(ctx, &b)
	require.NoError(t, err)
	require.NotZero(t, id)
	require.False(t, b.CreatedAt.IsZero())

	b.Price = 199.99
	b.Status = model.BookUnavailable
	require.NoError(t, r.Update(ctx, &b))

	got, err := r.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, 199.99, got.Price)
	require.Equal(t, model.BookUnavailable, got.Status)

	missing := model.Book{ID: 999999, Title: "x", Author: "y", Status: model.BookAvailable}
	err = r.Update(ctx, &missing)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestDelete_CascadesToRentals(t *testing.T) {
	pool := testutil.NewTestPool(t)
	ctx := context.Background()
	testutil.Truncate(t, ctx, pool)

	id := testutil.InsertBook(t, ctx, pool, "Місто", "Валер'ян Підмогильний", 1928, "роман", 210, "available")
	keepID := testutil.InsertBook(t, ctx, pool, "Кобзар", "Тарас Шевченко", 1840, "поезія", 180, "available")

	at := time.Now().UTC()
	for i := 0; i < 3; i++ {
		testutil.InsertRent(t, ctx, pool, id, "Оля", 14, at, at.AddDate(0, 0, 14), "active", false)
	}
	testutil.InsertRent(t, ctx, pool, keepID, "Іван", 30, at, at.AddDate(0, 0, 30), "active", false)

	r := bookrepo.New(pool)
	require.NoError(t, r.Delete(ctx, id))

	var n int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM rentals WHERE book_id = $1`, id).Scan(&n))
	require.Zero(t, n)
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM rentals`).Scan(&n))
	require.Equal(t, 1, n)

	err := r.Delete(ctx, id)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
