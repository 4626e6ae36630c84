package rental

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	rentalsvc "github.com/yanushkayy/bookstore-web/service/rental"

	"github.com/yanushkayy/bookstore-web/util/apperr"
)

type svcMock struct {
	requestFn func(ctx context.Context, req rentalsvc.TransactionReq) (*rentalsvc.TransactionResult, error)
	listFn    func(ctx context.Context) ([]rentalsvc.AdminRow, error)
	upcomFn   func(ctx context.Context, window time.Duration, unremindedOnly bool) ([]rentalsvc.Upcoming, error)
}

var _ rentalsvc.Service = (*svcMock)(nil)

func (m *svcMock) RequestTransaction(ctx context.Context, req rentalsvc.TransactionReq) (*rentalsvc.TransactionResult, error) {
	return m.requestFn(ctx, req)
}
func (m *svcMock) ListAll(ctx context.Context) ([]rentalsvc.AdminRow, error) {
	if m.listFn == nil {
		return nil, nil
	}
	return m.listFn(ctx)
}
func (m *svcMock) Upcoming(ctx context.Context, window time.Duration, unremindedOnly bool) ([]rentalsvc.Upcoming, error) {
	if m.upcomFn == nil {
		return nil, nil
	}
	return m.upcomFn(ctx, window, unremindedOnly)
}
func (m *svcMock) SweepExpirations(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}
func (m *svcMock) MarkReminded(ctx context.Context, ids []int64) error { return nil }

func newController(svc rentalsvc.Service) *Controller {
	return &Controller{
		Svc: svc,
		V:   validator.New(),
		Log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func doCreate(t *testing.T, h *Controller, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/rentals", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, h.Create(c))
	return rec
}

func TestCreate_ValidationError(t *testing.T) {
	h := newController(&svcMock{})
	rec := doCreate(t, h, `{"mode":"rent"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreate_InvalidJSON(t *testing.T) {
	h := newController(&svcMock{})
	rec := doCreate(t, h, `{"book_id": "not a number"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreate_ConflictMapsTo409(t *testing.T) {
	h := newController(&svcMock{
		requestFn: func(ctx context.Context, req rentalsvc.TransactionReq) (*rentalsvc.TransactionResult, error) {
			return nil, apperr.New(apperr.KindConflict, "book already sold")
		},
	})
	rec := doCreate(t, h, `{"book_id":1,"user_name":"Оля","mode":"purchase"}`)
	require.Equal(t, http.StatusConflict, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "book already sold", body["message"])
}

func TestCreate_InternalDetailIsHidden(t *testing.T) {
	h := newController(&svcMock{
		requestFn: func(ctx context.Context, req rentalsvc.TransactionReq) (*rentalsvc.TransactionResult, error) {
			return nil, apperr.Wrap(apperr.KindInternal, "internal error", context.DeadlineExceeded)
		},
	})
	rec := doCreate(t, h, `{"book_id":1,"user_name":"Оля","mode":"purchase"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotContains(t, rec.Body.String(), "deadline")
}

func TestCreate_RentReturnsExpiry(t *testing.T) {
	expires := time.Date(2025, 3, 24, 12, 0, 0, 0, time.UTC)
	h := newController(&svcMock{
		requestFn: func(ctx context.Context, req rentalsvc.TransactionReq) (*rentalsvc.TransactionResult, error) {
			require.EqualValues(t, 5, req.BookID)
			require.Equal(t, "2w", req.Duration)
			return &rentalsvc.TransactionResult{RentalID: 9, Mode: "rent", Status: "active", ExpiresAt: &expires}, nil
		},
	})
	rec := doCreate(t, h, `{"book_id":5,"user_name":"Оля","mode":"rent","duration":"2w"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.EqualValues(t, 9, body["rental_id"])
	require.Equal(t, "2025-03-24T12:00:00Z", body["expires_at"])
}

func TestReminders_UsesThreeDayWindow(t *testing.T) {
	var gotWindow time.Duration
	var gotUnreminded bool
	h := newController(&svcMock{
		upcomFn: func(ctx context.Context, window time.Duration, unremindedOnly bool) ([]rentalsvc.Upcoming, error) {
			gotWindow, gotUnreminded = window, unremindedOnly
			return nil, nil
		},
	})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/rentals/reminders", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, h.Reminders(c))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 3*24*time.Hour, gotWindow)
	require.False(t, gotUnreminded)
}
