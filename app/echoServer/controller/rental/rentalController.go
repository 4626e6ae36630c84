package rental

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	rentalsvc "github.com/yanushkayy/bookstore-web/service/rental"

	"github.com/yanushkayy/bookstore-web/model"
	"github.com/yanushkayy/bookstore-web/util/apperr"
)

// remindersWindow is the fixed lookahead of the admin reminders view.
const remindersWindow = 3 * 24 * time.Hour

type Controller struct {
	Svc rentalsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

func (h *Controller) respondErr(c echo.Context, op string, err error) error {
	switch apperr.KindOf(err) {
	case apperr.KindInvalidRequest:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": apperr.Message(err)})
	case apperr.KindNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": apperr.Message(err)})
	case apperr.KindConflict:
		return c.JSON(http.StatusConflict, echo.Map{"message": apperr.Message(err)})
	case apperr.KindUnauthorized:
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	default:
		h.Log.Error(op, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
}

// POST /v1/rentals
func (h *Controller) Create(c echo.Context) error {
	var req CreateTransactionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	out, err := h.Svc.RequestTransaction(c.Request().Context(), rentalsvc.TransactionReq{
		BookID:   req.BookID,
		UserName: req.UserName,
		Mode:     model.RentalMode(req.Mode),
		Duration: req.Duration,
	})
	if err != nil {
		return h.respondErr(c, "transaction create error", err)
	}
	return c.JSON(http.StatusCreated, out)
}

// GET /v1/rentals  (admin)
func (h *Controller) ListAll(c echo.Context) error {
	rows, err := h.Svc.ListAll(c.Request().Context())
	if err != nil {
		return h.respondErr(c, "rental list error", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/rentals/reminders  (admin, 3-day window)
func (h *Controller) Reminders(c echo.Context) error {
	rows, err := h.Svc.Upcoming(c.Request().Context(), remindersWindow, false)
	if err != nil {
		return h.respondErr(c, "reminders error", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}
