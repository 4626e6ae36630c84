package book

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	booksvc "github.com/yanushkayy/bookstore-web/service/book"

	"github.com/yanushkayy/bookstore-web/model"
	"github.com/yanushkayy/bookstore-web/util/apperr"
)

type Controller struct {
	Svc booksvc.Service
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

// GET /v1/books
func (h *Controller) List(c echo.Context) error {
	q := booksvc.ListQuery{
		Category: c.QueryParam("category"),
		Author:   c.QueryParam("author"),
		Status:   c.QueryParam("status"),
		Sort:     booksvc.Sort(c.QueryParam("sort")),
	}
	if raw := c.QueryParam("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid year"})
		}
		q.Year = &year
	}

	rows, err := h.Svc.List(c.Request().Context(), q)
	if err != nil {
		return h.respondErr(c, "book list error", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/books/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	row, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		return h.respondErr(c, "book detail error", err)
	}
	return c.JSON(http.StatusOK, row)
}

// POST /v1/books  (admin)
func (h *Controller) Create(c echo.Context) error {
	var req CreateBookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}
	id, err := h.Svc.Create(c.Request().Context(), booksvc.CreateParams{
		Title:    req.Title,
		Author:   req.Author,
		Year:     *req.Year,
		Category: req.Category,
		Price:    *req.Price,
		Status:   model.BookStatus(req.Status),
	})
	if err != nil {
		return h.respondErr(c, "book create error", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// PUT /v1/books/:id  (admin)
func (h *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req UpdateBookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}
	p := booksvc.UpdateParams{
		Title:    req.Title,
		Author:   req.Author,
		Year:     req.Year,
		Category: req.Category,
		Price:    req.Price,
	}
	if req.Status != nil {
		st := model.BookStatus(*req.Status)
		p.Status = &st
	}
	row, err := h.Svc.Update(c.Request().Context(), id, p)
	if err != nil {
		return h.respondErr(c, "book update error", err)
	}
	return c.JSON(http.StatusOK, row)
}

// DELETE /v1/books/:id  (admin, cascades to rentals)
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return h.respondErr(c, "book delete error", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "deleted"})
}
