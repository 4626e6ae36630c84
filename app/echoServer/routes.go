package echoServer

import (
	"github.com/labstack/echo/v4"

	"github.com/yanushkayy/bookstore-web/app/echoServer/controller/book"
	"github.com/yanushkayy/bookstore-web/app/echoServer/controller/rental"
)

type C struct {
	Book   *book.Controller
	Rental *rental.Controller

	AdminKey string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")
	pub.GET("/books", c.Book.List)
	pub.GET("/books/:id", c.Book.Detail)
	pub.POST("/rentals", c.Rental.Create)

	// Admin
	admin := e.Group("/v1", AdminKey(c.AdminKey))
	admin.POST("/books", c.Book.Create)
	admin.PUT("/books/:id", c.Book.Update)
	admin.DELETE("/books/:id", c.Book.Delete)
	admin.GET("/rentals", c.Rental.ListAll)
	admin.GET("/rentals/reminders", c.Rental.Reminders)
}
