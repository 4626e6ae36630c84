// Package main bookshop API.
//
// @title           Bookshop API
// @version         1.0
// @description     bookshop inventory and rental service (catalog, rentals, reminders).
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey AdminKey
// @in header
// @name X-Admin-Key
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/yanushkayy/bookstore-web/app/echoServer"
	bookctrl "github.com/yanushkayy/bookstore-web/app/echoServer/controller/book"
	rentalctrl "github.com/yanushkayy/bookstore-web/app/echoServer/controller/rental"
	"github.com/yanushkayy/bookstore-web/app/echoServer/validation"
	"github.com/yanushkayy/bookstore-web/config"
	"github.com/yanushkayy/bookstore-web/migrations"
	bookrepo "github.com/yanushkayy/bookstore-web/repository/book"
	rentalrepo "github.com/yanushkayy/bookstore-web/repository/rental"
	booksvc "github.com/yanushkayy/bookstore-web/service/book"
	rentalsvc "github.com/yanushkayy/bookstore-web/service/rental"
	"github.com/yanushkayy/bookstore-web/util/clock"
	"github.com/yanushkayy/bookstore-web/util/database"
)

const shutdownTimeout = 10 * time.Second

func main() {

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	// DB
	pool, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := migrations.Apply(ctx, pool); err != nil {
		log.Error("migrations failed", "err", err)
		os.Exit(1)
	}
	if n, err := migrations.Seed(ctx, pool); err != nil {
		log.Error("seed failed", "err", err)
		os.Exit(1)
	} else if n > 0 {
		log.Info("seeded starter catalog", "books", n)
	}

	// repos
	br := bookrepo.New(pool)
	rr := rentalrepo.New(pool)

	// services
	clk := clock.NewSystem()
	bs := booksvc.New(br)
	rs := rentalsvc.New(rr, clk)

	// sweeper
	sweeper := rentalsvc.NewSweeper(rs, clk, cfg.SweepInterval, rentalsvc.NewSlogNotifier(log), log)
	go sweeper.Run(ctx)

	// controllers
	v := validator.New()
	bookC := &bookctrl.Controller{Svc: bs, V: v, Log: log}
	rentalC := &rentalctrl.Controller{Svc: rs, V: v, Log: log}

	// echo
	e := echo.New()
	e.HideBanner = true
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Book:   bookC,
		Rental: rentalC,

		AdminKey: cfg.AdminKey,
	})

	port := cfg.Port
	log.Info("starting server", "port", port, "env", cfg.Env, "sweep_interval", cfg.SweepInterval.String())

	go func() {
		if err := e.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received, stopping server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server shutdown error", "err", err)
	}
	log.Info("server stopped")
}
