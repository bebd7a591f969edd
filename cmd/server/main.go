package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"citronix/config"
	"citronix/database"
	"citronix/pkg/logger"
	"citronix/pkg/metrics"
	"citronix/pkg/middleware"
	"citronix/router"
)

func main() {
	// 1) Config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// 2) Logger
	lg, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer lg.Sync()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		lg.Fatal("invalid TZ", "tz", cfg.Timezone, "error", err)
	}
	now := func() time.Time { return time.Now().In(loc) }

	// 3) DB + automigrate
	db, err := database.Open(cfg, lg)
	if err != nil {
		lg.Fatal("database", "error", err)
	}

	// 4) Echo
	m := metrics.New()
	e := echo.New()
	e.HideBanner = true
	e.Validator = middleware.NewValidator()
	e.HTTPErrorHandler = middleware.ErrorHandler(lg, m)
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(lg))
	e.Use(middleware.Metrics(m))

	// 5) Repos/Services/Controllers
	router.New(e, router.Wire(router.Deps{
		DB:      db,
		Log:     lg,
		Metrics: m,
		Env:     cfg.Env,
		Now:     now,
	}))

	// 6) Serve until SIGINT/SIGTERM
	go func() {
		lg.Info("server listening", "addr", cfg.Addr(), "env", cfg.Env, "driver", cfg.DBDriver)
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	lg.Info("shutting down", "timeout", cfg.ShutdownTimeout.String())
	if err := e.Shutdown(ctx); err != nil {
		lg.Error("shutdown", "error", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
