package main

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/XingWo/skyblessings-go/internal/adapters/blessings"
	httpadapter "github.com/XingWo/skyblessings-go/internal/adapters/http"
	"github.com/XingWo/skyblessings-go/internal/adapters/render"
	"github.com/XingWo/skyblessings-go/internal/app"
	"github.com/XingWo/skyblessings-go/internal/config"
)

// stdRNG delegates to math/rand/v2 (auto-seeded).
type stdRNG struct{}

func (stdRNG) Intn(n int) int { return rand.IntN(n) }

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.toml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)

	// Assets and the blessing table must be complete before the first
	// request is accepted.
	assets, err := render.LoadAssets(cfg.Image.AssetsDir)
	if err != nil {
		logger.Error("failed to load assets", "error", err)
		os.Exit(1)
	}

	store := blessings.NewEmbeddedStore()
	if _, err := store.Table(context.Background()); err != nil {
		logger.Error("failed to load blessing table", "error", err)
		os.Exit(1)
	}

	renderer := render.NewRenderer(assets, cfg.Image.Width, cfg.Image.Height, cfg.Image.FontSize)
	svc := app.NewBlessingService(store, renderer, stdRNG{}, logger, cfg.Debug())

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestID())
	e.Use(httpadapter.LoggingMiddleware(logger))

	handler := httpadapter.NewHandler(svc, cfg.Image.AssetsDir)
	handler.Register(e)

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		logger.Info("starting server", "addr", cfg.Addr())
		if err := e.Start(cfg.Addr()); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
