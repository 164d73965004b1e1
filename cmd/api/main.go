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

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"github.com/octobees/template-finder/internal/config"
	"github.com/octobees/template-finder/internal/database"
	"github.com/octobees/template-finder/internal/logger"
	"github.com/octobees/template-finder/internal/repository"
	"github.com/octobees/template-finder/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog := logger.Must(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = zlog.Sync() }()
	gin.SetMode(gin.ReleaseMode)

	opts := []service.TemplateServiceOption{service.WithLogger(zlog)}
	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		pool, err := database.Connect(ctx, cfg.DatabaseURL, database.Options{MaxConns: 4})
		if err != nil {
			zlog.Warn("search history disabled", zap.Error(err))
		} else {
			defer pool.Close()
			history := repository.NewPGXSearchHistoryRepository(pool)
			if err := history.EnsureSchema(ctx); err != nil {
				zlog.Warn("search history schema not ready", zap.Error(err))
			}
			opts = append(opts, service.WithSearchRecorder(history))
		}
		cancel()
	}

	svc := service.NewTemplateService(buildProvider(cfg, zlog), opts...)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newHTTPHandler(cfg, svc, zlog),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		zlog.Info("template service listening",
			zap.String("addr", srv.Addr),
			zap.String("transport", cfg.Transport),
			zap.String("provider", cfg.Provider),
		)
		serverErr <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		zlog.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server error", zap.Error(err))
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("graceful shutdown failed", zap.Error(err))
	}
}
