// @title           Todo API
// @version         1.0
// @description     Single-user todo list persistence API.
// @host            localhost:8080
// @BasePath        /api
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Joshcode41/todo-app/internal/app"
	"github.com/Joshcode41/todo-app/internal/config"
	"github.com/Joshcode41/todo-app/internal/logging"
	"github.com/Joshcode41/todo-app/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New(os.Stderr, "info", "api").Fatal("config", "err", err)
	}
	logger := logging.New(os.Stderr, cfg.App.LogLevel, "api")
	logger.Info("config loaded", "env", cfg.App.Env, "store", cfg.Store.Driver)

	shutdownTracing, err := telemetry.Setup(context.Background(), cfg.OTEL, cfg.App.Version)
	if err != nil {
		logger.Fatal("telemetry init", "err", err)
	}

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Fatal("app init", "err", err)
	}
	logger.Info("app ready, starting HTTP server")
	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.HTTP.Port,
		Handler:      application.Router(),
		ReadTimeout:  cfg.HTTP.ReadTimeout.Duration(),
		WriteTimeout: cfg.HTTP.WriteTimeout.Duration(),
		IdleTimeout:  cfg.HTTP.IdleTimeout.Duration(),
	}

	go func() {
		logger.Info("HTTP server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", "err", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown", "err", err)
	}
	if err := application.Close(ctx); err != nil {
		logger.Error("app close", "err", err)
	}
	if err := shutdownTracing(ctx); err != nil {
		logger.Error("tracing shutdown", "err", err)
	}
}
