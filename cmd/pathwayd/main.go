package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pathwayhq/pathway/internal/api"
	"github.com/pathwayhq/pathway/internal/config"
	"github.com/pathwayhq/pathway/internal/queue"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logLevel := slog.LevelInfo
	if cfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	ctx := context.Background()
	app, err := api.NewApp(ctx, cfg)
	if err != nil {
		return fmt.Errorf("create app: %w", err)
	}
	defer app.Close()

	// Deliver alert notifications in-process when a broker is configured.
	// The log handler stands in until a real notification channel exists.
	var consumer *queue.Consumer
	if app.Queue != nil {
		consumer = queue.NewConsumer(app.Queue, queue.LogHandler(slog.Default()), queue.DefaultConsumerConfig())
		if err := consumer.Start(ctx); err != nil {
			slog.Warn("alert consumer failed to start", "error", err)
			consumer = nil
		}
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           api.NewRouter(app),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second, // AI-backed endpoints can be slow
		IdleTimeout:       120 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh

		slog.Info("received signal, shutting down", "signal", sig.String())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
		if consumer != nil {
			consumer.Stop()
		}
		close(done)
	}()

	slog.Info("pathway listening", "port", cfg.Port, "debug", cfg.Debug)
	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	<-done
	slog.Info("server stopped")
	return nil
}
