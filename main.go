package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"safecircle/config"
	"safecircle/internal/seed"
	"safecircle/pkg/logger"
	"safecircle/router"
	"safecircle/socket"
	"safecircle/store"
)

func main() {
	// Environment first, so LOG_LEVEL from .env is honoured.
	config.LoadEnv()
	cfg := config.Load()
	logger.Init(cfg.LogLevel)
	defer logger.Sync()

	persister, err := store.NewPersister(cfg.Store)
	if err != nil {
		logger.Sugar.Fatalf("Failed to create store (backend=%s): %v", cfg.Store.Backend, err)
	}
	db := store.New(persister)

	if cfg.Seed {
		seed.Run(db)
	}

	hub := socket.NewHub()
	go hub.Run()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router.Setup(db, hub, cfg.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Sugar.Infof("SafeCircle backend listening on %s (store=%s)", cfg.Addr(), cfg.Store.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Sugar.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar.Errorf("HTTP shutdown: %v", err)
	}
	hub.CloseAll()

	if err := db.Close(); err != nil {
		logger.Sugar.Errorf("Failed to close store: %v", err)
	}
}
