package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"inkpost/app/auth"
	"inkpost/app/config"
	"inkpost/app/controllers"
	"inkpost/app/repositories"
	"inkpost/app/repositories/sqlstore"
	"inkpost/app/routes"
	"inkpost/app/services"
)

// OpenStore opens the backend selected by cfg.Store.
func OpenStore(ctx context.Context, cfg config.Config) (*repositories.Store, error) {
	switch cfg.Store {
	case config.StoreBadger:
		return repositories.OpenBadger(cfg.DBPath)
	case config.StoreSQLite, config.StorePostgres:
		dialect, err := sqlstore.ParseDialect(cfg.Store)
		if err != nil {
			return nil, err
		}
		return sqlstore.Open(ctx, dialect, cfg.DatabaseURL)
	}
	return nil, fmt.Errorf("unknown store %q", cfg.Store)
}

// NewHandler wires the services and controllers over store.
func NewHandler(cfg config.Config, store *repositories.Store) http.Handler {
	if cfg.JWTKey == "" {
		log.Println("[CONFIG] JWT_KEY is not set, every protected operation will be rejected")
	}
	gate := auth.NewGate(cfg.JWTKey)

	postService := services.NewPostService(store.Posts, store.Comments, gate,
		services.WithScopedComments(cfg.ScopeComments))
	commentService := services.NewCommentService(store.Comments, gate)

	return routes.SetupRoutes(
		controllers.NewPostController(postService, cfg.StrictAuth),
		controllers.NewCommentController(commentService, cfg.StrictAuth),
	)
}

// RunAppServer serves the blog API until ctx is cancelled, then shuts the
// server down gracefully and closes the store.
func RunAppServer(ctx context.Context, cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	store, err := OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("[SHUTDOWN] failed to close store: %v", err)
		}
	}()

	listener, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Addr, err)
	}
	return serve(ctx, listener, NewHandler(cfg, store), cfg.ShutdownTimeout)
}

func serve(ctx context.Context, listener net.Listener, handler http.Handler, shutdownTimeout time.Duration) error {
	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[SERVER] listening on %s", listener.Addr())
		errCh <- server.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Println("[SHUTDOWN] draining connections")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
