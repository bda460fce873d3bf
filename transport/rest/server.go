package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// NewRouter - wires all API routes onto a ServeMux.
func NewRouter(h *Handlers, metricsHandler http.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /ping", pingHandler)

	mux.HandleFunc("POST /user", h.CreateUser)
	mux.HandleFunc("GET /user/ranking", h.GetRankings)

	mux.HandleFunc("POST /game", h.NewGame)
	mux.HandleFunc("GET /game/{id}", h.GetGame)
	mux.HandleFunc("PUT /game/{id}", h.MakeMove)
	mux.HandleFunc("PUT /game/cancel/{id}", h.CancelGame)
	mux.HandleFunc("GET /game/user/{name}", h.GetUserGames)
	mux.HandleFunc("GET /game/history/{id}", h.GetGameHistory)

	mux.Handle("GET /metrics", metricsHandler)

	return mux
}

// Start - serves until the context is cancelled, then shuts down gracefully.
func Start(ctx context.Context, port string, mux *http.ServeMux) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	return nil
}
