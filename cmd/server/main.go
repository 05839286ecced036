package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"todoapp/internal/auth"
	"todoapp/internal/server"
	"todoapp/internal/storage/sqldb"
	"todoapp/internal/util"
)

func main() {
	addrFlag := flag.String("addr", util.EnvOrDefault("TODO_ADDR", ":8080"), "HTTP listen address")
	dsnFlag := flag.String("dsn", util.EnvOrDefault("TODO_DSN", "data/todo.db"), "Database DSN: postgres URL or sqlite file path")
	secretFlag := flag.String("jwt-secret", os.Getenv("TODO_JWT_SECRET"), "JWT signing secret (at least 32 characters)")
	ttlFlag := flag.String("token-ttl", util.EnvOrDefault("TODO_TOKEN_TTL", "30m"), "Session token validity")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ttl := util.DurationOrDefault(*ttlFlag, auth.DefaultTTL, logger)
	tokens, err := auth.NewTokenIssuer(*secretFlag, ttl)
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	store, err := sqldb.Open(*dsnFlag, logger)
	if err != nil {
		logger.Error("unable to open database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close()

	srv := server.New(store, tokens, logger)

	httpServer := &http.Server{
		Addr:    *addrFlag,
		Handler: srv.Engine(),
	}

	go func() {
		logger.Info("starting server", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped unexpectedly", slog.String("error", err.Error()))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("failed to shutdown server", slog.String("error", err.Error()))
	}

	logger.Info("server stopped")
}
