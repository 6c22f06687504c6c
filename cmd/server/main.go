package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	handler "github.com/votehub/api/internal/adapters/handler/http"
	"github.com/votehub/api/internal/adapters/notifier/ws"
	"github.com/votehub/api/internal/adapters/repository/postgres"
	"github.com/votehub/api/internal/core/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found")
	}

	db, err := sql.Open("postgres", dbConnString())
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	hub := ws.NewHub()

	eventRepo := postgres.NewEventRepository(db)
	regRepo := postgres.NewRegistrationRepository(db)
	voteRepo := postgres.NewVoteRepository(db)
	tallyRepo := postgres.NewTallyRepository(db)
	userRepo := postgres.NewUserRepository(db)

	eventSvc := services.NewEventService(eventRepo, hub)
	regSvc := services.NewRegistrationService(eventRepo, regRepo)
	voteSvc := services.NewVoteService(eventRepo, regRepo, voteRepo, hub)
	tallySvc := services.NewTallyService(eventRepo, tallyRepo, hub)
	userSvc := services.NewUserService(userRepo)

	router := handler.NewHandler(
		handler.NewEventHandler(eventSvc),
		handler.NewRegistrationHandler(regSvc),
		handler.NewVoteHandler(voteSvc, tallySvc),
		handler.NewUserHandler(userSvc),
		hub,
	)

	addr := "0.0.0.0:" + envOr("PORT", "8080")
	server := &stdhttp.Server{Addr: addr, Handler: router}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "error", err)
		os.Exit(1)
	}
}

func dbConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		os.Getenv("POSTGRES_USER"),
		os.Getenv("POSTGRES_PASSWORD"),
		envOr("POSTGRES_HOST", "localhost"),
		envOr("POSTGRES_PORT", "5432"),
		os.Getenv("POSTGRES_DB"),
	)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
