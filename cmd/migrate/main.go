package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		slog.Error("DATABASE_URL is not set")
		os.Exit(1)
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		slog.Error("opening database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		slog.Error("pinging database", "err", err)
		os.Exit(1)
	}

	path := os.Getenv("MIGRATIONS_PATH")
	if path == "" {
		path = "migrations/migrations.sql"
	}

	sqlBytes, err := os.ReadFile(path)
	if err != nil {
		slog.Error("reading migrations file", "path", path, "err", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	slog.Info("applying migrations", "path", path)
	if _, err := db.ExecContext(ctx, string(sqlBytes)); err != nil {
		slog.Error("applying migrations", "err", err)
		os.Exit(1)
	}

	slog.Info("migrations applied")
}
