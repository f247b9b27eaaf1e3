package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresKV хранит флаги избранного в таблице favorites (см. internal/migrations).
type PostgresKV struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewPostgresKV(pool *pgxpool.Pool, log *slog.Logger) *PostgresKV {
	log.Info("Initializing Postgres favorites storage", slog.String("component", "storage"))
	return &PostgresKV{
		pool: pool,
		log:  log.With(slog.String("component", "storage")),
	}
}

func (db *PostgresKV) Close() {
	db.log.Info("Closing database connection pool")
	db.pool.Close()
}

func (db *PostgresKV) Get(ctx context.Context, key string) (string, bool, error) {
	const op = "storage.postgres.Get"
	var value string
	err := db.pool.QueryRow(ctx, `SELECT value FROM favorites WHERE link = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		db.log.Error("Database query failed",
			slog.String("op", op),
			slog.String("link", key),
			slog.Any("error", err),
		)
		return "", false, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}
	return value, true, nil
}

func (db *PostgresKV) Set(ctx context.Context, key, value string) error {
	const op = "storage.postgres.Set"
	query := `
	INSERT INTO favorites (link, value)
	VALUES ($1, $2)
	ON CONFLICT (link) DO UPDATE SET value = EXCLUDED.value, updated_at = now();
	`
	if _, err := db.pool.Exec(ctx, query, key, value); err != nil {
		db.log.Error("Failed to save favorite",
			slog.String("op", op),
			slog.String("link", key),
			slog.Any("error", err),
		)
		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}
	return nil
}

func (db *PostgresKV) Delete(ctx context.Context, key string) error {
	const op = "storage.postgres.Delete"
	if _, err := db.pool.Exec(ctx, `DELETE FROM favorites WHERE link = $1`, key); err != nil {
		db.log.Error("Failed to delete favorite",
			slog.String("op", op),
			slog.String("link", key),
			slog.Any("error", err),
		)
		return fmt.Errorf("%s: failed to execute delete: %w", op, err)
	}
	return nil
}
