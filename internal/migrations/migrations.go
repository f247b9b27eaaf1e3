package migrations

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Migration struct {
	ID    string
	UpSQL string
}

var allMigrations = []Migration{
	{
		ID: "20261018120000_create_favorites_table",
		UpSQL: `
		CREATE TABLE favorites(
		link TEXT PRIMARY KEY,
		value TEXT NOT NULL
		);`,
	},
	{
		ID: "20261018120100_add_favorites_updated_at",
		UpSQL: `
		ALTER TABLE favorites
		ADD COLUMN updated_at TIMESTAMPTZ NOT NULL DEFAULT now();`,
	},
}

// Apply применяет недостающие миграции в одной транзакции.
// Примененные миграции учитываются в таблице schema_migrations.
func Apply(ctx context.Context, log *slog.Logger, pool *pgxpool.Pool) error {
	log = log.With(slog.String("component", "migrations"))
	log.Info("Starting database migrations check...")
	_, err := pool.Exec(ctx, `
	CREATE TABLE IF NOT EXISTS schema_migrations (
	id TEXT PRIMARY KEY
	);
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}
	rows, err := pool.Query(ctx, "SELECT id FROM schema_migrations")
	if err != nil {
		return fmt.Errorf("failed to query applied migrations: %w", err)
	}
	applied, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return fmt.Errorf("failed to scan migration ids: %w", err)
	}
	pending := Pending(applied)
	if len(pending) == 0 {
		log.Info("Database is up to date, no new migrations found.")
		return nil
	}
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)
	for _, m := range pending {
		log.Info("Applying migration", slog.String("id", m.ID))
		if _, err := tx.Exec(ctx, m.UpSQL); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", m.ID, err)
		}
		if _, err := tx.Exec(ctx, "INSERT INTO schema_migrations (id) VALUES ($1)", m.ID); err != nil {
			return fmt.Errorf("failed to record migration %s: %w", m.ID, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit migrations transaction: %w", err)
	}
	log.Info("Database migrations applied successfully", slog.Int("count", len(pending)))
	return nil
}

// Pending возвращает непримененные миграции, отсортированные по ID.
func Pending(applied []string) []Migration {
	done := make(map[string]bool, len(applied))
	for _, id := range applied {
		done[id] = true
	}
	pending := make([]Migration, 0, len(allMigrations))
	for _, m := range allMigrations {
		if !done[m.ID] {
			pending = append(pending, m)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].ID < pending[j].ID
	})
	return pending
}
