package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	sqlbuilder "github.com/huandu/go-sqlbuilder"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS favorites (
	link TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

// SQLiteKV хранит флаги избранного в локальном файле SQLite.
type SQLiteKV struct {
	db  *sql.DB
	log *slog.Logger
}

// NewSQLiteKV открывает (или создает) файл базы и таблицу favorites.
func NewSQLiteKV(ctx context.Context, path string, log *slog.Logger) (*SQLiteKV, error) {
	log = log.With(slog.String("component", "storage"), slog.String("path", path))
	db, err := sql.Open("sqlite", fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}
	// SQLite допускает только одного писателя.
	db.SetMaxOpenConns(1)
	db.SetConnMaxIdleTime(time.Hour)
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create favorites table: %w", err)
	}
	log.Info("Initializing SQLite favorites storage")
	return &SQLiteKV{db: db, log: log}, nil
}

func (s *SQLiteKV) Get(ctx context.Context, key string) (string, bool, error) {
	const op = "storage.sqlite.Get"
	sb := sqlbuilder.NewSelectBuilder()
	sb.Select("value").From("favorites").Where(sb.Equal("link", key))
	query, args := sb.BuildWithFlavor(sqlbuilder.SQLite)
	var value string
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		s.log.Error("Database query failed", slog.String("op", op), slog.Any("error", err))
		return "", false, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}
	return value, true, nil
}

func (s *SQLiteKV) Set(ctx context.Context, key, value string) error {
	const op = "storage.sqlite.Set"
	ib := sqlbuilder.NewInsertBuilder()
	ib.ReplaceInto("favorites").Cols("link", "value").Values(key, value)
	query, args := ib.BuildWithFlavor(sqlbuilder.SQLite)
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		s.log.Error("Failed to save favorite", slog.String("op", op), slog.Any("error", err))
		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}
	return nil
}

func (s *SQLiteKV) Delete(ctx context.Context, key string) error {
	const op = "storage.sqlite.Delete"
	db := sqlbuilder.NewDeleteBuilder()
	db.DeleteFrom("favorites").Where(db.Equal("link", key))
	query, args := db.BuildWithFlavor(sqlbuilder.SQLite)
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		s.log.Error("Failed to delete favorite", slog.String("op", op), slog.Any("error", err))
		return fmt.Errorf("%s: failed to execute delete: %w", op, err)
	}
	return nil
}

// Count возвращает число сохраненных флагов.
func (s *SQLiteKV) Count(ctx context.Context) (int, error) {
	sb := sqlbuilder.NewSelectBuilder()
	sb.Select("COUNT(*)").From("favorites")
	query, args := sb.BuildWithFlavor(sqlbuilder.SQLite)
	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("storage.sqlite.Count: %w", err)
	}
	return n, nil
}

func (s *SQLiteKV) Close() {
	s.log.Info("Closing SQLite database")
	if err := s.db.Close(); err != nil {
		s.log.Error("Failed to close SQLite database", slog.Any("error", err))
	}
}
