package app

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"feedview/internal/adapter/fetcher"
	"feedview/internal/adapter/parser"
	"feedview/internal/config"
	"feedview/internal/favorites"
	"feedview/internal/logger"
	"feedview/internal/migrations"
	server "feedview/internal/transport/http"
	"feedview/internal/usecase"
	"feedview/internal/worker"
	"feedview/storage"

	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultLoadTimeout = 30 * time.Second

// App - HTTP-рендерер ленты: очередь событий, API и хранилище избранного.
type App struct {
	config   *config.Config
	logger   *slog.Logger
	server   *http.Server
	loop     *worker.Loop
	kv       storage.KV
	stopChan chan os.Signal
	wg       sync.WaitGroup
}

// Components - собранные зависимости рендерера без транспорта.
type Components struct {
	Viewer *usecase.Viewer
	KV     storage.KV
}

// Build собирает загрузчик ленты, хранилище избранного и Viewer по конфигурации.
func Build(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Components, error) {
	kv, err := OpenFavorites(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	httpFetcher := fetcher.NewHTTPFetcher(cfg.App.RequestTimeoutDuration(), log)
	xmlParser := parser.NewXMLParser(log)
	loader := usecase.NewFeedLoader(httpFetcher, xmlParser, log, cfg.App.FeedNames)
	store := favorites.NewStore(kv, log)
	return &Components{
		Viewer: usecase.NewViewer(loader, store, log),
		KV:     kv,
	}, nil
}

// OpenFavorites открывает хранилище отметок избранного, выбранное в конфигурации.
// Для postgres перед использованием применяются миграции.
func OpenFavorites(ctx context.Context, cfg *config.Config, log *slog.Logger) (storage.KV, error) {
	switch cfg.Favorites.Backend {
	case config.BackendMemory:
		log.Info("Using in-memory favorites storage", slog.String("component", "storage"))
		return storage.NewMemoryKV(), nil
	case config.BackendSQLite:
		kv, err := storage.NewSQLiteKV(ctx, cfg.Favorites.SQLitePath, log)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite favorites: %w", err)
		}
		return kv, nil
	case config.BackendPostgres:
		dbPool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := dbPool.Ping(ctx); err != nil {
			dbPool.Close()
			return nil, fmt.Errorf("database ping failed: %w", err)
		}
		if err := migrations.Apply(ctx, log, dbPool); err != nil {
			dbPool.Close()
			return nil, fmt.Errorf("migrations failed: %w", err)
		}
		return storage.NewPostgresKV(dbPool, log), nil
	default:
		return nil, fmt.Errorf("unknown favorites backend %q", cfg.Favorites.Backend)
	}
}

// New создает приложение: логгер, хранилище, очередь событий и HTTP-сервер.
func New(cfg *config.Config) (*App, error) {
	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}
	slog.SetDefault(appLogger)

	components, err := Build(context.Background(), cfg, appLogger)
	if err != nil {
		return nil, err
	}
	loop := worker.New(components.Viewer, cfg.App.RefreshIntervalDuration(), appLogger)
	handler := server.NewHandler(appLogger, loop)
	router := server.NewServer(appLogger, handler)

	return &App{
		config: cfg,
		logger: appLogger,
		server: &http.Server{
			Addr:              cfg.Server.Address,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		loop:     loop,
		kv:       components.KV,
		stopChan: make(chan os.Signal, 1),
	}, nil
}

// Run запускает очередь событий и HTTP-сервер и блокируется до сигнала завершения.
// Если задан app.default_feed_url, лента загружается сразу после старта.
func (a *App) Run() error {
	a.logger.Info("Starting feed viewer",
		slog.String("component", "app"),
		slog.String("favorites_backend", a.config.Favorites.Backend),
		slog.String("refresh_interval", a.loop.GetInterval().String()),
	)
	a.loop.Start()

	listener, err := net.Listen("tcp", a.server.Addr)
	if err != nil {
		a.loop.Stop()
		a.kv.Close()
		return fmt.Errorf("failed to create listener: %w", err)
	}
	a.logger.Info("HTTP server ready",
		slog.String("component", "server"),
		slog.String("address", listener.Addr().String()),
	)
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			a.logger.Error("HTTP server failed", slog.Any("error", err))
		}
	}()

	if url := a.config.App.DefaultFeedURL; url != "" {
		a.loadDefaultFeed(url)
	}

	signal.Notify(a.stopChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-a.stopChan
	a.logger.Info("Shutdown signal received",
		slog.String("component", "app"),
		slog.String("signal", sig.String()),
	)
	return a.Shutdown()
}

func (a *App) loadDefaultFeed(url string) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultLoadTimeout)
	defer cancel()
	page, err := a.loop.Submit(ctx, usecase.LoadFeed{URL: url})
	if err != nil {
		a.logger.Error("Default feed load failed",
			slog.String("component", "app"),
			slog.String("url", url),
			slog.Any("error", err),
		)
		return
	}
	a.logger.Info("Default feed loaded",
		slog.String("component", "app"),
		slog.String("url", url),
		slog.Int("entries", page.TotalCount),
	)
}

// Shutdown завершает HTTP-сервер, останавливает очередь событий и закрывает хранилище.
func (a *App) Shutdown() error {
	a.logger.Info("Starting graceful shutdown", slog.String("component", "app"))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("HTTP server shutdown failed", slog.Any("error", err))
	}
	a.loop.Stop()
	if a.kv != nil {
		a.kv.Close()
	}
	a.wg.Wait()
	processed, failed := a.loop.Stats()
	a.logger.Info("Application stopped gracefully",
		slog.String("component", "app"),
		slog.Int64("events_processed", processed),
		slog.Int64("events_failed", failed),
	)
	return nil
}
