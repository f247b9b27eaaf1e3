package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"
)

// Способы хранения отметок избранного.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Config представляет конфигурацию приложения.
type Config struct {
	Server    ServerConfig    `json:"server"`
	Logger    LoggerConfig    `json:"logger"`
	App       AppConfig       `json:"app"`
	Favorites FavoritesConfig `json:"favorites"`
	Database  DatabaseConfig  `json:"database"`
}

// ServerConfig содержит адрес HTTP-сервера.
type ServerConfig struct {
	Address string `json:"address"`
}

// LoggerConfig содержит уровень логирования и файлы вывода.
// Пустое имя файла означает stderr.
type LoggerConfig struct {
	Level     string `json:"level"`
	File      string `json:"file"`
	ErrorFile string `json:"error_file"`
}

// AppConfig содержит настройки загрузки лент.
type AppConfig struct {
	DefaultFeedURL  string            `json:"default_feed_url"`
	RequestTimeout  string            `json:"request_timeout"`
	RefreshInterval string            `json:"refresh_interval"`
	FeedNames       map[string]string `json:"feed_names"`
}

// FavoritesConfig выбирает хранилище отметок избранного.
type FavoritesConfig struct {
	Backend    string `json:"backend"`
	SQLitePath string `json:"sqlite_path"`
}

// DatabaseConfig содержит параметры подключения к PostgreSQL.
type DatabaseConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	DBName   string `json:"dbname"`
	SSLMode  string `json:"sslmode"`
}

// DSN возвращает строку подключения к PostgreSQL в формате URI.
func (c *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Username, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.SSLMode}}.Encode(),
	}
	return u.String()
}

// Load загружает конфигурацию из JSON-файла поверх значений по умолчанию.
// Отсутствующий файл не является ошибкой, если allowMissing=true.
func Load(configPath string, allowMissing bool) (*Config, error) {
	cfg := New()
	fileData, err := os.ReadFile(configPath)
	if errors.Is(err, os.ErrNotExist) && allowMissing {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}
	if err := json.Unmarshal(fileData, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse JSON from file %s: %w", configPath, err)
	}
	return cfg, nil
}

// New создает конфигурацию со значениями по умолчанию.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Address: ":8080",
		},
		Logger: LoggerConfig{
			Level: "info",
		},
		App: AppConfig{
			RequestTimeout:  "30s",
			RefreshInterval: "0s",
			FeedNames:       map[string]string{},
		},
		Favorites: FavoritesConfig{
			Backend:    BackendSQLite,
			SQLitePath: "favorites.db",
		},
		Database: DatabaseConfig{
			Host:    "localhost",
			Port:    5432,
			SSLMode: "disable",
		},
	}
}

// Validate проверяет конфигурацию и возвращает первую найденную проблему.
func (c *Config) Validate() error {
	if c.App.DefaultFeedURL != "" {
		if _, err := url.ParseRequestURI(c.App.DefaultFeedURL); err != nil {
			return fmt.Errorf("invalid app.default_feed_url: %s", c.App.DefaultFeedURL)
		}
	}
	if d, err := time.ParseDuration(c.App.RequestTimeout); err != nil || d < 0 {
		return fmt.Errorf("invalid app.request_timeout: %q", c.App.RequestTimeout)
	}
	if d, err := time.ParseDuration(c.App.RefreshInterval); err != nil || d < 0 {
		return fmt.Errorf("invalid app.refresh_interval: %q", c.App.RefreshInterval)
	}
	switch c.Favorites.Backend {
	case BackendMemory:
	case BackendSQLite:
		if c.Favorites.SQLitePath == "" {
			return fmt.Errorf("favorites.sqlite_path is not set")
		}
	case BackendPostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("database host is not set")
		}
		if c.Database.Username == "" {
			return fmt.Errorf("database username is not set")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("database password is not set")
		}
	default:
		return fmt.Errorf("unknown favorites.backend %q", c.Favorites.Backend)
	}
	return nil
}

// RequestTimeoutDuration возвращает таймаут загрузки ленты. Вызывать после Validate.
func (c *AppConfig) RequestTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.RequestTimeout)
	return d
}

// RefreshIntervalDuration возвращает интервал обновления ленты. Вызывать после Validate.
func (c *AppConfig) RefreshIntervalDuration() time.Duration {
	d, _ := time.ParseDuration(c.RefreshInterval)
	return d
}
