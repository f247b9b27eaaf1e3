package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"feedview/internal/config"
)

// New создает логгер приложения по конфигурации.
// Записи уровня ERROR и выше пишутся в error_file, остальные - в file.
// Пустое имя файла означает stderr.
func New(cfg config.LoggerConfig) (*slog.Logger, error) {
	logWriter, err := openWriter(cfg.File)
	if err != nil {
		return nil, err
	}
	errorWriter, err := openWriter(cfg.ErrorFile)
	if err != nil {
		return nil, err
	}
	handler := NewLevelDispatcherHandler(logWriter, errorWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     parseLogLevel(cfg.Level),
	})
	return slog.New(handler), nil
}

func openWriter(path string) (io.Writer, error) {
	if path == "" {
		return os.Stderr, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return f, nil
}

// parseLogLevel преобразует строку в slog.Level. Неизвестные значения дают info.
func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LevelDispatcherHandler направляет записи ERROR и выше в errorHandler, остальные - в defaultHandler.
type LevelDispatcherHandler struct {
	defaultHandler slog.Handler
	errorHandler   slog.Handler
}

func NewLevelDispatcherHandler(defaultOut, errorOut io.Writer, opts *slog.HandlerOptions) *LevelDispatcherHandler {
	return &LevelDispatcherHandler{
		defaultHandler: NewReadableHandler(defaultOut, opts),
		errorHandler:   NewReadableHandler(errorOut, opts),
	}
}

func (h *LevelDispatcherHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.defaultHandler.Enabled(ctx, level)
}

func (h *LevelDispatcherHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		return h.errorHandler.Handle(ctx, r)
	}
	return h.defaultHandler.Handle(ctx, r)
}

func (h *LevelDispatcherHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &LevelDispatcherHandler{
		defaultHandler: h.defaultHandler.WithAttrs(attrs),
		errorHandler:   h.errorHandler.WithAttrs(attrs),
	}
}

func (h *LevelDispatcherHandler) WithGroup(name string) slog.Handler {
	return &LevelDispatcherHandler{
		defaultHandler: h.defaultHandler.WithGroup(name),
		errorHandler:   h.errorHandler.WithGroup(name),
	}
}

// ReadableHandler пишет записи в человекочитаемом виде:
//
//	[15:04:05.000] INFO [component] (op) <file.go:42>: message | key=value, ...
type ReadableHandler struct {
	w     io.Writer
	opts  *slog.HandlerOptions
	attrs []slog.Attr
	group string
}

func NewReadableHandler(w io.Writer, opts *slog.HandlerOptions) *ReadableHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &ReadableHandler{w: w, opts: opts}
}

func (h *ReadableHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

func (h *ReadableHandler) Handle(_ context.Context, r slog.Record) error {
	var component, operation string
	var attrs []slog.Attr
	collect := func(a slog.Attr) {
		switch a.Key {
		case "component":
			component = a.Value.String()
		case "op":
			operation = a.Value.String()
		default:
			attrs = append(attrs, a)
		}
	}
	for _, a := range h.attrs {
		collect(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		collect(h.qualify(a))
		return true
	})

	var line strings.Builder
	fmt.Fprintf(&line, "[%s] %s", r.Time.Format("15:04:05.000"), formatLevel(r.Level))
	if component != "" {
		fmt.Fprintf(&line, " [%s]", component)
	}
	if operation != "" {
		fmt.Fprintf(&line, " (%s)", operation)
	}
	if h.opts.AddSource && r.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		fmt.Fprintf(&line, " <%s:%d>", filepath.Base(frame.File), frame.Line)
	}
	line.WriteString(": ")
	line.WriteString(r.Message)
	if len(attrs) > 0 {
		parts := make([]string, 0, len(attrs))
		for _, a := range attrs {
			parts = append(parts, formatAttr(a))
		}
		line.WriteString(" | ")
		line.WriteString(strings.Join(parts, ", "))
	}
	line.WriteByte('\n')
	_, err := io.WriteString(h.w, line.String())
	return err
}

func formatLevel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}

// formatAttr форматирует атрибут; ошибки берутся в кавычки, длинные URL сокращаются.
func formatAttr(attr slog.Attr) string {
	switch attr.Key {
	case "error", "query":
		return fmt.Sprintf("%s=%q", attr.Key, attr.Value.String())
	case "url", "link", "feed_url":
		return fmt.Sprintf("%s=%s", attr.Key, shortenURL(attr.Value.String()))
	default:
		return fmt.Sprintf("%s=%s", attr.Key, attr.Value.String())
	}
}

// shortenURL обрезает URL длиннее 50 символов до схемы и хоста.
func shortenURL(url string) string {
	if len(url) > 50 {
		parts := strings.Split(url, "/")
		if len(parts) >= 3 {
			return fmt.Sprintf("%s//%s/...", parts[0], parts[2])
		}
	}
	return url
}

// qualify добавляет к ключу префикс текущей группы. component и op не группируются.
func (h *ReadableHandler) qualify(a slog.Attr) slog.Attr {
	if h.group != "" && a.Key != "component" && a.Key != "op" {
		a.Key = h.group + "." + a.Key
	}
	return a
}

func (h *ReadableHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = slices.Clone(h.attrs)
	for _, a := range attrs {
		clone.attrs = append(clone.attrs, h.qualify(a))
	}
	return &clone
}

func (h *ReadableHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	if clone.group != "" {
		name = clone.group + "." + name
	}
	clone.group = name
	return &clone
}
