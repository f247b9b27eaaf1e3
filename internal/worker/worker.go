package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"feedview/internal/usecase"
)

// ErrStopped возвращается при отправке события в остановленную очередь.
var ErrStopped = errors.New("event loop is stopped")

const refreshTimeout = 30 * time.Second

// EventHandler обрабатывает события по одному. Реализуется usecase.Viewer.
type EventHandler interface {
	Handle(ctx context.Context, ev usecase.Event) (usecase.Page, error)
	FeedURL() string
}

type request struct {
	ctx   context.Context
	event usecase.Event
	reply chan result
}

type result struct {
	page usecase.Page
	err  error
}

// Loop - однопоточная очередь событий. Каждое событие обрабатывается полностью
// до начала следующего, поэтому состояние обработчика не требует блокировок.
// При ненулевом интервале текущая лента периодически перезагружается.
type Loop struct {
	handler   EventHandler
	requests  chan request
	interval  time.Duration
	log       *slog.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	done      chan struct{}
	startOnce sync.Once
	processed atomic.Int64
	failed    atomic.Int64
}

// New создает очередь. interval <= 0 отключает периодическое обновление.
func New(handler EventHandler, interval time.Duration, log *slog.Logger) *Loop {
	ctx, cancel := context.WithCancel(context.Background())
	return &Loop{
		handler:  handler,
		requests: make(chan request),
		interval: interval,
		log:      log.With(slog.String("component", "event-loop")),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
}

// Start запускает обработку событий в отдельной горутине.
func (l *Loop) Start() {
	l.startOnce.Do(func() {
		go l.run()
	})
}

// Stop останавливает очередь и ждет завершения текущего события.
func (l *Loop) Stop() {
	l.cancel()
	l.startOnce.Do(func() { close(l.done) })
	<-l.done
}

// Submit ставит событие в очередь и ждет результата.
func (l *Loop) Submit(ctx context.Context, ev usecase.Event) (usecase.Page, error) {
	req := request{ctx: ctx, event: ev, reply: make(chan result, 1)}
	select {
	case l.requests <- req:
	case <-l.ctx.Done():
		return usecase.Page{}, ErrStopped
	case <-ctx.Done():
		return usecase.Page{}, ctx.Err()
	}
	select {
	case res := <-req.reply:
		return res.page, res.err
	case <-ctx.Done():
		return usecase.Page{}, ctx.Err()
	}
}

func (l *Loop) run() {
	defer close(l.done)
	l.log.Info("Event loop started", slog.String("refresh_interval", l.interval.String()))
	var tick <-chan time.Time
	if l.interval > 0 {
		ticker := time.NewTicker(l.interval)
		defer ticker.Stop()
		tick = ticker.C
	}
	for {
		select {
		case req := <-l.requests:
			page, err := l.handle(req.ctx, req.event)
			req.reply <- result{page: page, err: err}
		case <-tick:
			l.refresh()
		case <-l.ctx.Done():
			l.log.Info("Event loop stopping",
				slog.Int64("processed", l.processed.Load()),
				slog.Int64("errors", l.failed.Load()),
			)
			return
		}
	}
}

func (l *Loop) handle(ctx context.Context, ev usecase.Event) (usecase.Page, error) {
	start := time.Now()
	page, err := l.handler.Handle(ctx, ev)
	l.processed.Add(1)
	if err != nil {
		l.failed.Add(1)
	}
	l.log.Debug("Event processed",
		slog.String("event", usecase.EventName(ev)),
		slog.Duration("duration", time.Since(start)),
	)
	return page, err
}

// refresh перезагружает текущую ленту, если она была загружена.
func (l *Loop) refresh() {
	url := l.handler.FeedURL()
	if url == "" {
		return
	}
	ctx, cancel := context.WithTimeout(l.ctx, refreshTimeout)
	defer cancel()
	if _, err := l.handle(ctx, usecase.LoadFeed{URL: url}); err != nil {
		l.log.Error("Feed refresh failed",
			slog.String("url", url),
			slog.Any("error", err),
		)
		return
	}
	l.log.Info("Feed refreshed", slog.String("url", url))
}

// Stats возвращает число обработанных событий и число завершившихся ошибкой.
func (l *Loop) Stats() (processed, failed int64) {
	return l.processed.Load(), l.failed.Load()
}

// GetInterval возвращает интервал обновления ленты.
func (l *Loop) GetInterval() time.Duration { return l.interval }
