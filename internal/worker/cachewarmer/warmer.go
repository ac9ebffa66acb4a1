package cachewarmer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/m04kA/KoiConsult-AvailabilityService/internal/service/schedules"
)

// Stats итог одного прогона
type Stats struct {
	Masters int
	Source  schedules.Source
	Stale   int
	Pruned  int64
}

// Warmer по расписанию cron обновляет кэш расписаний всех мастеров ростера,
// чтобы при недоступности бэкенда деградация отдавала свежие данные
type Warmer struct {
	roster  RosterProvider
	fetcher ScheduleFetcher
	pruner  Pruner
	maxAge  time.Duration
	timeout time.Duration
	logger  Logger

	cron *cron.Cron
	mu   sync.Mutex // один прогон за раз
}

// NewWarmer создает воркер. pruner может быть nil, если кэш не умеет чистить старые записи.
func NewWarmer(roster RosterProvider, fetcher ScheduleFetcher, pruner Pruner, maxAge, timeout time.Duration, logger Logger) *Warmer {
	return &Warmer{
		roster:  roster,
		fetcher: fetcher,
		pruner:  pruner,
		maxAge:  maxAge,
		timeout: timeout,
		logger:  logger,
		cron:    cron.New(),
	}
}

// Start регистрирует прогон по cron выражению и запускает планировщик
func (w *Warmer) Start(schedule string) error {
	if _, err := w.cron.AddFunc(schedule, w.run); err != nil {
		return fmt.Errorf("cachewarmer: invalid schedule %q: %w", schedule, err)
	}
	w.cron.Start()
	w.logger.Info("Cache warmer started with schedule %q", schedule)
	return nil
}

// Stop останавливает планировщик; возвращённый ctx закрывается после завершения текущего прогона
func (w *Warmer) Stop() context.Context {
	return w.cron.Stop()
}

func (w *Warmer) run() {
	ctx := context.Background()
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	stats, err := w.Warm(ctx)
	if err != nil {
		w.logger.Error("Cache warmer: run failed: %v", err)
		return
	}
	w.logger.Info("Cache warmer: masters=%d source=%s stale=%d pruned=%d", stats.Masters, stats.Source, stats.Stale, stats.Pruned)
}

// Warm выполняет один прогон обновления кэша
func (w *Warmer) Warm(ctx context.Context) (Stats, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	roster, err := w.roster.Roster(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("cachewarmer: roster: %w", err)
	}

	result, err := w.fetcher.Fetch(ctx, schedules.Query{Roster: roster})
	if err != nil {
		return Stats{}, fmt.Errorf("cachewarmer: fetch: %w", err)
	}

	stats := Stats{
		Masters: roster.Size(),
		Source:  result.Source,
		Stale:   len(result.StaleMasters),
	}
	if result.Degraded() {
		w.logger.Warn("Cache warmer: backend degraded (source=%s), missing=%v", result.Source, result.MissingMasters)
	}

	if w.pruner != nil && w.maxAge > 0 {
		pruned, err := w.pruner.DeleteOlderThan(ctx, w.maxAge)
		if err != nil {
			w.logger.Warn("Cache warmer: prune failed: %v", err)
		} else {
			stats.Pruned = pruned
		}
	}

	return stats, nil
}
