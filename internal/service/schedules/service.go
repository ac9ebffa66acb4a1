package schedules

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/KoiConsult-AvailabilityService/internal/domain"
	"github.com/m04kA/KoiConsult-AvailabilityService/internal/infra/storage/schedulecache"
	"github.com/m04kA/KoiConsult-AvailabilityService/internal/integrations/scheduleservice"
)

const (
	DefaultMaxAttempts    = 3
	DefaultBaseDelay      = 500 * time.Millisecond
	DefaultMaxDelay       = 3 * time.Second
	DefaultAttemptTimeout = 15 * time.Second
)

// Config параметры повторов
type Config struct {
	MaxAttempts    int
	BaseDelay      time.Duration
	MaxDelay       time.Duration
	AttemptTimeout time.Duration
}

// DefaultConfig значения по умолчанию
func DefaultConfig() Config {
	return Config{
		MaxAttempts:    DefaultMaxAttempts,
		BaseDelay:      DefaultBaseDelay,
		MaxDelay:       DefaultMaxDelay,
		AttemptTimeout: DefaultAttemptTimeout,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = d.MaxAttempts
	}
	if c.BaseDelay < 0 {
		c.BaseDelay = d.BaseDelay
	}
	if c.MaxDelay < c.BaseDelay {
		c.MaxDelay = c.BaseDelay
	}
	if c.AttemptTimeout <= 0 {
		c.AttemptTimeout = d.AttemptTimeout
	}
	return c
}

// backoff линейная задержка перед попыткой attempt+1
func (c Config) backoff(attempt int) time.Duration {
	delay := time.Duration(attempt) * c.BaseDelay
	if delay > c.MaxDelay {
		return c.MaxDelay
	}
	return delay
}

// Service получает расписания через цепочку стратегий, кэш и деградацию до пустого набора
type Service struct {
	strategies []Strategy
	cache      Cache
	metrics    MetricsRecorder
	logger     Logger
	cfg        Config
	sleep      func(ctx context.Context, d time.Duration) error
}

// NewService создает сервис; порядок strategies задаёт порядок попыток
func NewService(strategies []Strategy, cache Cache, metrics MetricsRecorder, logger Logger, cfg Config) *Service {
	return &Service{
		strategies: strategies,
		cache:      cache,
		metrics:    metrics,
		logger:     logger,
		cfg:        cfg.withDefaults(),
		sleep:      sleepContext,
	}
}

// NewDefaultChain стандартная цепочка: endpoint мастера, общий endpoint, обход по мастерам
func NewDefaultChain(client ScheduleClient, loopConcurrency int) []Strategy {
	return []Strategy{
		NewMasterEndpointStrategy(client),
		NewGenericEndpointStrategy(client),
		NewPerMasterLoopStrategy(client, loopConcurrency),
	}
}

// Fetch возвращает записи расписания. Ошибка только при отмене ctx, результат тогда отбрасывается.
func (s *Service) Fetch(ctx context.Context, q Query) (*Result, error) {
	for _, strategy := range s.strategies {
		batch, err := s.withRetry(ctx, strategy, q)
		if err == nil {
			s.store(ctx, batch)
			return s.assemble(ctx, q, strategy.Name(), batch), nil
		}

		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: Fetch - strategy=%s: %v", ErrCanceled, strategy.Name(), ctx.Err())
		}
		if errors.Is(err, ErrNotApplicable) {
			continue
		}
		s.logWarn("Fetch: strategy=%s failed: %v", strategy.Name(), err)
	}

	return s.degrade(ctx, q)
}

func (s *Service) withRetry(ctx context.Context, strategy Strategy, q Query) (Batch, error) {
	var lastErr error

	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		batch, err := s.attempt(ctx, strategy, q)
		if err == nil {
			s.recordAttempt(strategy.Name(), "success")
			return batch, nil
		}
		lastErr = err

		if errors.Is(err, ErrNotApplicable) {
			return nil, err
		}
		if ctx.Err() != nil {
			s.recordAttempt(strategy.Name(), "canceled")
			return nil, err
		}
		if !isTransient(err) {
			s.recordAttempt(strategy.Name(), "permanent_error")
			return nil, err
		}

		s.recordAttempt(strategy.Name(), "transient_error")
		if attempt == s.cfg.MaxAttempts {
			break
		}

		delay := s.cfg.backoff(attempt)
		s.logWarn("Fetch: strategy=%s attempt=%d failed, retry in %s: %v", strategy.Name(), attempt, delay, err)
		if err := s.sleep(ctx, delay); err != nil {
			return nil, err
		}
	}

	return nil, lastErr
}

func (s *Service) attempt(ctx context.Context, strategy Strategy, q Query) (Batch, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, s.cfg.AttemptTimeout)
	defer cancel()

	batch, err := strategy.Fetch(attemptCtx, q)
	if err != nil {
		// Таймаут попытки (но не родительского ctx) считается временной ошибкой
		if ctx.Err() == nil && errors.Is(attemptCtx.Err(), context.DeadlineExceeded) && !isTransient(err) {
			return nil, fmt.Errorf("%w: attempt timeout %s: %v", scheduleservice.ErrTransient, s.cfg.AttemptTimeout, err)
		}
		return nil, err
	}
	return batch, nil
}

func isTransient(err error) bool {
	return errors.Is(err, scheduleservice.ErrTransient) || errors.Is(err, context.DeadlineExceeded)
}

// store перезаписывает запись кэша каждого полученного мастера
func (s *Service) store(ctx context.Context, batch Batch) {
	if s.cache == nil {
		return
	}
	for key, records := range batch {
		if err := s.cache.Put(ctx, key, records); err != nil {
			s.recordCache("put", "error")
			s.logWarn("Fetch: cache put key=%s: %v", key, err)
			continue
		}
		s.recordCache("put", "ok")
	}
}

// lookup читает кэш; любая ошибка кэша равна промаху
func (s *Service) lookup(ctx context.Context, key string) (*schedulecache.Entry, bool) {
	if s.cache == nil {
		return nil, false
	}
	entry, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, schedulecache.ErrCacheMiss) {
			s.recordCache("get", "miss")
		} else {
			s.recordCache("get", "error")
			s.logWarn("Fetch: cache get key=%s: %v", key, err)
		}
		return nil, false
	}
	s.recordCache("get", "hit")
	return entry, true
}

// assemble собирает результат успешной стратегии; непокрытые мастера добираются из кэша
func (s *Service) assemble(ctx context.Context, q Query, strategyName string, batch Batch) *Result {
	result := &Result{
		Source:   SourceRemote,
		Strategy: strategyName,
		CachedAt: make(map[string]time.Time),
	}
	seen := make(map[string]struct{})

	for _, records := range batch {
		result.Records = mergeRecords(result.Records, seen, records)
	}

	for _, key := range q.keys() {
		if _, ok := batch[key]; ok {
			continue
		}
		result.Source = SourcePartial
		if entry, ok := s.lookup(ctx, key); ok {
			result.Records = mergeRecords(result.Records, seen, entry.Records)
			result.StaleMasters = append(result.StaleMasters, key)
			result.CachedAt[key] = entry.UpdatedAt
			continue
		}
		result.MissingMasters = append(result.MissingMasters, key)
	}

	s.recordResult(result.Source)
	return result
}

// degrade все стратегии исчерпаны: кэш по каждому мастеру, иначе пустой набор
func (s *Service) degrade(ctx context.Context, q Query) (*Result, error) {
	if ctx.Err() != nil {
		return nil, fmt.Errorf("%w: degrade: %v", ErrCanceled, ctx.Err())
	}

	result := &Result{
		Source:   SourceEmpty,
		CachedAt: make(map[string]time.Time),
	}
	seen := make(map[string]struct{})

	keys := q.keys()
	if len(keys) == 0 {
		keys = []string{domain.AllMastersID}
	}

	for _, key := range keys {
		entry, ok := s.lookup(ctx, key)
		if !ok {
			if key != domain.AllMastersID {
				result.MissingMasters = append(result.MissingMasters, key)
			}
			continue
		}
		result.Records = mergeRecords(result.Records, seen, entry.Records)
		result.StaleMasters = append(result.StaleMasters, key)
		result.CachedAt[key] = entry.UpdatedAt
		result.Source = SourceCache
	}

	if result.Source == SourceEmpty {
		s.logWarn("Fetch: backend unavailable and no cached schedule, treating all slots as free")
	} else {
		s.logWarn("Fetch: backend unavailable, serving cached schedule for %v", result.StaleMasters)
	}

	s.recordResult(result.Source)
	return result, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *Service) recordAttempt(strategy, outcome string) {
	if s.metrics != nil {
		s.metrics.RecordFetchAttempt(strategy, outcome)
	}
}

func (s *Service) recordResult(source Source) {
	if s.metrics != nil {
		s.metrics.RecordFetchResult(string(source))
	}
}

func (s *Service) recordCache(operation, result string) {
	if s.metrics != nil {
		s.metrics.RecordCacheOperation(operation, result)
	}
}

func (s *Service) logWarn(format string, v ...interface{}) {
	if s.logger != nil {
		s.logger.Warn(format, v...)
	}
}
