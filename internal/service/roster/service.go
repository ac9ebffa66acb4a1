package roster

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/KoiConsult-AvailabilityService/internal/domain"
	"github.com/m04kA/KoiConsult-AvailabilityService/internal/integrations/scheduleservice"
)

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time { return time.Now() }

// Config параметры получения ростера
type Config struct {
	MaxAttempts int
	BaseDelay   time.Duration
	// TTL сколько ростер считается свежим; 0 - запрашивать каждый раз
	TTL time.Duration
}

// Service ростер мастеров с повторами и последним известным значением
type Service struct {
	client MastersClient
	logger Logger
	cfg    Config
	clock  TimeProvider

	mu        sync.RWMutex
	last      *domain.Roster
	fetchedAt time.Time
}

func NewService(client MastersClient, logger Logger, cfg Config) *Service {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	return &Service{
		client: client,
		logger: logger,
		cfg:    cfg,
		clock:  realTimeProvider{},
	}
}

// SetTimeProvider подменяет часы (для тестов)
func (s *Service) SetTimeProvider(tp TimeProvider) {
	s.clock = tp
}

// Roster возвращает актуальный ростер. Если бэкенд недоступен - последний известный,
// если его нет - пустой ростер (правила "заняты все мастера" тогда не срабатывают).
func (s *Service) Roster(ctx context.Context) (domain.Roster, error) {
	if cached, ok := s.fresh(); ok {
		return cached, nil
	}

	masters, err := s.fetch(ctx)
	if err == nil {
		r := domain.RosterFromMasters(masters)
		s.mu.Lock()
		s.last = &r
		s.fetchedAt = s.clock.Now()
		s.mu.Unlock()
		return r, nil
	}

	if ctx.Err() != nil {
		return domain.Roster{}, fmt.Errorf("%w: Roster: %v", ErrCanceled, ctx.Err())
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last != nil {
		s.logger.Warn("Roster: backend unavailable, using last known roster (%d masters): %v", s.last.Size(), err)
		return *s.last, nil
	}

	s.logger.Warn("Roster: backend unavailable and no known roster: %v", err)
	return domain.NewRoster(), nil
}

func (s *Service) fresh() (domain.Roster, bool) {
	if s.cfg.TTL <= 0 {
		return domain.Roster{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil || s.clock.Now().Sub(s.fetchedAt) >= s.cfg.TTL {
		return domain.Roster{}, false
	}
	return *s.last, true
}

func (s *Service) fetch(ctx context.Context) ([]domain.Master, error) {
	var lastErr error
	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		masters, err := s.client.GetMasters(ctx)
		if err == nil {
			return masters, nil
		}
		lastErr = err
		if ctx.Err() != nil || !errors.Is(err, scheduleservice.ErrTransient) || attempt == s.cfg.MaxAttempts {
			break
		}

		timer := time.NewTimer(time.Duration(attempt) * s.cfg.BaseDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return nil, lastErr
}
