package schedules

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/KoiConsult-AvailabilityService/internal/domain"
	"github.com/m04kA/KoiConsult-AvailabilityService/internal/integrations/scheduleservice"
)

// Strategy один способ получить расписание из бэкенда
type Strategy interface {
	Name() string
	Fetch(ctx context.Context, q Query) (Batch, error)
}

// MasterEndpointStrategy расписание выбранного мастера через его собственный endpoint
type MasterEndpointStrategy struct {
	client ScheduleClient
}

func NewMasterEndpointStrategy(client ScheduleClient) *MasterEndpointStrategy {
	return &MasterEndpointStrategy{client: client}
}

func (s *MasterEndpointStrategy) Name() string {
	return "master_endpoint"
}

func (s *MasterEndpointStrategy) Fetch(ctx context.Context, q Query) (Batch, error) {
	if q.AnyMaster() {
		return nil, ErrNotApplicable
	}

	records, err := s.client.GetMasterSchedule(ctx, *q.MasterID)
	if err != nil {
		return nil, err
	}
	return Batch{*q.MasterID: records}, nil
}

// GenericEndpointStrategy все расписания одним запросом, разложенные по мастерам
type GenericEndpointStrategy struct {
	client ScheduleClient
}

func NewGenericEndpointStrategy(client ScheduleClient) *GenericEndpointStrategy {
	return &GenericEndpointStrategy{client: client}
}

func (s *GenericEndpointStrategy) Name() string {
	return "generic_endpoint"
}

func (s *GenericEndpointStrategy) Fetch(ctx context.Context, q Query) (Batch, error) {
	records, err := s.client.GetSchedules(ctx)
	if err != nil {
		return nil, err
	}

	var shared []domain.BookingRecord
	byMaster := make(map[string][]domain.BookingRecord)
	for _, r := range records {
		if r.MasterID == "" {
			shared = append(shared, r)
			continue
		}
		byMaster[r.MasterID] = append(byMaster[r.MasterID], r)
	}

	// Ответ покрывает всех запрошенных мастеров, даже если записей у них нет
	batch := make(Batch)
	for _, key := range q.keys() {
		batch[key] = nil
	}
	if q.AnyMaster() {
		for id := range byMaster {
			batch[id] = nil
		}
	}
	if len(batch) == 0 && len(shared) > 0 {
		batch[domain.AllMastersID] = nil
	}

	// Общие блокировки сохраняются в записи каждого мастера
	for key := range batch {
		entry := make([]domain.BookingRecord, 0, len(byMaster[key])+len(shared))
		entry = append(entry, byMaster[key]...)
		entry = append(entry, shared...)
		batch[key] = entry
	}

	return batch, nil
}

// PerMasterLoopStrategy расписание каждого мастера ростера отдельным запросом
type PerMasterLoopStrategy struct {
	client      ScheduleClient
	concurrency int
}

func NewPerMasterLoopStrategy(client ScheduleClient, concurrency int) *PerMasterLoopStrategy {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &PerMasterLoopStrategy{client: client, concurrency: concurrency}
}

func (s *PerMasterLoopStrategy) Name() string {
	return "per_master_loop"
}

// Fetch возвращает мастеров, которых удалось загрузить. Ошибка только если не удалось никого.
func (s *PerMasterLoopStrategy) Fetch(ctx context.Context, q Query) (Batch, error) {
	if !q.AnyMaster() || q.Roster.Size() == 0 {
		return nil, ErrNotApplicable
	}

	var (
		mu           sync.Mutex
		batch        = make(Batch)
		lastErr      error
		anyTransient bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, id := range q.Roster.IDs() {
		id := id
		g.Go(func() error {
			records, err := s.client.GetMasterSchedule(gctx, id)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				lastErr = fmt.Errorf("master=%s: %w", id, err)
				if errors.Is(err, scheduleservice.ErrTransient) {
					anyTransient = true
				}
				// Ошибка одного мастера не отменяет остальных
				return nil
			}
			batch[id] = records
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if len(batch) == 0 {
		if anyTransient {
			return nil, fmt.Errorf("%w: %w: %v", scheduleservice.ErrTransient, ErrAllMastersFailed, lastErr)
		}
		return nil, fmt.Errorf("%w: %v", ErrAllMastersFailed, lastErr)
	}

	return batch, nil
}
