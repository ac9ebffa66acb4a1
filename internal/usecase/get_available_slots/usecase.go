package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/KoiConsult-AvailabilityService/internal/domain"
	"github.com/m04kA/KoiConsult-AvailabilityService/internal/service/inflight"
	"github.com/m04kA/KoiConsult-AvailabilityService/internal/service/schedules"
)

const usecaseName = "get_available_slots"

// UseCase use case для получения доступности слотов на дату
type UseCase struct {
	fetcher  ScheduleFetcher
	roster   RosterProvider
	ingestor Ingestor
	resolver Resolver
	tracker  RequestTracker
	metrics  SupersededRecorder
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	fetcher ScheduleFetcher,
	roster RosterProvider,
	ingestor Ingestor,
	resolver Resolver,
	tracker RequestTracker,
	metrics SupersededRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		fetcher:  fetcher,
		roster:   roster,
		ingestor: ingestor,
		resolver: resolver,
		tracker:  tracker,
		metrics:  metrics,
		logger:   logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOnly(req.Date)
	uc.logger.Info("GetAvailableSlots: date=%s, master=%s", date.Format(domain.DateFormat), masterLabel(req.MasterID))

	// 2. Регистрируем поколение запроса: новый запрос той же сессии (любая дата или мастер) отменит этот
	key := inflight.Key(req.SessionID, usecaseName)
	ctx, token, release := uc.tracker.Begin(ctx, key)
	defer release()

	// 3. Ростер нужен только для правил "заняты все мастера"
	var roster domain.Roster
	if req.MasterID == nil {
		r, err := uc.roster.Roster(ctx)
		if err != nil {
			return nil, uc.abandoned(key, token, err)
		}
		roster = r
	}

	// 4. Загружаем расписание (с повторами, кэшем и деградацией)
	result, err := uc.fetcher.Fetch(ctx, schedules.Query{MasterID: req.MasterID, Roster: roster})
	if err != nil {
		return nil, uc.abandoned(key, token, err)
	}

	// 5. Результат устаревшего запроса не применяется
	if !uc.tracker.IsCurrent(key, token) {
		return nil, uc.abandoned(key, token, context.Canceled)
	}

	// 6. Нормализуем и вычисляем доступность
	occ := uc.ingestor.Ingest(result.Records, roster, req.MasterID)
	availability := uc.resolver.Resolve(occ, date, req.MasterID)

	if result.Degraded() {
		uc.logger.Warn("GetAvailableSlots: date=%s served from %s, stale=%v",
			date.Format(domain.DateFormat), result.Source, result.StaleMasters)
	}

	return &Response{
		Date:         availability.Date,
		MasterID:     req.MasterID,
		Slots:        availability.Slots,
		DayAvailable: availability.DayAvailable,
		Source:       string(result.Source),
		Degraded:     result.Degraded(),
		StaleMasters: result.StaleMasters,
	}, nil
}

// abandoned различает вытеснение новым запросом и отмену клиентом
func (uc *UseCase) abandoned(key string, token uint64, cause error) error {
	if !uc.tracker.IsCurrent(key, token) {
		if uc.metrics != nil {
			uc.metrics.RecordSuperseded(usecaseName)
		}
		uc.logger.Info("GetAvailableSlots: request key=%s superseded, result discarded", key)
		return ErrSuperseded
	}
	uc.logger.Info("GetAvailableSlots: request canceled: %v", cause)
	return fmt.Errorf("%w: %v", ErrCanceled, cause)
}

func masterLabel(masterID *string) string {
	if masterID == nil {
		return "any"
	}
	return *masterID
}
