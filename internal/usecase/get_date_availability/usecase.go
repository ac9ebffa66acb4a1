package get_date_availability

import (
	"context"
	"fmt"

	"github.com/m04kA/KoiConsult-AvailabilityService/internal/domain"
	"github.com/m04kA/KoiConsult-AvailabilityService/internal/service/inflight"
	"github.com/m04kA/KoiConsult-AvailabilityService/internal/service/schedules"
	"github.com/m04kA/KoiConsult-AvailabilityService/pkg/ptr"
)

const usecaseName = "get_date_availability"

// UseCase use case для доступности дней календаря.
// Расписание загружается один раз на весь диапазон.
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

// Execute выполняет use case
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	from, to, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("GetDateAvailability: validation failed: %v", err)
		return nil, err
	}

	dateRange := from.Format(domain.DateFormat) + ".." + to.Format(domain.DateFormat)
	uc.logger.Info("GetDateAvailability: range=%s, master=%s", dateRange, ptr.Value(req.MasterID))

	// Новый диапазон или мастер в той же сессии вытесняет этот запрос
	key := inflight.Key(req.SessionID, usecaseName)
	ctx, token, release := uc.tracker.Begin(ctx, key)
	defer release()

	var roster domain.Roster
	if req.MasterID == nil {
		r, err := uc.roster.Roster(ctx)
		if err != nil {
			return nil, uc.abandoned(key, token, err)
		}
		roster = r
	}

	result, err := uc.fetcher.Fetch(ctx, schedules.Query{MasterID: req.MasterID, Roster: roster})
	if err != nil {
		return nil, uc.abandoned(key, token, err)
	}
	if !uc.tracker.IsCurrent(key, token) {
		return nil, uc.abandoned(key, token, context.Canceled)
	}

	occ := uc.ingestor.Ingest(result.Records, roster, req.MasterID)

	days := make([]Day, 0, int(to.Sub(from).Hours()/24)+1)
	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		// День всегда выводится из слотов, кэш дней обновляется резолвером
		availability := uc.resolver.Resolve(occ, date, req.MasterID)
		days = append(days, Day{Date: availability.Date, Available: availability.DayAvailable})
	}

	if result.Degraded() {
		uc.logger.Warn("GetDateAvailability: range=%s served from %s, stale=%v", dateRange, result.Source, result.StaleMasters)
	}

	return &Response{
		From:         from,
		To:           to,
		MasterID:     req.MasterID,
		Days:         days,
		Source:       string(result.Source),
		Degraded:     result.Degraded(),
		StaleMasters: result.StaleMasters,
	}, nil
}

func (uc *UseCase) abandoned(key string, token uint64, cause error) error {
	if !uc.tracker.IsCurrent(key, token) {
		if uc.metrics != nil {
			uc.metrics.RecordSuperseded(usecaseName)
		}
		uc.logger.Info("GetDateAvailability: request key=%s superseded, result discarded", key)
		return ErrSuperseded
	}
	uc.logger.Info("GetDateAvailability: request canceled: %v", cause)
	return fmt.Errorf("%w: %v", ErrCanceled, cause)
}
