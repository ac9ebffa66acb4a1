package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/KoiConsult-AvailabilityService/internal/domain"
	"github.com/m04kA/KoiConsult-AvailabilityService/internal/service/schedules"
)

// ScheduleFetcher интерфейс загрузки расписаний с повторами и деградацией
type ScheduleFetcher interface {
	Fetch(ctx context.Context, q schedules.Query) (*schedules.Result, error)
}

// RosterProvider интерфейс получения ростера мастеров
type RosterProvider interface {
	Roster(ctx context.Context) (domain.Roster, error)
}

// Ingestor интерфейс нормализации записей в занятость
type Ingestor interface {
	Ingest(records []domain.BookingRecord, roster domain.Roster, masterID *string) *domain.Occupancy
}

// Resolver интерфейс вычисления доступности
type Resolver interface {
	Resolve(occ *domain.Occupancy, date time.Time, masterID *string) domain.AvailabilityResult
}

// RequestTracker интерфейс отслеживания устаревших запросов
type RequestTracker interface {
	Begin(ctx context.Context, key string) (context.Context, uint64, func())
	IsCurrent(key string, token uint64) bool
}

// SupersededRecorder интерфейс метрики отброшенных запросов
type SupersededRecorder interface {
	RecordSuperseded(usecase string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
