package schedules

import (
	"context"

	"github.com/m04kA/KoiConsult-AvailabilityService/internal/domain"
	"github.com/m04kA/KoiConsult-AvailabilityService/internal/infra/storage/schedulecache"
)

// ScheduleClient интерфейс клиента бэкенда расписаний
type ScheduleClient interface {
	GetMasterSchedule(ctx context.Context, masterID string) ([]domain.BookingRecord, error)
	GetSchedules(ctx context.Context) ([]domain.BookingRecord, error)
}

// Cache интерфейс кэша расписаний по id мастера
type Cache interface {
	Get(ctx context.Context, key string) (*schedulecache.Entry, error)
	Put(ctx context.Context, key string, records []domain.BookingRecord) error
}

// MetricsRecorder интерфейс для метрик загрузки
type MetricsRecorder interface {
	RecordFetchAttempt(strategy, outcome string)
	RecordFetchResult(source string)
	RecordCacheOperation(operation, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
