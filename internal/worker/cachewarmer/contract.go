package cachewarmer

import (
	"context"
	"time"

	"github.com/m04kA/KoiConsult-AvailabilityService/internal/domain"
	"github.com/m04kA/KoiConsult-AvailabilityService/internal/service/schedules"
)

// RosterProvider интерфейс получения ростера
type RosterProvider interface {
	Roster(ctx context.Context) (domain.Roster, error)
}

// ScheduleFetcher загрузка расписаний; успешная загрузка сама перезаписывает кэш
type ScheduleFetcher interface {
	Fetch(ctx context.Context, q schedules.Query) (*schedules.Result, error)
}

// Pruner кэш, умеющий удалять устаревшие записи (postgres)
type Pruner interface {
	DeleteOlderThan(ctx context.Context, maxAge time.Duration) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
