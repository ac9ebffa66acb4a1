package roster

import (
	"context"
	"time"

	"github.com/m04kA/KoiConsult-AvailabilityService/internal/domain"
)

// MastersClient интерфейс получения ростера из бэкенда
type MastersClient interface {
	GetMasters(ctx context.Context) ([]domain.Master, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}
