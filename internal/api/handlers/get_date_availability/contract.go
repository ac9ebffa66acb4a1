package get_date_availability

import (
	"context"

	getDateAvailability "github.com/m04kA/KoiConsult-AvailabilityService/internal/usecase/get_date_availability"
)

// CalendarResolver отмечает доступные дни диапазона для календаря.
// Ошибки те же, что у слотов, плюс ErrRangeTooLarge.
type CalendarResolver interface {
	Execute(ctx context.Context, req *getDateAvailability.Request) (*getDateAvailability.Response, error)
}

// Logger уровни, которые пишет обработчик
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
