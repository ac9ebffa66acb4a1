package get_available_slots

import (
	"context"

	getAvailableSlots "github.com/m04kA/KoiConsult-AvailabilityService/internal/usecase/get_available_slots"
)

// SlotsResolver вычисляет четыре слота выбранной даты.
// Ошибки: ErrInvalidInput, ErrSuperseded (ту же сессию обогнал новый запрос),
// ErrCanceled (клиент ушёл), прочие - внутренние.
type SlotsResolver interface {
	Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error)
}

// Logger уровни, которые пишет обработчик
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
