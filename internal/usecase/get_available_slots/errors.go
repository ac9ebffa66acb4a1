package get_available_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrSuperseded запрос вытеснен более новым запросом той же сессии, результат отброшен
	ErrSuperseded = errors.New("request superseded by a newer one")

	// ErrCanceled запрос отменён клиентом
	ErrCanceled = errors.New("request canceled")
)
