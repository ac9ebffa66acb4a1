package get_date_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrRangeTooLarge возвращается, когда диапазон дат больше допустимого
	ErrRangeTooLarge = errors.New("date range is too large")

	// ErrSuperseded запрос вытеснен более новым запросом той же сессии, результат отброшен
	ErrSuperseded = errors.New("request superseded by a newer one")

	// ErrCanceled запрос отменён клиентом
	ErrCanceled = errors.New("request canceled")
)
