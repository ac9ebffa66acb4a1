package roster

import "errors"

var (
	// ErrCanceled запрос ростера отменён вызывающей стороной
	ErrCanceled = errors.New("roster service: canceled")
)
