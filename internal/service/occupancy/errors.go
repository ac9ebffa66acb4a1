package occupancy

import "errors"

var (
	// ErrMissingDate запись без даты
	ErrMissingDate = errors.New("occupancy: record has no date")

	// ErrMissingMaster запись мастера без идентификатора мастера
	ErrMissingMaster = errors.New("occupancy: record has no master id")

	// ErrInvalidTimes время записи отсутствует или не образует интервал
	ErrInvalidTimes = errors.New("occupancy: record times are missing or invalid")

	// ErrUnknownKind неизвестный тип записи
	ErrUnknownKind = errors.New("occupancy: unknown record kind")
)
