package get_date_availability

import "time"

// Request модель запроса доступности дней календаря
type Request struct {
	SessionID string
	From      time.Time // Первая дата диапазона
	To        time.Time // Последняя дата диапазона включительно; нулевая - только From
	MasterID  *string   // nil - любой мастер
}

// Response модель ответа с доступностью каждой даты диапазона
type Response struct {
	From         time.Time
	To           time.Time
	MasterID     *string
	Days         []Day
	Source       string
	Degraded     bool
	StaleMasters []string
}

// Day доступность одной даты
type Day struct {
	Date      time.Time
	Available bool
}
