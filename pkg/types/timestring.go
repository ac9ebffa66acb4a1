package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const minutesPerDay = 24 * 60

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("types: invalid time string")

	// ErrTimeOverflow возвращается, когда результат выходит за пределы суток
	ErrTimeOverflow = errors.New("types: time out of day range")
)

// TimeString время суток с точностью до минуты (HH:MM)
// Секунды при разборе отбрасываются, сравнение идёт по минутам от полуночи
type TimeString struct {
	minutes int
}

// NewTimeString создаёт TimeString из time.Time (берутся только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString{minutes: t.Hour()*60 + t.Minute()}
}

// NewTimeStringFromMinutes создаёт TimeString из количества минут от полуночи
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes > minutesPerDay {
		return TimeString{}, fmt.Errorf("%w: %d minutes", ErrTimeOverflow, minutes)
	}
	return TimeString{minutes: minutes}, nil
}

// MustTimeString паникует при ошибке разбора, используется только для констант
func MustTimeString(s string) TimeString {
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return ts
}

// NewTimeStringFromString разбирает строку формата HH:MM или HH:MM:SS
func NewTimeStringFromString(s string) (TimeString, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return TimeString{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 24 {
		return TimeString{}, fmt.Errorf("%w: bad hours in %q", ErrInvalidTimeString, s)
	}

	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 || len(parts[1]) != 2 {
		return TimeString{}, fmt.Errorf("%w: bad minutes in %q", ErrInvalidTimeString, s)
	}

	if len(parts) == 3 {
		seconds, err := strconv.Atoi(parts[2])
		if err != nil || seconds < 0 || seconds > 59 {
			return TimeString{}, fmt.Errorf("%w: bad seconds in %q", ErrInvalidTimeString, s)
		}
	}

	total := hours*60 + minutes
	if total > minutesPerDay {
		return TimeString{}, fmt.Errorf("%w: %q", ErrTimeOverflow, s)
	}

	return TimeString{minutes: total}, nil
}

// Minutes возвращает количество минут от полуночи
func (t TimeString) Minutes() int {
	return t.minutes
}

// AddMinutes возвращает новое время, сдвинутое на n минут
func (t TimeString) AddMinutes(n int) (TimeString, error) {
	return NewTimeStringFromMinutes(t.minutes + n)
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.minutes < other.minutes
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.minutes > other.minutes
}

// Equal возвращает true, если время совпадает
func (t TimeString) Equal(other TimeString) bool {
	return t.minutes == other.minutes
}

// String форматирует время как HH:MM
func (t TimeString) String() string {
	return fmt.Sprintf("%02d:%02d", t.minutes/60, t.minutes%60)
}

// MarshalJSON сериализует время строкой HH:MM
func (t TimeString) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON разбирает время из строки HH:MM или HH:MM:SS
func (t *TimeString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeString, err)
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
