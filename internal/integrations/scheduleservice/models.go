package scheduleservice

import (
	"strings"
	"time"

	"github.com/m04kA/KoiConsult-AvailabilityService/internal/domain"
	"github.com/m04kA/KoiConsult-AvailabilityService/pkg/types"
)

// ScheduleRecord запись расписания мастера в формате бэкенда
type ScheduleRecord struct {
	MasterID  *string `json:"masterId"`
	Date      string  `json:"date"`                // YYYY-MM-DD или дата-время
	StartTime *string `json:"startTime,omitempty"` // HH:MM или HH:MM:SS
	EndTime   *string `json:"endTime,omitempty"`
	Type      string  `json:"type"`
}

// Master мастер из ростера бэкенда
type Master struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsActive *bool  `json:"isActive,omitempty"` // отсутствие поля = активен
}

// envelope обёртка {"data": [...]}, которую часть endpoint'ов бэкенда использует вместо голого массива
type envelope[T any] struct {
	Data []T `json:"data"`
}

// Форматы без зоны трактуются как локальная дата салона
var localDateLayouts = []string{
	domain.DateFormat,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Форматы с зоной: момент времени переводится в зону салона до взятия даты
var instantLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
}

// parseDate разбирает дату или дату-время.
// 2025-03-19T17:00:00Z при loc=Asia/Ho_Chi_Minh даёт 2025-03-20.
func parseDate(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range localDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return domain.DateOnly(t), true
		}
	}
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return domain.DateOnly(t.In(loc)), true
		}
	}
	return time.Time{}, false
}

func parseKind(s string) domain.BookingKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "online":
		return domain.KindOnline
	case "offline":
		return domain.KindOffline
	case "workshop":
		return domain.KindWorkshop
	case "blockedforallmasters", "blocked_for_all_masters", "blocked":
		return domain.KindBlockedForAllMasters
	default:
		return domain.BookingKind(s)
	}
}

func parseOptionalTime(s *string) (*types.TimeString, bool) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, true
	}
	ts, err := types.NewTimeStringFromString(*s)
	if err != nil {
		return nil, false
	}
	return &ts, true
}

// ToDomain конвертирует запись бэкенда в доменную.
// ok=false, если время записи нечитаемо: такую запись нельзя трактовать ни как интервал, ни как весь день.
// Запись без даты конвертируется с нулевой датой и отбрасывается нормализатором.
// loc - зона, в которой определяется календарная дата для значений с явным смещением.
func (r ScheduleRecord) ToDomain(loc *time.Location) (domain.BookingRecord, bool) {
	start, ok := parseOptionalTime(r.StartTime)
	if !ok {
		return domain.BookingRecord{}, false
	}
	end, ok := parseOptionalTime(r.EndTime)
	if !ok {
		return domain.BookingRecord{}, false
	}

	record := domain.BookingRecord{
		StartTime: start,
		EndTime:   end,
		Kind:      parseKind(r.Type),
	}
	if r.MasterID != nil {
		record.MasterID = strings.TrimSpace(*r.MasterID)
	}
	if date, ok := parseDate(r.Date, loc); ok {
		record.Date = date
	}

	return record, true
}

// ToDomainRecords конвертирует список записей, возвращая количество отброшенных
func ToDomainRecords(records []ScheduleRecord, loc *time.Location) ([]domain.BookingRecord, int) {
	result := make([]domain.BookingRecord, 0, len(records))
	dropped := 0
	for _, r := range records {
		record, ok := r.ToDomain(loc)
		if !ok {
			dropped++
			continue
		}
		result = append(result, record)
	}
	return result, dropped
}

// ToDomain конвертирует мастера бэкенда в доменного
func (m Master) ToDomain() domain.Master {
	return domain.Master{
		ID:     m.ID,
		Name:   m.Name,
		Active: m.IsActive == nil || *m.IsActive,
	}
}
