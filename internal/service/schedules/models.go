package schedules

import (
	"fmt"
	"time"

	"github.com/m04kA/KoiConsult-AvailabilityService/internal/domain"
)

// Query что загружать: расписание выбранного мастера или всего ростера
type Query struct {
	MasterID *string // nil = любой мастер
	Roster   domain.Roster
}

// AnyMaster true, если мастер не выбран
func (q Query) AnyMaster() bool {
	return q.MasterID == nil
}

// keys ключи кэша, которые должен покрыть результат
func (q Query) keys() []string {
	if q.MasterID != nil {
		return []string{*q.MasterID}
	}
	return q.Roster.IDs()
}

// Source откуда взяты данные результата
type Source string

const (
	SourceRemote  Source = "remote"  // всё получено из бэкенда
	SourcePartial Source = "partial" // часть мастеров взята из кэша или неизвестна
	SourceCache   Source = "cache"   // бэкенд недоступен, данные из кэша
	SourceEmpty   Source = "empty"   // данных нет, всё считается свободным
)

// Result записи расписания и сведения о деградации
type Result struct {
	Records        []domain.BookingRecord
	Source         Source
	Strategy       string
	StaleMasters   []string // ключи, взятые из кэша
	MissingMasters []string // ключи без данных вовсе
	CachedAt       map[string]time.Time
}

// Degraded true, если хотя бы часть данных не свежая
func (r *Result) Degraded() bool {
	return r.Source != SourceRemote
}

// Batch записи по ключам кэша; присутствие ключа означает, что мастер получен успешно
type Batch map[string][]domain.BookingRecord

// recordKey идентичность записи для слияния дублей (общие блокировки приходят в каждом мастере)
func recordKey(r domain.BookingRecord) string {
	start, end := "", ""
	if r.StartTime != nil {
		start = r.StartTime.String()
	}
	if r.EndTime != nil {
		end = r.EndTime.String()
	}
	date := ""
	if r.HasDate() {
		date = r.DateKey()
	}
	return fmt.Sprintf("%s|%s|%s|%s|%s", r.MasterID, date, start, end, r.Kind)
}

// mergeRecords объединяет записи, убирая дубли общих блокировок
func mergeRecords(dst []domain.BookingRecord, seen map[string]struct{}, records []domain.BookingRecord) []domain.BookingRecord {
	for _, r := range records {
		if r.MasterID == "" {
			key := recordKey(r)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
		}
		dst = append(dst, r)
	}
	return dst
}
