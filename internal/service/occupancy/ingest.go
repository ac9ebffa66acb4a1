package occupancy

import (
	"fmt"

	"github.com/m04kA/KoiConsult-AvailabilityService/internal/domain"
)

// Ingest нормализует записи расписания в занятость по дням.
// anyMaster включает агрегатное правило: если все мастера ростера заняты во всех слотах,
// день помечается заблокированным для всех мастеров.
// Некорректные записи пропускаются и учитываются в Occupancy.Skipped, входной срез не изменяется.
func Ingest(records []domain.BookingRecord, roster domain.Roster, anyMaster bool) *domain.Occupancy {
	occ, _ := ingest(records, roster, anyMaster)
	return occ
}

// ingest возвращает также ошибки по пропущенным записям (для логирования)
func ingest(records []domain.BookingRecord, roster domain.Roster, anyMaster bool) (*domain.Occupancy, []error) {
	occ := &domain.Occupancy{
		Days:   make(map[string]*domain.DayOccupancy),
		Roster: roster,
	}

	var skipped []error
	for i := range records {
		record := records[i]

		if !record.HasDate() {
			skipped = append(skipped, fmt.Errorf("%w: record #%d", ErrMissingDate, i))
			continue
		}

		key := record.DateKey()
		day, ok := occ.Days[key]
		if !ok {
			day = domain.NewDayOccupancy(record.Date)
		}

		if err := applyRecord(day, &record); err != nil {
			skipped = append(skipped, fmt.Errorf("%w: record #%d date=%s master=%q kind=%q",
				err, i, key, record.MasterID, record.Kind))
			continue
		}

		occ.Days[key] = day
	}

	if anyMaster {
		for _, day := range occ.Days {
			if isEveryoneBusyAllDay(day, roster) {
				day.BlockedForAll = true
			}
		}
	}

	occ.Skipped = len(skipped)
	return occ, skipped
}

// applyRecord применяет одну запись к занятости дня
func applyRecord(day *domain.DayOccupancy, r *domain.BookingRecord) error {
	switch r.Kind {
	case domain.KindOffline:
		if r.MasterID == "" {
			return ErrMissingMaster
		}
		// Офлайн-запись без времени занимает весь день мастера
		if r.IsAllDay() {
			day.BlockDay(r.MasterID)
			return nil
		}
		return markInterval(day, r, r.MasterID)

	case domain.KindOnline:
		if r.MasterID == "" {
			return ErrMissingMaster
		}
		return markInterval(day, r, r.MasterID)

	case domain.KindWorkshop:
		if r.MasterID == "" {
			return ErrMissingMaster
		}
		if r.StartTime == nil {
			return ErrInvalidTimes
		}
		// Воркшоп всегда занимает пару соседних слотов: утреннюю или дневную
		for _, slot := range domain.SlotsOfHalf(domain.HalfOf(*r.StartTime)) {
			day.MarkSlot(slot, r.MasterID, r.Kind)
		}
		return nil

	case domain.KindBlockedForAllMasters:
		if r.IsAllDay() {
			day.BlockedForAll = true
			return nil
		}
		if r.HasInterval() {
			return markInterval(day, r, domain.AllMastersID)
		}
		if r.StartTime != nil && r.EndTime == nil {
			slot, ok := domain.SlotByStart(*r.StartTime)
			if !ok {
				return ErrInvalidTimes
			}
			day.MarkSlot(slot, domain.AllMastersID, r.Kind)
			return nil
		}
		return ErrInvalidTimes

	default:
		return ErrUnknownKind
	}
}

// markInterval помечает все слоты, пересекающиеся с интервалом записи
func markInterval(day *domain.DayOccupancy, r *domain.BookingRecord, masterID string) error {
	if !r.HasInterval() {
		return ErrInvalidTimes
	}
	for _, slot := range domain.OverlappingSlots(*r.StartTime, *r.EndTime) {
		day.MarkSlot(slot, masterID, r.Kind)
	}
	return nil
}

// isEveryoneBusyAllDay проверяет, что ни в одном слоте дня нет свободного мастера
func isEveryoneBusyAllDay(day *domain.DayOccupancy, roster domain.Roster) bool {
	for _, slot := range domain.FixedSlots {
		if !day.IsSlotFullForRoster(slot, roster) {
			return false
		}
	}
	return true
}
