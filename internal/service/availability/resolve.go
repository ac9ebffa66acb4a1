package availability

import (
	"time"

	"github.com/m04kA/KoiConsult-AvailabilityService/internal/domain"
	"github.com/m04kA/KoiConsult-AvailabilityService/internal/service/occupancy"
	"github.com/m04kA/KoiConsult-AvailabilityService/pkg/types"
)

// IsTimeOverlap проверяет пересечение полуоткрытых интервалов [startA, endA) и [startB, endB).
// Касание границами пересечением не считается: 09:15 и 09:30 - соседние слоты.
func IsTimeOverlap(startA, endA, startB, endB types.TimeString) bool {
	return domain.IsTimeOverlap(startA, endA, startB, endB)
}

// Compute вычисляет доступность даты без какого-либо состояния:
// нормализует записи, применяет правила и сворачивает слоты в доступность дня
func Compute(
	records []domain.BookingRecord,
	roster domain.Roster,
	date time.Time,
	masterID *string,
	now time.Time,
	policy domain.AvailabilityPolicy,
) domain.AvailabilityResult {
	occ := occupancy.Ingest(records, roster, masterID == nil)
	slots := resolveSlots(occ, date, masterID, policy.IsPastCutoff(date, now))

	return domain.AvailabilityResult{
		Date:         domain.DateOnly(date),
		MasterID:     masterID,
		Slots:        slots,
		DayAvailable: domain.DayAvailable(slots),
	}
}

// resolveSlots вычисляет все четыре слота даты
func resolveSlots(occ *domain.Occupancy, date time.Time, masterID *string, pastCutoff bool) []domain.SlotAvailability {
	day := occ.Day(date)
	var roster domain.Roster
	if occ != nil {
		roster = occ.Roster
	}

	slots := make([]domain.SlotAvailability, len(domain.FixedSlots))
	for i, slot := range domain.FixedSlots {
		slots[i] = resolveSlot(day, roster, slot, masterID, pastCutoff)
	}
	return slots
}

// resolveSlot применяет правила блокировки к одному слоту.
// Отсутствие данных о дне означает, что слот свободен.
func resolveSlot(
	day *domain.DayOccupancy,
	roster domain.Roster,
	slot domain.FixedSlot,
	masterID *string,
	pastCutoff bool,
) domain.SlotAvailability {
	if pastCutoff {
		return unavailable(slot, domain.ReasonPastCutoff)
	}
	if day == nil {
		return available(slot)
	}

	// Блокировка всего дня проверяется до слотов
	if day.BlockedForAll {
		return unavailable(slot, domain.ReasonBlockedForAllMasters)
	}
	if masterID != nil && day.IsDayBlockedFor(*masterID) {
		return unavailable(slot, domain.ReasonBlockedForAllMasters)
	}

	if day.IsBlockedForAll(slot) {
		return unavailable(slot, domain.ReasonBlockedForAllMasters)
	}

	if masterID != nil {
		kind, busy := day.SlotKind(slot, *masterID)
		if !busy {
			return available(slot)
		}
		if kind == domain.KindOnline {
			return unavailable(slot, domain.ReasonBookedBySameMaster)
		}
		return unavailable(slot, domain.ReasonBlockedByOtherActivity)
	}

	if day.IsSlotFullForRoster(slot, roster) {
		return unavailable(slot, domain.ReasonBlockedForAllMasters)
	}

	return available(slot)
}

func available(slot domain.FixedSlot) domain.SlotAvailability {
	return domain.SlotAvailability{Slot: slot, Available: true, Reason: domain.ReasonNone}
}

func unavailable(slot domain.FixedSlot, reason domain.Reason) domain.SlotAvailability {
	return domain.SlotAvailability{Slot: slot, Available: false, Reason: reason}
}
