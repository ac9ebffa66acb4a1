package availability

import (
	"time"

	"github.com/m04kA/KoiConsult-AvailabilityService/internal/domain"
)

// Resolver вычисляет доступность слотов и дней по нормализованной занятости
type Resolver struct {
	policy       domain.AvailabilityPolicy
	timeProvider TimeProvider
	dayCache     *DayCache
	recorder     SlotRecorder
}

// NewResolver создает новый экземпляр резолвера.
// recorder может быть nil, если метрики выключены.
func NewResolver(policy domain.AvailabilityPolicy, recorder SlotRecorder) *Resolver {
	return &Resolver{
		policy:       policy,
		timeProvider: &RealTimeProvider{},
		dayCache:     NewDayCache(),
		recorder:     recorder,
	}
}

// SetTimeProvider подменяет источник текущего времени
func (r *Resolver) SetTimeProvider(tp TimeProvider) {
	r.timeProvider = tp
}

// DayCache возвращает кэш доступности дней для UI-слоя
func (r *Resolver) DayCache() *DayCache {
	return r.dayCache
}

// Policy возвращает применяемую политику
func (r *Resolver) Policy() domain.AvailabilityPolicy {
	return r.policy
}

// IsSlotAvailable вычисляет доступность одного слота даты
func (r *Resolver) IsSlotAvailable(
	occ *domain.Occupancy,
	date time.Time,
	slot domain.FixedSlot,
	masterID *string,
) domain.SlotAvailability {
	var roster domain.Roster
	if occ != nil {
		roster = occ.Roster
	}
	result := resolveSlot(occ.Day(date), roster, slot, masterID, r.isPastCutoff(date))
	r.record(result)
	return result
}

// AvailableSlots вычисляет все четыре слота даты в хронологическом порядке
func (r *Resolver) AvailableSlots(occ *domain.Occupancy, date time.Time, masterID *string) []domain.SlotAvailability {
	slots := make([]domain.SlotAvailability, len(domain.FixedSlots))
	for i, slot := range domain.FixedSlots {
		slots[i] = r.IsSlotAvailable(occ, date, slot, masterID)
	}
	return slots
}

// IsDayAvailable true, если доступен хотя бы один слот.
// Результат всегда выводится из слотов и сохраняется в кэш дней.
func (r *Resolver) IsDayAvailable(occ *domain.Occupancy, date time.Time, masterID *string) bool {
	return r.Resolve(occ, date, masterID).DayAvailable
}

// Resolve вычисляет полный результат доступности даты
func (r *Resolver) Resolve(occ *domain.Occupancy, date time.Time, masterID *string) domain.AvailabilityResult {
	slots := r.AvailableSlots(occ, date, masterID)
	dayAvailable := domain.DayAvailable(slots)
	r.dayCache.store(date, masterID, dayAvailable)

	return domain.AvailabilityResult{
		Date:         domain.DateOnly(date),
		MasterID:     masterID,
		Slots:        slots,
		DayAvailable: dayAvailable,
	}
}

func (r *Resolver) isPastCutoff(date time.Time) bool {
	return r.policy.IsPastCutoff(date, r.timeProvider.Now())
}

func (r *Resolver) record(result domain.SlotAvailability) {
	if r.recorder == nil {
		return
	}
	r.recorder.RecordSlotResolved(string(result.Reason))
}
