package get_date_availability

import (
	"fmt"
	"time"

	"github.com/m04kA/KoiConsult-AvailabilityService/internal/domain"
)

// validateRequest валидирует запрос и возвращает нормализованные границы диапазона
func validateRequest(req *Request) (from, to time.Time, err error) {
	if req == nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: request is required", ErrInvalidInput)
	}
	if req.From.IsZero() {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: from is required", ErrInvalidInput)
	}

	from = domain.DateOnly(req.From)
	to = from
	if !req.To.IsZero() {
		to = domain.DateOnly(req.To)
	}

	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: to must not be before from", ErrInvalidInput)
	}

	days := int(to.Sub(from).Hours()/24) + 1
	if days > domain.MaxCalendarRangeDays {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %d days requested, max %d", ErrRangeTooLarge, days, domain.MaxCalendarRangeDays)
	}

	if req.MasterID != nil {
		if *req.MasterID == "" {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: masterId must not be empty", ErrInvalidInput)
		}
		if *req.MasterID == domain.AllMastersID {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: masterId %q is reserved", ErrInvalidInput, domain.AllMastersID)
		}
	}

	return from, to, nil
}
