package get_available_slots

import (
	"fmt"

	"github.com/m04kA/KoiConsult-AvailabilityService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.MasterID != nil {
		if *req.MasterID == "" {
			return fmt.Errorf("%w: masterId must not be empty", ErrInvalidInput)
		}
		if *req.MasterID == domain.AllMastersID {
			return fmt.Errorf("%w: masterId %q is reserved", ErrInvalidInput, domain.AllMastersID)
		}
	}

	return nil
}
