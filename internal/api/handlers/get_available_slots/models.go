package get_available_slots

import (
	"github.com/m04kA/KoiConsult-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/KoiConsult-AvailabilityService/internal/domain"
	getAvailableSlots "github.com/m04kA/KoiConsult-AvailabilityService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date         string          `json:"date"`
	MasterID     *string         `json:"masterId"`
	DayAvailable bool            `json:"dayAvailable"`
	Slots        []AvailableSlot `json:"slots"`
	Source       string          `json:"source"`
	Degraded     bool            `json:"degraded"`
	StaleMasters []string        `json:"staleMasters,omitempty"`
}

// AvailableSlot модель фиксированного слота
type AvailableSlot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Available bool   `json:"available"`
	Reason    string `json:"reason"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime: slot.Slot.Start.String(),
			EndTime:   slot.Slot.End.String(),
			Available: slot.Available,
			Reason:    string(slot.Reason),
		}
	}

	return &AvailableSlotsResponse{
		Date:         resp.Date.Format(domain.DateFormat),
		MasterID:     resp.MasterID,
		DayAvailable: resp.DayAvailable,
		Slots:        slots,
		Source:       resp.Source,
		Degraded:     resp.Degraded,
		StaleMasters: resp.StaleMasters,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(sessionID, dateStr string, masterID *string) (*getAvailableSlots.Request, error) {
	date, err := handlers.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		SessionID: sessionID,
		Date:      date,
		MasterID:  masterID,
	}, nil
}
