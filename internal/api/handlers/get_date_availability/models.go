package get_date_availability

import (
	"time"

	"github.com/m04kA/KoiConsult-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/KoiConsult-AvailabilityService/internal/domain"
	getDateAvailability "github.com/m04kA/KoiConsult-AvailabilityService/internal/usecase/get_date_availability"
)

// DateAvailabilityResponse HTTP response model
type DateAvailabilityResponse struct {
	From         string    `json:"from"`
	To           string    `json:"to"`
	MasterID     *string   `json:"masterId"`
	Days         []DateDay `json:"days"`
	Source       string    `json:"source"`
	Degraded     bool      `json:"degraded"`
	StaleMasters []string  `json:"staleMasters,omitempty"`
}

// DateDay доступность даты для ячейки календаря
type DateDay struct {
	Date      string `json:"date"`
	Available bool   `json:"available"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getDateAvailability.Response) *DateAvailabilityResponse {
	days := make([]DateDay, len(resp.Days))
	for i, d := range resp.Days {
		days[i] = DateDay{
			Date:      d.Date.Format(domain.DateFormat),
			Available: d.Available,
		}
	}

	return &DateAvailabilityResponse{
		From:         resp.From.Format(domain.DateFormat),
		To:           resp.To.Format(domain.DateFormat),
		MasterID:     resp.MasterID,
		Days:         days,
		Source:       resp.Source,
		Degraded:     resp.Degraded,
		StaleMasters: resp.StaleMasters,
	}
}

// ToUseCaseRequest создает запрос use case; пустой to означает одну дату
func ToUseCaseRequest(sessionID, fromStr, toStr string, masterID *string) (*getDateAvailability.Request, error) {
	from, err := handlers.ParseDate(fromStr)
	if err != nil {
		return nil, err
	}

	var to time.Time
	if toStr != "" {
		to, err = handlers.ParseDate(toStr)
		if err != nil {
			return nil, err
		}
	}

	return &getDateAvailability.Request{
		SessionID: sessionID,
		From:      from,
		To:        to,
		MasterID:  masterID,
	}, nil
}
