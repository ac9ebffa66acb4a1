package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/KoiConsult-AvailabilityService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/KoiConsult-AvailabilityService/internal/usecase/get_available_slots"
)

const (
	msgMissingDate  = "дата обязательна"
	msgInvalidDate  = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput = "некорректные параметры запроса"
	msgSuperseded   = "запрос вытеснен более новым запросом"
)

// statusClientClosedRequest клиент закрыл соединение до ответа
const statusClientClosedRequest = 499

type Handler struct {
	useCase SlotsResolver
	logger  Logger
}

func NewHandler(useCase SlotsResolver, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/available-slots
// Query params: date (required, YYYY-MM-DD), masterId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(handlers.SessionID(r), dateStr, handlers.OptionalMasterID(r))
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, getAvailableSlots.ErrSuperseded):
			h.logger.Info("GET /available-slots - Superseded: date=%s", dateStr)
			handlers.RespondConflict(w, msgSuperseded)

		case errors.Is(err, getAvailableSlots.ErrCanceled):
			h.logger.Info("GET /available-slots - Client canceled: date=%s", dateStr)
			w.WriteHeader(statusClientClosedRequest)

		default:
			h.logger.Error("GET /available-slots - Failed to get slots: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /available-slots - Slots resolved: date=%s, day_available=%t, source=%s",
		response.Date, response.DayAvailable, response.Source)
	handlers.RespondJSON(w, http.StatusOK, response)
}
