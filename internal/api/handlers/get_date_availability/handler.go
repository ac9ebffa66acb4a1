package get_date_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/KoiConsult-AvailabilityService/internal/api/handlers"
	getDateAvailability "github.com/m04kA/KoiConsult-AvailabilityService/internal/usecase/get_date_availability"
)

const (
	msgMissingFrom    = "параметр from обязателен"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput   = "некорректные параметры запроса"
	msgRangeTooLarge  = "слишком большой диапазон дат"
	msgSuperseded     = "запрос вытеснен более новым запросом"
	statusClientClose = 499
)

type Handler struct {
	useCase CalendarResolver
	logger  Logger
}

func NewHandler(useCase CalendarResolver, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/date-availability
// Query params: from (required), to (optional, включительно), masterId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	fromStr := query.Get("from")
	if fromStr == "" {
		h.logger.Warn("GET /date-availability - Missing from")
		handlers.RespondBadRequest(w, msgMissingFrom)
		return
	}

	useCaseReq, err := ToUseCaseRequest(handlers.SessionID(r), fromStr, query.Get("to"), handlers.OptionalMasterID(r))
	if err != nil {
		h.logger.Warn("GET /date-availability - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getDateAvailability.ErrRangeTooLarge):
			h.logger.Warn("GET /date-availability - Range too large: %v", err)
			handlers.RespondBadRequest(w, msgRangeTooLarge)

		case errors.Is(err, getDateAvailability.ErrInvalidInput):
			h.logger.Warn("GET /date-availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, getDateAvailability.ErrSuperseded):
			h.logger.Info("GET /date-availability - Superseded: from=%s", fromStr)
			handlers.RespondConflict(w, msgSuperseded)

		case errors.Is(err, getDateAvailability.ErrCanceled):
			w.WriteHeader(statusClientClose)

		default:
			h.logger.Error("GET /date-availability - Failed: from=%s, error=%v", fromStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /date-availability - Resolved %d days: from=%s, to=%s, source=%s",
		len(response.Days), response.From, response.To, response.Source)
	handlers.RespondJSON(w, http.StatusOK, response)
}
