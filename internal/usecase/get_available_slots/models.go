package get_available_slots

import (
	"time"

	"github.com/m04kA/KoiConsult-AvailabilityService/internal/domain"
)

// Request модель запроса на получение слотов даты
type Request struct {
	SessionID string    // Сессия клиента; пустая - запрос не отслеживается на вытеснение
	Date      time.Time // Дата (без времени)
	MasterID  *string   // nil - любой мастер
}

// Response модель ответа со всеми четырьмя слотами даты
type Response struct {
	Date         time.Time
	MasterID     *string
	Slots        []domain.SlotAvailability // Всегда 4 слота в хронологическом порядке
	DayAvailable bool
	Source       string   // remote | partial | cache | empty
	Degraded     bool     // Данные не свежие, UI показывает предупреждение
	StaleMasters []string // Мастера, чьё расписание взято из кэша
}
