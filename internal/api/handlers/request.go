package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/m04kA/KoiConsult-AvailabilityService/internal/domain"
)

// SessionIDHeader заголовок сессии клиента для вытеснения устаревших запросов
const SessionIDHeader = "X-Session-ID"

// SessionID возвращает id сессии клиента или пустую строку
func SessionID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(SessionIDHeader))
}

// OptionalMasterID читает masterId из query; пустое значение - любой мастер
func OptionalMasterID(r *http.Request) *string {
	masterID := strings.TrimSpace(r.URL.Query().Get("masterId"))
	if masterID == "" {
		return nil
	}
	return &masterID
}

// ParseDate разбирает дату формата YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	return time.Parse(domain.DateFormat, strings.TrimSpace(s))
}
