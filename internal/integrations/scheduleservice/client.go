package scheduleservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/KoiConsult-AvailabilityService/internal/domain"
)

// Client клиент для работы с бэкендом расписаний мастеров
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	location   *time.Location
	log        Logger
}

// NewClient создает новый экземпляр клиента бэкенда расписаний.
// requestsPerSecond <= 0 отключает ограничение частоты исходящих запросов.
func NewClient(baseURL string, timeout time.Duration, requestsPerSecond float64, burst int, log Logger) *Client {
	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter:  rate.NewLimiter(limit, burst),
		location: time.UTC,
		log:      log,
	}
}

// SetLocation задаёт зону салона: даты-время с явным смещением переводятся в неё до взятия календарной даты
func (c *Client) SetLocation(loc *time.Location) {
	if loc != nil {
		c.location = loc
	}
}

// GetMasterSchedule получает все записи расписания конкретного мастера
func (c *Client) GetMasterSchedule(ctx context.Context, masterID string) ([]domain.BookingRecord, error) {
	path := fmt.Sprintf("/api/masters/%s/schedule", url.PathEscape(masterID))

	var records []ScheduleRecord
	if err := getJSON(ctx, c, path, ErrMasterNotFound, &records); err != nil {
		return nil, err
	}

	result, dropped := ToDomainRecords(records, c.location)
	if dropped > 0 {
		c.log.Warn("GetMasterSchedule: master=%s dropped %d records with unreadable times", masterID, dropped)
	}
	return result, nil
}

// GetSchedules получает записи расписания всех мастеров одним запросом
func (c *Client) GetSchedules(ctx context.Context) ([]domain.BookingRecord, error) {
	var records []ScheduleRecord
	if err := getJSON(ctx, c, "/api/schedules", ErrEndpointUnavailable, &records); err != nil {
		return nil, err
	}

	result, dropped := ToDomainRecords(records, c.location)
	if dropped > 0 {
		c.log.Warn("GetSchedules: dropped %d records with unreadable times", dropped)
	}
	return result, nil
}

// GetMasters получает ростер мастеров
func (c *Client) GetMasters(ctx context.Context) ([]domain.Master, error) {
	var masters []Master
	if err := getJSON(ctx, c, "/api/masters", ErrEndpointUnavailable, &masters); err != nil {
		return nil, err
	}

	result := make([]domain.Master, 0, len(masters))
	for _, m := range masters {
		if m.ID == "" {
			continue
		}
		result = append(result, m.ToDomain())
	}
	return result, nil
}

// getJSON выполняет GET и декодирует массив (голый или в обёртке {"data": [...]}) в out.
// notFoundErr возвращается на 404.
func getJSON[T any](ctx context.Context, c *Client, path string, notFoundErr error, out *[]T) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: rate limiter: %v", ErrTransient, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Сетевые ошибки и timeout считаем временными
		return fmt.Errorf("%w: failed to execute request %s: %v", ErrTransient, path, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch {
	case resp.StatusCode == http.StatusOK:
		// Продолжаем обработку
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s returned %d", notFoundErr, path, resp.StatusCode)
	case resp.StatusCode == http.StatusMethodNotAllowed,
		resp.StatusCode == http.StatusNotImplemented:
		return fmt.Errorf("%w: %s returned %d", ErrEndpointUnavailable, path, resp.StatusCode)
	case resp.StatusCode == http.StatusTooManyRequests,
		resp.StatusCode == http.StatusRequestTimeout,
		resp.StatusCode >= http.StatusInternalServerError:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %s returned %d: %s", ErrTransient, path, resp.StatusCode, string(body))
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %v", ErrTransient, err)
	}

	// Парсим ответ
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var wrapped envelope[T]
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
		}
		*out = wrapped.Data
		return nil
	}

	if err := json.Unmarshal(trimmed, out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return nil
}
