package availability

import (
	"sync"
	"time"

	"github.com/m04kA/KoiConsult-AvailabilityService/internal/domain"
)

// DayCache последняя вычисленная доступность дня по ключу дата+мастер.
// Значения только записываются резолвером после свёртки слотов, отдельно не выставляются.
type DayCache struct {
	mu      sync.RWMutex
	entries map[string]bool
}

// NewDayCache создаёт пустой кэш доступности дней
func NewDayCache() *DayCache {
	return &DayCache{entries: make(map[string]bool)}
}

func dayCacheKey(date time.Time, masterID *string) string {
	key := domain.DateKey(date) + "|"
	if masterID != nil {
		key += *masterID
	}
	return key
}

// Lookup возвращает закэшированную доступность дня
func (c *DayCache) Lookup(date time.Time, masterID *string) (available bool, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	available, ok = c.entries[dayCacheKey(date, masterID)]
	return available, ok
}

func (c *DayCache) store(date time.Time, masterID *string, available bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[dayCacheKey(date, masterID)] = available
}

// Len количество закэшированных дней
func (c *DayCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
