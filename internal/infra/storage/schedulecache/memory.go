package schedulecache

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/KoiConsult-AvailabilityService/internal/domain"
)

// MemoryCache кэш расписаний в памяти процесса
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]Entry
	now     func() time.Time
}

// NewMemoryCache создает пустой кэш в памяти
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]Entry),
		now:     time.Now,
	}
}

// Get возвращает копию записи по ключу
func (c *MemoryCache) Get(_ context.Context, key string) (*Entry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	return &Entry{Records: cloneRecords(entry.Records), UpdatedAt: entry.UpdatedAt}, nil
}

// Put перезаписывает запись по ключу
func (c *MemoryCache) Put(_ context.Context, key string, records []domain.BookingRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = Entry{Records: cloneRecords(records), UpdatedAt: c.now()}
	return nil
}
