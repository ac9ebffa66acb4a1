package inflight

import (
	"context"
	"sync"
)

// Key ключ поколения запросов: сессия клиента и операция.
// Дата и мастер в ключ не входят: новый выбор любой даты или мастера делает прежний запрос устаревшим.
// Пустой session означает, что запрос не отслеживается.
func Key(session, operation string) string {
	if session == "" {
		return ""
	}
	return session + "|" + operation
}

type generation struct {
	token  uint64
	cancel context.CancelFunc
}

// Tracker отменяет устаревшие запросы: новый Begin по тому же ключу отменяет предыдущий
type Tracker struct {
	mu      sync.Mutex
	counter uint64
	current map[string]generation
}

func NewTracker() *Tracker {
	return &Tracker{current: make(map[string]generation)}
}

// Begin регистрирует новое поколение для key. Возвращает производный ctx, токен поколения
// и release, который нужно вызвать по завершении запроса.
func (t *Tracker) Begin(ctx context.Context, key string) (context.Context, uint64, func()) {
	if key == "" {
		return ctx, 0, func() {}
	}

	derived, cancel := context.WithCancel(ctx)

	t.mu.Lock()
	t.counter++
	token := t.counter
	if prev, ok := t.current[key]; ok {
		prev.cancel()
	}
	t.current[key] = generation{token: token, cancel: cancel}
	t.mu.Unlock()

	release := func() {
		t.mu.Lock()
		if cur, ok := t.current[key]; ok && cur.token == token {
			delete(t.current, key)
		}
		t.mu.Unlock()
		cancel()
	}

	return derived, token, release
}

// IsCurrent true, если token всё ещё последнее поколение key.
// Неотслеживаемые запросы (пустой key) всегда актуальны.
func (t *Tracker) IsCurrent(key string, token uint64) bool {
	if key == "" {
		return true
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	cur, ok := t.current[key]
	return ok && cur.token == token
}

// Len количество отслеживаемых запросов в полёте
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.current)
}
