package availability

import "time"

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// SlotRecorder принимает результат вычисления каждого слота (метрики)
type SlotRecorder interface {
	RecordSlotResolved(reason string)
}
