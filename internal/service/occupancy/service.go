package occupancy

import "github.com/m04kA/KoiConsult-AvailabilityService/internal/domain"

// Service обёртка над Ingest с логированием пропущенных записей
type Service struct {
	logger Logger
}

// NewService создает новый экземпляр сервиса нормализации расписаний
func NewService(logger Logger) *Service {
	return &Service{logger: logger}
}

// Ingest нормализует записи, логируя каждую пропущенную запись
func (s *Service) Ingest(records []domain.BookingRecord, roster domain.Roster, masterID *string) *domain.Occupancy {
	occ, skipped := ingest(records, roster, masterID == nil)

	for _, err := range skipped {
		s.logger.Warn("Ingest: skipping malformed record: %v", err)
	}

	s.logger.Info("Ingest: %d records -> %d days, skipped=%d, roster=%d",
		len(records), len(occ.Days), occ.Skipped, roster.Size())

	return occ
}
