package schedulecache

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/m04kA/KoiConsult-AvailabilityService/internal/domain"
	"github.com/m04kA/KoiConsult-AvailabilityService/pkg/types"
)

// Entry последний успешный результат загрузки расписания по ключу (id мастера)
type Entry struct {
	Records   []domain.BookingRecord
	UpdatedAt time.Time
}

// cachedRecord формат хранения записи в кэше
type cachedRecord struct {
	MasterID  string            `json:"masterId,omitempty"`
	Date      string            `json:"date,omitempty"`
	StartTime *types.TimeString `json:"startTime,omitempty"`
	EndTime   *types.TimeString `json:"endTime,omitempty"`
	Kind      string            `json:"kind"`
}

type cachedEntry struct {
	Records   []cachedRecord `json:"records"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func encodeEntry(entry Entry) ([]byte, error) {
	payload := cachedEntry{
		Records:   make([]cachedRecord, len(entry.Records)),
		UpdatedAt: entry.UpdatedAt,
	}
	for i, r := range entry.Records {
		cr := cachedRecord{
			MasterID:  r.MasterID,
			StartTime: r.StartTime,
			EndTime:   r.EndTime,
			Kind:      string(r.Kind),
		}
		if r.HasDate() {
			cr.Date = r.DateKey()
		}
		payload.Records[i] = cr
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return data, nil
}

func decodeEntry(data []byte) (*Entry, error) {
	var payload cachedEntry
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	entry := &Entry{
		Records:   make([]domain.BookingRecord, len(payload.Records)),
		UpdatedAt: payload.UpdatedAt,
	}
	for i, cr := range payload.Records {
		r := domain.BookingRecord{
			MasterID:  cr.MasterID,
			StartTime: cr.StartTime,
			EndTime:   cr.EndTime,
			Kind:      domain.BookingKind(cr.Kind),
		}
		if cr.Date != "" {
			date, err := time.Parse(domain.DateFormat, cr.Date)
			if err != nil {
				return nil, fmt.Errorf("%w: record #%d: %v", ErrDecode, i, err)
			}
			r.Date = date
		}
		entry.Records[i] = r
	}
	return entry, nil
}

// cloneRecords копирует записи вместе с указателями на время
func cloneRecords(records []domain.BookingRecord) []domain.BookingRecord {
	out := make([]domain.BookingRecord, len(records))
	for i, r := range records {
		if r.StartTime != nil {
			start := *r.StartTime
			r.StartTime = &start
		}
		if r.EndTime != nil {
			end := *r.EndTime
			r.EndTime = &end
		}
		out[i] = r
	}
	return out
}
