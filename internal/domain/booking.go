package domain

import (
	"time"

	"github.com/m04kA/KoiConsult-AvailabilityService/pkg/types"
)

// BookingKind type of an existing appointment or event on a master's calendar
type BookingKind string

const (
	KindOnline               BookingKind = "Online"
	KindOffline              BookingKind = "Offline"
	KindWorkshop             BookingKind = "Workshop"
	KindBlockedForAllMasters BookingKind = "BlockedForAllMasters"
)

// IsValid returns true for the known record kinds
func (k BookingKind) IsValid() bool {
	switch k {
	case KindOnline, KindOffline, KindWorkshop, KindBlockedForAllMasters:
		return true
	default:
		return false
	}
}

// BookingRecord one existing appointment/event as reported by the backend.
// Records are treated as immutable values once built.
type BookingRecord struct {
	MasterID  string    // empty for BlockedForAllMasters markers
	Date      time.Time // calendar date at midnight UTC, zero if the backend omitted it
	StartTime *types.TimeString
	EndTime   *types.TimeString
	Kind      BookingKind
}

// HasDate returns true if the record carries a calendar date
func (r *BookingRecord) HasDate() bool {
	return !r.Date.IsZero()
}

// DateKey returns the ISO date (YYYY-MM-DD) the record belongs to
func (r *BookingRecord) DateKey() string {
	return DateKey(r.Date)
}

// IsAllDay returns true when neither start nor end time is set
func (r *BookingRecord) IsAllDay() bool {
	return r.StartTime == nil && r.EndTime == nil
}

// HasInterval returns true when both start and end time are set and form a non-empty interval
func (r *BookingRecord) HasInterval() bool {
	return r.StartTime != nil && r.EndTime != nil && r.StartTime.IsBefore(*r.EndTime)
}

// Master consultant offering bookable consultation time
type Master struct {
	ID     string
	Name   string
	Active bool
}

// DateKey formats a calendar date as YYYY-MM-DD
func DateKey(date time.Time) string {
	return date.Format(DateFormat)
}

// DateOnly drops the time-of-day part: the calendar date of t in its own location, as midnight UTC
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
