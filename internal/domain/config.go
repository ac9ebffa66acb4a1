package domain

import "time"

// AvailabilityPolicy temporal rules applied on top of occupancy
type AvailabilityPolicy struct {
	// MinLeadDays dates earlier than today+MinLeadDays are past the cutoff.
	// 0 allows booking for today, 1 (default) excludes today entirely.
	MinLeadDays int
	// Location defines the calendar day boundaries for "today"
	Location *time.Location
}

// DefaultAvailabilityPolicy returns the policy used when nothing is configured
func DefaultAvailabilityPolicy() AvailabilityPolicy {
	return AvailabilityPolicy{
		MinLeadDays: DefaultMinLeadDays,
		Location:    time.UTC,
	}
}

// FirstBookableDate returns the first calendar date (midnight UTC) that is not past the cutoff
func (p AvailabilityPolicy) FirstBookableDate(now time.Time) time.Time {
	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}
	today := DateOnly(now.In(loc))
	return today.AddDate(0, 0, p.MinLeadDays)
}

// IsPastCutoff returns true if date can no longer be booked
func (p AvailabilityPolicy) IsPastCutoff(date, now time.Time) bool {
	return DateOnly(date).Before(p.FirstBookableDate(now))
}
