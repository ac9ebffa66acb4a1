package domain

import "time"

// Reason why a slot is (un)available
type Reason string

const (
	ReasonNone                   Reason = "none"
	ReasonBookedBySameMaster     Reason = "booked-by-same-master"
	ReasonBlockedByOtherActivity Reason = "blocked-by-other-activity"
	ReasonBlockedForAllMasters   Reason = "blocked-for-all-masters"
	ReasonPastCutoff             Reason = "past-cutoff"
)

// SlotAvailability availability of one fixed slot
type SlotAvailability struct {
	Slot      FixedSlot
	Available bool
	Reason    Reason
}

// AvailabilityResult availability of a date for the selected master (nil = any master)
type AvailabilityResult struct {
	Date         time.Time
	MasterID     *string
	Slots        []SlotAvailability
	DayAvailable bool
}

// DayAvailable reduces slot results: a day is available if any slot is
func DayAvailable(slots []SlotAvailability) bool {
	for _, s := range slots {
		if s.Available {
			return true
		}
	}
	return false
}
