package domain

import "github.com/m04kA/KoiConsult-AvailabilityService/pkg/types"

// FixedSlot one of the four bookable daily windows
type FixedSlot struct {
	Start types.TimeString
	End   types.TimeString
}

// DayHalf AM or PM pair of slots consumed by a workshop
type DayHalf int

const (
	HalfAM DayHalf = iota
	HalfPM
)

var (
	SlotMorning        = FixedSlot{Start: types.MustTimeString("07:00"), End: types.MustTimeString("09:15")}
	SlotLateMorning    = FixedSlot{Start: types.MustTimeString("09:30"), End: types.MustTimeString("11:45")}
	SlotEarlyAfternoon = FixedSlot{Start: types.MustTimeString("12:30"), End: types.MustTimeString("14:45")}
	SlotAfternoon      = FixedSlot{Start: types.MustTimeString("15:00"), End: types.MustTimeString("17:15")}
)

// FixedSlots the closed set of daily slots in chronological order
var FixedSlots = []FixedSlot{SlotMorning, SlotLateMorning, SlotEarlyAfternoon, SlotAfternoon}

// SlotsOfHalf returns the two adjacent slots making up a half of the day
func SlotsOfHalf(half DayHalf) []FixedSlot {
	if half == HalfAM {
		return []FixedSlot{SlotMorning, SlotLateMorning}
	}
	return []FixedSlot{SlotEarlyAfternoon, SlotAfternoon}
}

// HalfOf returns the half of the day an event starting at start belongs to.
// Anything starting before the first PM slot is an AM event.
func HalfOf(start types.TimeString) DayHalf {
	if start.IsBefore(SlotEarlyAfternoon.Start) {
		return HalfAM
	}
	return HalfPM
}

// SlotByStart finds the fixed slot starting at start
func SlotByStart(start types.TimeString) (FixedSlot, bool) {
	for _, s := range FixedSlots {
		if s.Start.Equal(start) {
			return s, true
		}
	}
	return FixedSlot{}, false
}

// String formats the slot as HH:MM-HH:MM
func (s FixedSlot) String() string {
	return s.Start.String() + "-" + s.End.String()
}
