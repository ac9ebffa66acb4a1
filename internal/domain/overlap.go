package domain

import "github.com/m04kA/KoiConsult-AvailabilityService/pkg/types"

// IsTimeOverlap reports whether half-open intervals [startA, endA) and [startB, endB) overlap.
// Intervals that only touch at a boundary do not overlap.
func IsTimeOverlap(startA, endA, startB, endB types.TimeString) bool {
	return startA.IsBefore(endB) && startB.IsBefore(endA)
}

// OverlappingSlots returns every fixed slot overlapping [start, end)
func OverlappingSlots(start, end types.TimeString) []FixedSlot {
	var slots []FixedSlot
	for _, s := range FixedSlots {
		if IsTimeOverlap(start, end, s.Start, s.End) {
			slots = append(slots, s)
		}
	}
	return slots
}
