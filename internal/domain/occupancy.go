package domain

import (
	"sort"
	"time"

	"github.com/m04kA/KoiConsult-AvailabilityService/pkg/types"
)

// Roster set of masters known to the system, used by the "all masters busy" rules
type Roster struct {
	ids map[string]struct{}
}

// NewRoster builds a roster from master ids, ignoring empty and duplicate ids
func NewRoster(ids ...string) Roster {
	r := Roster{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		if id == "" || id == AllMastersID {
			continue
		}
		r.ids[id] = struct{}{}
	}
	return r
}

// RosterFromMasters builds a roster from active masters
func RosterFromMasters(masters []Master) Roster {
	ids := make([]string, 0, len(masters))
	for _, m := range masters {
		if m.Active {
			ids = append(ids, m.ID)
		}
	}
	return NewRoster(ids...)
}

// Contains returns true if the master belongs to the roster
func (r Roster) Contains(id string) bool {
	_, ok := r.ids[id]
	return ok
}

// Size number of masters in the roster
func (r Roster) Size() int {
	return len(r.ids)
}

// IDs returns the master ids in stable order
func (r Roster) IDs() []string {
	ids := make([]string, 0, len(r.ids))
	for id := range r.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SlotOccupancy masters busy in one slot with the kind of activity that keeps them busy
type SlotOccupancy map[string]BookingKind

// DayOccupancy derived busy state of one calendar date
type DayOccupancy struct {
	Date           time.Time
	Slots          map[types.TimeString]SlotOccupancy
	BlockedMasters map[string]struct{} // masters with an all-day block
	BlockedForAll  bool
}

// NewDayOccupancy creates an empty occupancy for date
func NewDayOccupancy(date time.Time) *DayOccupancy {
	return &DayOccupancy{
		Date:           date,
		Slots:          make(map[types.TimeString]SlotOccupancy, len(FixedSlots)),
		BlockedMasters: make(map[string]struct{}),
	}
}

// MarkSlot records master as busy in slot.
// An online consultation takes precedence over other kinds for the same master.
func (d *DayOccupancy) MarkSlot(slot FixedSlot, masterID string, kind BookingKind) {
	occ, ok := d.Slots[slot.Start]
	if !ok {
		occ = make(SlotOccupancy)
		d.Slots[slot.Start] = occ
	}
	if existing, ok := occ[masterID]; ok && existing == KindOnline {
		return
	}
	occ[masterID] = kind
}

// BlockDay marks the whole day busy for masterID
func (d *DayOccupancy) BlockDay(masterID string) {
	d.BlockedMasters[masterID] = struct{}{}
}

// IsDayBlockedFor returns true if masterID has an all-day block
func (d *DayOccupancy) IsDayBlockedFor(masterID string) bool {
	_, ok := d.BlockedMasters[masterID]
	return ok
}

// SlotKind returns the activity keeping masterID busy in slot
func (d *DayOccupancy) SlotKind(slot FixedSlot, masterID string) (BookingKind, bool) {
	occ, ok := d.Slots[slot.Start]
	if !ok {
		return "", false
	}
	kind, ok := occ[masterID]
	return kind, ok
}

// IsBlockedForAll returns true if the sentinel ALL occupies slot
func (d *DayOccupancy) IsBlockedForAll(slot FixedSlot) bool {
	_, ok := d.SlotKind(slot, AllMastersID)
	return ok
}

// BusyRosterMasters counts distinct roster masters busy in slot,
// including masters whose whole day is blocked. Masters outside the roster are ignored.
func (d *DayOccupancy) BusyRosterMasters(slot FixedSlot, roster Roster) int {
	busy := make(map[string]struct{})
	for id := range d.Slots[slot.Start] {
		if roster.Contains(id) {
			busy[id] = struct{}{}
		}
	}
	for id := range d.BlockedMasters {
		if roster.Contains(id) {
			busy[id] = struct{}{}
		}
	}
	return len(busy)
}

// IsSlotFullForRoster returns true if nobody in a non-empty roster can take slot
func (d *DayOccupancy) IsSlotFullForRoster(slot FixedSlot, roster Roster) bool {
	if d.IsBlockedForAll(slot) {
		return true
	}
	if roster.Size() == 0 {
		return false
	}
	return d.BusyRosterMasters(slot, roster) >= roster.Size()
}

// Occupancy per-day busy state keyed by ISO date, plus the roster it was computed against
type Occupancy struct {
	Days    map[string]*DayOccupancy
	Roster  Roster
	Skipped int // malformed records ignored during ingestion
}

// Day returns the occupancy for date, or nil if nothing is known about it
func (o *Occupancy) Day(date time.Time) *DayOccupancy {
	if o == nil {
		return nil
	}
	return o.Days[DateKey(date)]
}
