package get_available_slots

import (
	"github.com/mondihair/MH-BookingService/internal/catalog"
	"github.com/mondihair/MH-BookingService/pkg/types"
)

// generateSlotGrid builds the candidate slot starts for a working day.
// The grid is anchored at the start of the earliest range and stepped by
// the staff member's granularity; a candidate belongs to the grid only
// when it falls inside one of the day's ranges. Range ends are exclusive.
func generateSlotGrid(day catalog.DaySchedule, stepMinutes int) []types.TimeString {
	if day.Closed || len(day.Ranges) == 0 || stepMinutes <= 0 {
		return nil
	}

	first := day.Ranges[0].Start
	last := day.Ranges[0].End
	for _, r := range day.Ranges[1:] {
		if r.Start.IsBefore(first) {
			first = r.Start
		}
		if r.End.IsAfter(last) {
			last = r.End
		}
	}

	var slots []types.TimeString
	for cur := first; cur.IsBefore(last); {
		for _, r := range day.Ranges {
			if r.Contains(cur) {
				slots = append(slots, cur)
				break
			}
		}

		next, err := cur.AddMinutes(stepMinutes)
		if err != nil {
			break
		}
		cur = next
	}

	return slots
}
