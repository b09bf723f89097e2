package domain

import (
	"time"

	"github.com/mondihair/MH-BookingService/pkg/types"
)

// ClosureKind distinguishes full-day closures from time-range closures.
type ClosureKind string

const (
	ClosureFullDay   ClosureKind = "full_day"
	ClosureTimeRange ClosureKind = "time_range"
)

// Closure is an ad-hoc unavailability entry for one staff member on one
// date, created by staff outside regular working hours configuration.
// A full-day closure removes the whole date; a time-range closure removes
// the slots inside [StartTime, EndTime).
type Closure struct {
	ID          int64
	StaffID     string
	ClosureDate time.Time
	Kind        ClosureKind
	StartTime   *types.TimeString // set for time_range
	EndTime     *types.TimeString // set for time_range
	CreatedAt   time.Time
}

// IsFullDay reports whether the closure covers the whole date.
func (c *Closure) IsFullDay() bool {
	return c.Kind == ClosureFullDay
}

// Covers reports whether a slot starting at the given time falls inside a
// time-range closure. Inclusive start, exclusive end.
func (c *Closure) Covers(slot types.TimeString) bool {
	if c.Kind != ClosureTimeRange || c.StartTime == nil || c.EndTime == nil {
		return false
	}
	return !slot.IsBefore(*c.StartTime) && slot.IsBefore(*c.EndTime)
}
