package catalog

import (
	"time"

	"github.com/mondihair/MH-BookingService/pkg/types"
)

// TimeRange is a half-open working-hours range [Start, End).
type TimeRange struct {
	Start types.TimeString
	End   types.TimeString
}

// Contains reports whether a slot starting at the given time falls inside
// the range. Inclusive start, exclusive end: a slot starting exactly at End
// is outside.
func (r TimeRange) Contains(slot types.TimeString) bool {
	return !slot.IsBefore(r.Start) && slot.IsBefore(r.End)
}

// DaySchedule is one weekday of a staff member's schedule.
// A day without ranges is closed; a day may have several ranges
// (morning + evening shifts around a break).
type DaySchedule struct {
	Closed bool
	Ranges []TimeRange
}

// Week holds the recurring weekly schedule.
type Week struct {
	Monday    DaySchedule
	Tuesday   DaySchedule
	Wednesday DaySchedule
	Thursday  DaySchedule
	Friday    DaySchedule
	Saturday  DaySchedule
	Sunday    DaySchedule
}

// StaffMember is immutable reference data: one bookable staff member with
// their weekly hours, slot granularity and offered services.
type StaffMember struct {
	ID          string
	Name        string
	SlotMinutes int
	Services    []string
	Week        Week
}

// ScheduleFor returns the staff member's schedule for a weekday.
func (s *StaffMember) ScheduleFor(weekday time.Weekday) DaySchedule {
	switch weekday {
	case time.Monday:
		return s.Week.Monday
	case time.Tuesday:
		return s.Week.Tuesday
	case time.Wednesday:
		return s.Week.Wednesday
	case time.Thursday:
		return s.Week.Thursday
	case time.Friday:
		return s.Week.Friday
	case time.Saturday:
		return s.Week.Saturday
	case time.Sunday:
		return s.Week.Sunday
	default:
		return DaySchedule{Closed: true}
	}
}

// OffersService reports whether the staff member offers the named service.
func (s *StaffMember) OffersService(name string) bool {
	for _, svc := range s.Services {
		if svc == name {
			return true
		}
	}
	return false
}

// Service is immutable reference data describing one offered service.
type Service struct {
	Name            string
	Price           float64
	DurationMinutes int
	Description     string
}

// Catalog is the reference-data snapshot loaded at startup and injected
// into the usecases. There is no runtime mutation path.
type Catalog struct {
	staff        map[string]*StaffMember
	staffOrder   []string
	services     map[string]*Service
	serviceOrder []string
}

// New builds a catalog from already-validated reference data. Load is the
// production entry point; New exists for wiring fixed data in tests.
func New(services []*Service, staff []*StaffMember) *Catalog {
	c := &Catalog{
		staff:    make(map[string]*StaffMember, len(staff)),
		services: make(map[string]*Service, len(services)),
	}
	for _, s := range services {
		if _, dup := c.services[s.Name]; dup {
			continue
		}
		c.services[s.Name] = s
		c.serviceOrder = append(c.serviceOrder, s.Name)
	}
	for _, s := range staff {
		if _, dup := c.staff[s.ID]; dup {
			continue
		}
		c.staff[s.ID] = s
		c.staffOrder = append(c.staffOrder, s.ID)
	}
	return c
}

// StaffByID looks up a staff member.
func (c *Catalog) StaffByID(id string) (*StaffMember, bool) {
	s, ok := c.staff[id]
	return s, ok
}

// Staff returns all staff members in catalog order.
func (c *Catalog) Staff() []*StaffMember {
	result := make([]*StaffMember, 0, len(c.staffOrder))
	for _, id := range c.staffOrder {
		result = append(result, c.staff[id])
	}
	return result
}

// ServiceByName looks up a service.
func (c *Catalog) ServiceByName(name string) (*Service, bool) {
	s, ok := c.services[name]
	return s, ok
}

// Services returns all services in catalog order.
func (c *Catalog) Services() []*Service {
	result := make([]*Service, 0, len(c.serviceOrder))
	for _, name := range c.serviceOrder {
		result = append(result, c.services[name])
	}
	return result
}
