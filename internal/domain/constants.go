package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MaxCustomerNameLength = 100
	MaxNotesLength        = 500
)

// ActiveStatuses are the statuses that hold a slot.
// Used for filtering when computing availability and for the
// double-booking invariant: at most one active booking per
// (staff, date, slot).
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
