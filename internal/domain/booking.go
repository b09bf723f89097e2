package domain

import (
	"time"

	"github.com/mondihair/MH-BookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents a customer appointment with a staff member.
// Bookings are never physically deleted; cancellation is a status change
// that preserves history.
type Booking struct {
	ID           int64
	StaffID      string
	CustomerName string
	// CustomerPhone keeps the number exactly as the customer entered it;
	// CustomerPhoneE164 is the normalized form used for dispatch.
	CustomerPhone     string
	CustomerPhoneE164 string
	CustomerEmail     *string

	// Denormalized service data: the catalog may change later,
	// the booking keeps what was sold.
	ServiceName     string
	ServicePrice    float64
	DurationMinutes int

	BookingDate time.Time
	TimeSlot    types.TimeString
	Status      BookingStatus
	Notes       *string

	ConfirmationSMSSent   bool
	ConfirmationSMSSentAt *time.Time
	ConfirmationSMSID     *string

	ReminderSent   bool
	ReminderSentAt *time.Time

	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the booking holds its slot.
// Both pending and confirmed bookings hold the slot; only cancellation
// releases it.
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeCancelled reports whether the booking can still be cancelled.
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// StaffBookingsFilter filters bookings of one staff member.
type StaffBookingsFilter struct {
	StaffID         string
	StartDate       *time.Time // period start, nil = unbounded
	EndDate         *time.Time // period end, nil = unbounded
	Status          *BookingStatus
	IncludeInactive bool // include cancelled bookings
}
