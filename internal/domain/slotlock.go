package domain

import (
	"fmt"
	"time"

	"github.com/mondihair/MH-BookingService/pkg/types"
)

// SlotLock is the serialization point for one bookable slot.
// Its key is derived deterministically from (staff, date, slot), so two
// concurrent reservations of the same slot contend on the same row: the
// transaction that finds the lock absent wins, all others are rejected.
// The lock exists while the owning booking is active and is deleted in the
// same transaction that cancels it.
type SlotLock struct {
	ID        string
	BookingID int64
	CreatedAt time.Time
}

// SlotLockID derives the deterministic lock key.
// "|" cannot appear in staff ids (validated slugs), ISO dates or HH:MM
// strings, so the key is unambiguous.
func SlotLockID(staffID string, date time.Time, slot types.TimeString) string {
	return fmt.Sprintf("%s|%s|%s", staffID, date.Format(DateFormat), slot.String())
}
