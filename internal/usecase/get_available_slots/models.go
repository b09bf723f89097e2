package get_available_slots

import (
	"time"

	"github.com/mondihair/MH-BookingService/pkg/types"
)

// Request input for the available-slots query
type Request struct {
	StaffID string
	Date    time.Time
}

// Response free slot starts for a staff member on a date
type Response struct {
	StaffID     string
	StaffName   string
	Date        time.Time
	SlotMinutes int
	Slots       []types.TimeString
}
