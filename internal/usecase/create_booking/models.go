package create_booking

import (
	"time"

	"github.com/mondihair/MH-BookingService/pkg/types"
)

// Request input for creating a booking
type Request struct {
	StaffID       string
	CustomerName  string
	CustomerPhone string
	CustomerEmail *string
	ServiceName   string
	Date          time.Time
	TimeSlot      types.TimeString
	Notes         *string
}

// Response the created booking
type Response struct {
	ID              int64
	StaffID         string
	StaffName       string
	CustomerName    string
	CustomerPhone   string
	ServiceName     string
	ServicePrice    float64
	DurationMinutes int
	Date            time.Time
	TimeSlot        types.TimeString
	Status          string
	Notes           *string
	CreatedAt       time.Time
}
