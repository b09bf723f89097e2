package get_available_slots

import (
	"context"
	"time"

	"github.com/mondihair/MH-BookingService/internal/domain"
)

// BookingRepository is the booking store surface used by this use case
type BookingRepository interface {
	GetByStaffWithFilter(ctx context.Context, filter domain.StaffBookingsFilter) ([]*domain.Booking, error)
}

// ClosureRepository is the closure store surface used by this use case
type ClosureRepository interface {
	GetByStaffAndDate(ctx context.Context, staffID string, date time.Time) ([]*domain.Closure, error)
}

// TimeProvider supplies the current time (swappable in tests)
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging surface used by this use case
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production time provider
type RealTimeProvider struct{}

// Now returns the current time
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
