package bookings

import (
	"context"
	"time"

	"github.com/mondihair/MH-BookingService/internal/domain"
)

// BookingRepository is the booking store surface used by this service
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByStaffWithFilter(ctx context.Context, filter domain.StaffBookingsFilter) ([]*domain.Booking, error)
	Cancel(ctx context.Context, id int64, cancelledAt time.Time) error
}

// SlotLockRepository releases the slot lock when a booking is cancelled
type SlotLockRepository interface {
	Delete(ctx context.Context, id string) error
}

// Notifier sends the cancellation message after commit
type Notifier interface {
	SendCancellation(ctx context.Context, booking *domain.Booking) (string, error)
}

// TransactionManager couples the status change and the lock release
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider supplies the current time (swappable in tests)
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging surface used by this service
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
