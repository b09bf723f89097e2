package create_booking

import (
	"context"
	"time"

	"github.com/mondihair/MH-BookingService/internal/domain"
	"github.com/mondihair/MH-BookingService/pkg/types"
)

// BookingRepository is the booking store surface used by this use case
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetActiveBySlot(ctx context.Context, staffID string, date time.Time, slot types.TimeString) (*domain.Booking, error)
	MarkConfirmationSent(ctx context.Context, id int64, providerMessageID string) error
}

// SlotLockRepository is the slot-lock store surface used by this use case
type SlotLockRepository interface {
	Get(ctx context.Context, id string) (*domain.SlotLock, error)
	Create(ctx context.Context, lock *domain.SlotLock) error
}

// ClosureRepository is the closure store surface used by this use case
type ClosureRepository interface {
	GetByStaffAndDate(ctx context.Context, staffID string, date time.Time) ([]*domain.Closure, error)
}

// PhoneNormalizer converts raw customer input to E.164
type PhoneNormalizer interface {
	Normalize(raw string) (string, error)
}

// Notifier sends the confirmation message after commit
type Notifier interface {
	SendConfirmation(ctx context.Context, booking *domain.Booking) (string, error)
}

// TransactionManager runs the reservation inside a serializable transaction
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
