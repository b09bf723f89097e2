package closures

import (
	"context"
	"time"

	"github.com/mondihair/MH-BookingService/internal/domain"
)

// ClosureRepository is the closure store surface used by this service
type ClosureRepository interface {
	Create(ctx context.Context, closure *domain.Closure) (*domain.Closure, error)
	GetByStaffAndDate(ctx context.Context, staffID string, date time.Time) ([]*domain.Closure, error)
	Delete(ctx context.Context, id int64) error
}

// Logger is the logging surface used by this service
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
