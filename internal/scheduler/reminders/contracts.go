package reminders

import (
	"context"
	"time"

	"github.com/mondihair/MH-BookingService/internal/domain"
)

// BookingRepository is the booking store surface used by the scanner
type BookingRepository interface {
	GetPendingReminders(ctx context.Context, date time.Time) ([]*domain.Booking, error)
	MarkReminderSent(ctx context.Context, id int64, sentAt time.Time) (bool, error)
}

// Notifier sends the reminder message
type Notifier interface {
	SendReminder(ctx context.Context, booking *domain.Booking) (string, error)
}

// MetricsCollector counts scans and dispatches
type MetricsCollector interface {
	IncReminderScan(service string, failed bool)
	IncSMSSent(service, kind string, success bool)
}

// TimeProvider supplies the current time (swappable in tests)
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging surface used by the scanner
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

// NopMetrics is used when metrics are disabled
type NopMetrics struct{}

func (NopMetrics) IncReminderScan(service string, failed bool)   {}
func (NopMetrics) IncSMSSent(service, kind string, success bool) {}
