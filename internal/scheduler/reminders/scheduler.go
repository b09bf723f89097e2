package reminders

import (
	"context"
	"sync"
	"time"

	"github.com/mondihair/MH-BookingService/internal/domain"
)

// Scheduler periodically scans today's bookings and dispatches reminder
// messages for the ones whose slot falls inside the reminder window. The
// scan is stateless: dropped reminders from a crashed scan are picked up by
// the next one, and the conditional reminder_sent flip in the store keeps
// a reminder from going out twice.
type Scheduler struct {
	bookingRepo BookingRepository
	notifier    Notifier
	metrics     MetricsCollector
	location    *time.Location

	serviceName      string
	interval         time.Duration
	leadMinutes      int
	toleranceMinutes int

	timeProvider TimeProvider
	logger       Logger
}

// Config holds the scan cadence and the reminder window. The window is
// [lead-tolerance, lead+tolerance] minutes before the slot; the interval
// must stay under the tolerance so no slot can cross the whole window
// between two scans.
type Config struct {
	ServiceName      string
	Interval         time.Duration
	LeadMinutes      int
	ToleranceMinutes int
}

// NewScheduler creates the reminder scheduler
func NewScheduler(
	bookingRepo BookingRepository,
	notifier Notifier,
	metrics MetricsCollector,
	location *time.Location,
	cfg Config,
	logger Logger,
) *Scheduler {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &Scheduler{
		bookingRepo:      bookingRepo,
		notifier:         notifier,
		metrics:          metrics,
		location:         location,
		serviceName:      cfg.ServiceName,
		interval:         cfg.Interval,
		leadMinutes:      cfg.LeadMinutes,
		toleranceMinutes: cfg.ToleranceMinutes,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Run scans on a ticker until the context is cancelled
func (s *Scheduler) Run(ctx context.Context) {
	s.logger.Info("reminders: scheduler started, interval=%s window=[%d, %d] minutes before slot",
		s.interval, s.leadMinutes-s.toleranceMinutes, s.leadMinutes+s.toleranceMinutes)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Scan(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("reminders: scheduler stopped")
			return
		case <-ticker.C:
			s.Scan(ctx)
		}
	}
}

// Scan runs one pass: fetch today's unsent reminders, keep the ones inside
// the window, dispatch them concurrently and wait for all dispatches.
func (s *Scheduler) Scan(ctx context.Context) {
	now := s.timeProvider.Now().In(s.location)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	pending, err := s.bookingRepo.GetPendingReminders(ctx, today)
	if err != nil {
		s.logger.Error("reminders: scan failed to fetch bookings for %s: %v",
			today.Format(domain.DateFormat), err)
		s.metrics.IncReminderScan(s.serviceName, true)
		return
	}

	nowMinutes := now.Hour()*60 + now.Minute()
	due := make([]*domain.Booking, 0, len(pending))
	for _, b := range pending {
		slotMinutes, err := b.TimeSlot.Minutes()
		if err != nil {
			s.logger.Warn("reminders: booking id=%d has malformed slot %q", b.ID, b.TimeSlot)
			continue
		}
		until := slotMinutes - nowMinutes
		if until >= s.leadMinutes-s.toleranceMinutes && until <= s.leadMinutes+s.toleranceMinutes {
			due = append(due, b)
		}
	}

	if len(due) > 0 {
		s.logger.Info("reminders: scan found %d due of %d pending", len(due), len(pending))
	}

	var wg sync.WaitGroup
	for _, b := range due {
		wg.Add(1)
		go func(booking *domain.Booking) {
			defer wg.Done()
			s.dispatch(ctx, booking, now)
		}(b)
	}
	wg.Wait()

	s.metrics.IncReminderScan(s.serviceName, false)
}

// dispatch sends one reminder and records it. A send failure leaves the
// flag untouched so the next scan retries while the slot is still inside
// the window.
func (s *Scheduler) dispatch(ctx context.Context, booking *domain.Booking, now time.Time) {
	if _, err := s.notifier.SendReminder(ctx, booking); err != nil {
		s.logger.Error("reminders: dispatch failed for booking id=%d slot=%s: %v",
			booking.ID, booking.TimeSlot, err)
		s.metrics.IncSMSSent(s.serviceName, "reminder", false)
		return
	}
	s.metrics.IncSMSSent(s.serviceName, "reminder", true)

	marked, err := s.bookingRepo.MarkReminderSent(ctx, booking.ID, now)
	if err != nil {
		s.logger.Error("reminders: failed to mark reminder sent for booking id=%d: %v", booking.ID, err)
		return
	}
	if !marked {
		s.logger.Warn("reminders: booking id=%d was already marked sent", booking.ID)
		return
	}
	s.logger.Info("reminders: sent reminder for booking id=%d slot=%s", booking.ID, booking.TimeSlot)
}
