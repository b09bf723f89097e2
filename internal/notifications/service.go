package notifications

import (
	"context"
	"fmt"

	"github.com/mondihair/MH-BookingService/internal/catalog"
	"github.com/mondihair/MH-BookingService/internal/domain"
)

// Sender is the SMS provider collaborator: deliver one text message to an
// E.164 number, return the provider message id or a failure.
type Sender interface {
	Send(ctx context.Context, toE164 string, text string) (string, error)
}

// Normalizer converts raw phone input to E.164.
type Normalizer interface {
	Normalize(raw string) (string, error)
}

// Logger is the logging interface consumed by the service.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Service renders Greek message templates and dispatches them through the
// provider. All sends are best-effort from the booking flow's perspective:
// callers record outcomes but never fail a booking on a dispatch error.
type Service struct {
	sender        Sender
	normalizer    Normalizer
	catalog       *catalog.Catalog
	businessPhone string
	logger        Logger
}

// NewService creates the notification dispatcher.
func NewService(sender Sender, normalizer Normalizer, cat *catalog.Catalog, businessPhone string, logger Logger) *Service {
	return &Service{
		sender:        sender,
		normalizer:    normalizer,
		catalog:       cat,
		businessPhone: businessPhone,
		logger:        logger,
	}
}

// SendConfirmation dispatches the booking confirmation message and returns
// the provider message id.
func (s *Service) SendConfirmation(ctx context.Context, b *domain.Booking) (string, error) {
	return s.dispatch(ctx, b, confirmationMessage(b, s.staffName(b.StaffID), s.businessPhone))
}

// SendReminder dispatches the pre-appointment reminder message.
func (s *Service) SendReminder(ctx context.Context, b *domain.Booking) (string, error) {
	return s.dispatch(ctx, b, reminderMessage(b, s.staffName(b.StaffID), s.businessPhone))
}

// SendCancellation dispatches the cancellation notice.
func (s *Service) SendCancellation(ctx context.Context, b *domain.Booking) (string, error) {
	return s.dispatch(ctx, b, cancellationMessage(b, s.businessPhone))
}

func (s *Service) dispatch(ctx context.Context, b *domain.Booking, text string) (string, error) {
	to := b.CustomerPhoneE164
	if to == "" {
		normalized, err := s.normalizer.Normalize(b.CustomerPhone)
		if err != nil {
			s.logger.Warn("Notifications: booking id=%d has invalid phone %q, skipping dispatch", b.ID, b.CustomerPhone)
			return "", fmt.Errorf("%w: booking id=%d", ErrInvalidPhone, b.ID)
		}
		to = normalized
	}

	messageID, err := s.sender.Send(ctx, to, text)
	if err != nil {
		return "", fmt.Errorf("%w: booking id=%d: %v", ErrDispatchFailed, b.ID, err)
	}
	return messageID, nil
}

// staffName resolves the display name for message bodies.
// Falls back to the raw id for bookings whose staff left the catalog.
func (s *Service) staffName(staffID string) string {
	if staff, ok := s.catalog.StaffByID(staffID); ok {
		return staff.Name
	}
	return staffID
}
