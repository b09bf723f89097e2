package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/mondihair/MH-BookingService/internal/catalog"
	"github.com/mondihair/MH-BookingService/internal/domain"
	bookingRepo "github.com/mondihair/MH-BookingService/internal/infra/storage/booking"
	"github.com/mondihair/MH-BookingService/internal/service/bookings/models"
)

// Service handles booking reads and cancellation
type Service struct {
	bookingRepo  BookingRepository
	slotLockRepo SlotLockRepository
	catalog      *catalog.Catalog
	notifier     Notifier
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService creates the bookings service
func NewService(
	bookingRepo BookingRepository,
	slotLockRepo SlotLockRepository,
	cat *catalog.Catalog,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		slotLockRepo: slotLockRepo,
		catalog:      cat,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID fetches one booking
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetStaffBookings fetches a staff member's bookings with optional period
// and status filters. A single-date period returns the day's agenda in
// slot order.
func (s *Service) GetStaffBookings(ctx context.Context, req *models.GetStaffBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetStaffBookings: staff=%s includeInactive=%v", req.StaffID, req.IncludeInactive)

	if _, ok := s.catalog.StaffByID(req.StaffID); !ok {
		s.logger.Warn("GetStaffBookings: staff id=%s not found", req.StaffID)
		return nil, ErrStaffNotFound
	}
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		s.logger.Warn("GetStaffBookings: end date before start date for staff=%s", req.StaffID)
		return nil, ErrInvalidDateRange
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetStaffBookings: invalid filter for staff=%s: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	list, err := s.bookingRepo.GetByStaffWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetStaffBookings: repository error for staff=%s: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: GetStaffBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetStaffBookings: fetched %d bookings for staff=%s", len(list), req.StaffID)
	return models.FromDomainBookingList(list), nil
}

// Cancel cancels a booking and releases its slot lock in one transaction,
// making the slot immediately reservable again. A cancelled booking stays
// in the store for history.
func (s *Service) Cancel(ctx context.Context, bookingID int64) error {
	s.logger.Info("Cancel: cancelling booking id=%d", bookingID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	now := s.timeProvider.Now()
	lockID := domain.SlotLockID(booking.StaffID, booking.BookingDate, booking.TimeSlot)

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.bookingRepo.Cancel(txCtx, bookingID, now); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}
		if err := s.slotLockRepo.Delete(txCtx, lockID); err != nil {
			return fmt.Errorf("%w: Cancel - lock release failed: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Cancel: transaction failed for booking id=%d: %v", bookingID, err)
		return err
	}

	s.logger.Info("Cancel: cancelled booking id=%d, released lock=%s", bookingID, lockID)

	// Post-commit cancellation SMS, best effort.
	if _, err := s.notifier.SendCancellation(ctx, booking); err != nil {
		s.logger.Error("Cancel: cancellation SMS failed for booking id=%d: %v", bookingID, err)
	}

	return nil
}
