package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mondihair/MH-BookingService/internal/catalog"
	"github.com/mondihair/MH-BookingService/internal/domain"
	storagebooking "github.com/mondihair/MH-BookingService/internal/infra/storage/booking"
	storageslotlock "github.com/mondihair/MH-BookingService/internal/infra/storage/slotlock"
)

// UseCase reserves a slot for a customer. The slot-lock row is the single
// arbiter of slot ownership: two concurrent requests for the same slot
// serialize on it and exactly one commits.
type UseCase struct {
	bookingRepo  BookingRepository
	slotLockRepo SlotLockRepository
	closureRepo  ClosureRepository
	catalog      *catalog.Catalog
	normalizer   PhoneNormalizer
	notifier     Notifier
	txManager    TransactionManager
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates the use case instance
func NewUseCase(
	bookingRepo BookingRepository,
	slotLockRepo SlotLockRepository,
	closureRepo ClosureRepository,
	cat *catalog.Catalog,
	normalizer PhoneNormalizer,
	notifier Notifier,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		slotLockRepo: slotLockRepo,
		closureRepo:  closureRepo,
		catalog:      cat,
		normalizer:   normalizer,
		notifier:     notifier,
		txManager:    txManager,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute runs the reservation
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: staff=%s service=%q date=%s slot=%s",
		req.StaffID, req.ServiceName, req.Date.Format(domain.DateFormat), req.TimeSlot)

	// 1. Field validation
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Catalog lookups
	staff, ok := uc.catalog.StaffByID(req.StaffID)
	if !ok {
		uc.logger.Warn("CreateBooking: staff id=%s not found", req.StaffID)
		return nil, fmt.Errorf("%w: %s", ErrStaffNotFound, req.StaffID)
	}
	service, ok := uc.catalog.ServiceByName(req.ServiceName)
	if !ok {
		uc.logger.Warn("CreateBooking: service %q not found", req.ServiceName)
		return nil, fmt.Errorf("%w: %s", ErrServiceNotFound, req.ServiceName)
	}
	if !staff.OffersService(service.Name) {
		uc.logger.Warn("CreateBooking: staff=%s does not offer %q", staff.ID, service.Name)
		return nil, fmt.Errorf("%w: %s does not offer %s", ErrServiceNotOffered, staff.ID, service.Name)
	}

	// 3. Phone normalization
	phoneE164, err := uc.normalizer.Normalize(req.CustomerPhone)
	if err != nil {
		uc.logger.Warn("CreateBooking: phone normalization failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidPhone, err)
	}

	// 4. Date and slot validation against the weekly schedule
	now := uc.timeProvider.Now().In(uc.location)
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}
	day := staff.ScheduleFor(req.Date.Weekday())
	if err := validateSlot(day, staff.SlotMinutes, req.TimeSlot); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}
	if err := validateNotPast(req.Date, req.TimeSlot, now); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	// 5. Closures block the slot outright
	if err := uc.checkClosures(ctx, staff.ID, req.Date, req); err != nil {
		return nil, err
	}

	// 6. Advisory fast path: reject an obviously taken slot without paying
	// for a serializable transaction. The lock inside the transaction is
	// the authoritative check.
	if _, err := uc.bookingRepo.GetActiveBySlot(ctx, staff.ID, req.Date, req.TimeSlot); err == nil {
		uc.logger.Warn("CreateBooking: slot %s already booked (fast path)", req.TimeSlot)
		return nil, ErrSlotNotAvailable
	} else if !errors.Is(err, storagebooking.ErrBookingNotFound) {
		uc.logger.Error("CreateBooking: fast-path lookup failed: %v", err)
		return nil, fmt.Errorf("%w: slot lookup failed: %v", ErrInternal, err)
	}

	var result *domain.Booking

	// 7. Atomic reservation: read the lock, then insert booking + lock.
	// Serializable isolation turns a concurrent duplicate into a
	// serialization failure retried by the transaction manager, and the
	// lock's primary key is the backstop.
	lockID := domain.SlotLockID(staff.ID, req.Date, req.TimeSlot)
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		_, err := uc.slotLockRepo.Get(txCtx, lockID)
		if err == nil {
			return ErrSlotNotAvailable
		}
		if !errors.Is(err, storageslotlock.ErrLockNotFound) {
			return fmt.Errorf("%w: lock lookup failed: %v", ErrInternal, err)
		}

		booking := &domain.Booking{
			StaffID:           staff.ID,
			CustomerName:      req.CustomerName,
			CustomerPhone:     req.CustomerPhone,
			CustomerPhoneE164: phoneE164,
			CustomerEmail:     req.CustomerEmail,
			ServiceName:       service.Name,
			ServicePrice:      service.Price,
			DurationMinutes:   service.DurationMinutes,
			BookingDate:       req.Date,
			TimeSlot:          req.TimeSlot,
			Status:            domain.StatusConfirmed,
			Notes:             req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return fmt.Errorf("%w: create booking failed: %v", ErrInternal, err)
		}

		if err := uc.slotLockRepo.Create(txCtx, &domain.SlotLock{ID: lockID, BookingID: created.ID}); err != nil {
			if errors.Is(err, storageslotlock.ErrLockExists) {
				return ErrSlotNotAvailable
			}
			return fmt.Errorf("%w: create slot lock failed: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotNotAvailable) {
			uc.logger.Warn("CreateBooking: slot %s lost to a concurrent booking", req.TimeSlot)
			return nil, ErrSlotNotAvailable
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateBooking: created booking id=%d lock=%s", result.ID, lockID)

	// 8. Post-commit confirmation SMS. The reservation is already durable;
	// a dispatch failure is logged, never surfaced.
	uc.sendConfirmation(ctx, result)

	return &Response{
		ID:              result.ID,
		StaffID:         result.StaffID,
		StaffName:       staff.Name,
		CustomerName:    result.CustomerName,
		CustomerPhone:   result.CustomerPhoneE164,
		ServiceName:     result.ServiceName,
		ServicePrice:    result.ServicePrice,
		DurationMinutes: result.DurationMinutes,
		Date:            result.BookingDate,
		TimeSlot:        result.TimeSlot,
		Status:          string(result.Status),
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
	}, nil
}

func (uc *UseCase) checkClosures(ctx context.Context, staffID string, date time.Time, req *Request) error {
	closures, err := uc.closureRepo.GetByStaffAndDate(ctx, staffID, date)
	if err != nil {
		uc.logger.Error("CreateBooking: closures lookup failed: %v", err)
		return fmt.Errorf("%w: closures lookup failed: %v", ErrInternal, err)
	}
	for _, c := range closures {
		if c.IsFullDay() {
			uc.logger.Warn("CreateBooking: staff=%s fully closed on %s", staffID, date.Format(domain.DateFormat))
			return ErrStaffClosed
		}
		if c.Covers(req.TimeSlot) {
			uc.logger.Warn("CreateBooking: slot %s inside closure id=%d", req.TimeSlot, c.ID)
			return ErrSlotNotAvailable
		}
	}
	return nil
}

func (uc *UseCase) sendConfirmation(ctx context.Context, booking *domain.Booking) {
	messageID, err := uc.notifier.SendConfirmation(ctx, booking)
	if err != nil {
		uc.logger.Error("CreateBooking: confirmation SMS failed for booking id=%d: %v", booking.ID, err)
		return
	}
	if err := uc.bookingRepo.MarkConfirmationSent(ctx, booking.ID, messageID); err != nil {
		uc.logger.Error("CreateBooking: failed to mark confirmation sent for booking id=%d: %v", booking.ID, err)
	}
}
