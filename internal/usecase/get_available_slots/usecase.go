package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mondihair/MH-BookingService/internal/catalog"
	"github.com/mondihair/MH-BookingService/internal/domain"
	storagebooking "github.com/mondihair/MH-BookingService/internal/infra/storage/booking"
	storageclosure "github.com/mondihair/MH-BookingService/internal/infra/storage/closure"
	"github.com/mondihair/MH-BookingService/pkg/types"
)

// UseCase computes the free slot starts for a staff member on a date
type UseCase struct {
	bookingRepo  BookingRepository
	closureRepo  ClosureRepository
	catalog      *catalog.Catalog
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates the use case instance
func NewUseCase(
	bookingRepo BookingRepository,
	closureRepo ClosureRepository,
	cat *catalog.Catalog,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		closureRepo:  closureRepo,
		catalog:      cat,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute runs the availability query.
// Permission failures from the store surface as ErrAccessDenied; any other
// store failure degrades to an empty slot list so the endpoint never
// misreports taken slots as free.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	staff, ok := uc.catalog.StaffByID(req.StaffID)
	if !ok {
		uc.logger.Warn("GetAvailableSlots: staff id=%s not found", req.StaffID)
		return nil, fmt.Errorf("%w: %s", ErrStaffNotFound, req.StaffID)
	}

	resp := &Response{
		StaffID:     staff.ID,
		StaffName:   staff.Name,
		Date:        req.Date,
		SlotMinutes: staff.SlotMinutes,
		Slots:       []types.TimeString{},
	}

	// 1. Weekly schedule: a closed day has no slots at all
	day := staff.ScheduleFor(req.Date.Weekday())
	if day.Closed || len(day.Ranges) == 0 {
		return resp, nil
	}

	// 2. Date closures
	closures, err := uc.closureRepo.GetByStaffAndDate(ctx, staff.ID, req.Date)
	if err != nil {
		if errors.Is(err, storageclosure.ErrPermissionDenied) {
			return nil, fmt.Errorf("%w: %v", ErrAccessDenied, err)
		}
		uc.logger.Error("GetAvailableSlots: closures lookup failed for staff=%s date=%s, degrading to empty: %v",
			staff.ID, req.Date.Format(domain.DateFormat), err)
		return resp, nil
	}
	for _, c := range closures {
		if c.IsFullDay() {
			return resp, nil
		}
	}

	// 3. Taken slots from active bookings
	taken, err := uc.takenSlots(ctx, staff.ID, req.Date)
	if err != nil {
		if errors.Is(err, storagebooking.ErrPermissionDenied) {
			return nil, fmt.Errorf("%w: %v", ErrAccessDenied, err)
		}
		uc.logger.Error("GetAvailableSlots: bookings lookup failed for staff=%s date=%s, degrading to empty: %v",
			staff.ID, req.Date.Format(domain.DateFormat), err)
		return resp, nil
	}

	cutoff, haveCutoff := uc.todayCutoff(req.Date)

	// 4. Grid minus past, taken and closed-off slots
	for _, slot := range generateSlotGrid(day, staff.SlotMinutes) {
		if haveCutoff && !slot.IsAfter(cutoff) {
			continue
		}
		if taken[slot] {
			continue
		}
		if coveredByClosure(closures, slot) {
			continue
		}
		resp.Slots = append(resp.Slots, slot)
	}

	uc.logger.Info("GetAvailableSlots: staff=%s date=%s free=%d",
		staff.ID, req.Date.Format(domain.DateFormat), len(resp.Slots))

	return resp, nil
}

func (uc *UseCase) takenSlots(ctx context.Context, staffID string, date time.Time) (map[types.TimeString]bool, error) {
	bookings, err := uc.bookingRepo.GetByStaffWithFilter(ctx, domain.StaffBookingsFilter{
		StaffID:   staffID,
		StartDate: &date,
		EndDate:   &date,
	})
	if err != nil {
		return nil, err
	}

	taken := make(map[types.TimeString]bool, len(bookings))
	for _, b := range bookings {
		taken[b.TimeSlot] = true
	}
	return taken, nil
}

// todayCutoff returns the current wall-clock time when the requested date
// is today in the business timezone. Slots at or before the cutoff are in
// the past and never offered.
func (uc *UseCase) todayCutoff(date time.Time) (types.TimeString, bool) {
	now := uc.timeProvider.Now().In(uc.location)
	if date.Format(domain.DateFormat) != now.Format(domain.DateFormat) {
		return "", false
	}
	return types.NewTimeString(now), true
}

func coveredByClosure(closures []*domain.Closure, slot types.TimeString) bool {
	for _, c := range closures {
		if c.Covers(slot) {
			return true
		}
	}
	return false
}
