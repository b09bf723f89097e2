package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mondihair/MH-BookingService/internal/catalog"
	"github.com/mondihair/MH-BookingService/internal/domain"
	storagebooking "github.com/mondihair/MH-BookingService/internal/infra/storage/booking"
	storageclosure "github.com/mondihair/MH-BookingService/internal/infra/storage/closure"
	"github.com/mondihair/MH-BookingService/pkg/ptr"
	"github.com/mondihair/MH-BookingService/pkg/types"
)

// --- Mocks ---

type mockBookingRepo struct {
	getByStaffFn func(ctx context.Context, filter domain.StaffBookingsFilter) ([]*domain.Booking, error)
}

func (m *mockBookingRepo) GetByStaffWithFilter(ctx context.Context, filter domain.StaffBookingsFilter) ([]*domain.Booking, error) {
	return m.getByStaffFn(ctx, filter)
}

type mockClosureRepo struct {
	getByStaffAndDateFn func(ctx context.Context, staffID string, date time.Time) ([]*domain.Closure, error)
}

func (m *mockClosureRepo) GetByStaffAndDate(ctx context.Context, staffID string, date time.Time) ([]*domain.Closure, error) {
	return m.getByStaffAndDateFn(ctx, staffID, date)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// --- Fixtures ---

func ts(t *testing.T, s string) types.TimeString {
	t.Helper()
	v, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return v
}

func testCatalog() *catalog.Catalog {
	haircut := &catalog.Service{Name: "Haircut", Price: 13, DurationMinutes: 30}
	splitDay := catalog.DaySchedule{Ranges: []catalog.TimeRange{
		{Start: "09:00", End: "14:00"},
		{Start: "17:00", End: "21:00"},
	}}
	mondi := &catalog.StaffMember{
		ID:          "mondi",
		Name:        "Mondi",
		SlotMinutes: 20,
		Services:    []string{"Haircut"},
		Week: catalog.Week{
			Monday:    splitDay,
			Tuesday:   splitDay,
			Wednesday: catalog.DaySchedule{Ranges: []catalog.TimeRange{{Start: "09:00", End: "17:00"}}},
			Thursday:  splitDay,
			Friday:    splitDay,
			Saturday:  catalog.DaySchedule{Ranges: []catalog.TimeRange{{Start: "09:00", End: "21:00"}}},
			Sunday:    catalog.DaySchedule{Closed: true},
		},
	}
	return catalog.New([]*catalog.Service{haircut}, []*catalog.StaffMember{mondi})
}

func noBookings(ctx context.Context, filter domain.StaffBookingsFilter) ([]*domain.Booking, error) {
	return nil, nil
}

func noClosures(ctx context.Context, staffID string, date time.Time) ([]*domain.Closure, error) {
	return nil, nil
}

func newTestUseCase(bookings *mockBookingRepo, closures *mockClosureRepo, now time.Time) *UseCase {
	uc := NewUseCase(bookings, closures, testCatalog(), time.UTC, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

// Monday 2026-03-02; "now" far in the past so no slot is filtered as gone.
var (
	monday  = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	sunday  = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	longAgo = time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
)

// --- Tests ---

func TestExecute_FullFreeDay(t *testing.T) {
	uc := newTestUseCase(
		&mockBookingRepo{getByStaffFn: noBookings},
		&mockClosureRepo{getByStaffAndDateFn: noClosures},
		longAgo,
	)

	resp, err := uc.Execute(context.Background(), &Request{StaffID: "mondi", Date: monday})
	require.NoError(t, err)

	// 09:00..13:40 at 20-minute steps is 15 slots, 17:00..20:40 is 12.
	assert.Len(t, resp.Slots, 27)
	assert.Equal(t, ts(t, "09:00"), resp.Slots[0])
	assert.Equal(t, ts(t, "13:40"), resp.Slots[14])
	assert.Equal(t, ts(t, "17:00"), resp.Slots[15])
	assert.Equal(t, ts(t, "20:40"), resp.Slots[26])

	assert.NotContains(t, resp.Slots, ts(t, "14:00"))
	assert.NotContains(t, resp.Slots, ts(t, "21:00"))
	assert.NotContains(t, resp.Slots, ts(t, "15:00"))
	assert.Equal(t, 20, resp.SlotMinutes)
}

func TestExecute_TakenSlotsExcluded(t *testing.T) {
	uc := newTestUseCase(
		&mockBookingRepo{getByStaffFn: func(ctx context.Context, filter domain.StaffBookingsFilter) ([]*domain.Booking, error) {
			assert.Equal(t, "mondi", filter.StaffID)
			assert.False(t, filter.IncludeInactive)
			return []*domain.Booking{
				{ID: 1, StaffID: "mondi", TimeSlot: "10:00", Status: domain.StatusConfirmed},
				{ID: 2, StaffID: "mondi", TimeSlot: "17:20", Status: domain.StatusPending},
			}, nil
		}},
		&mockClosureRepo{getByStaffAndDateFn: noClosures},
		longAgo,
	)

	resp, err := uc.Execute(context.Background(), &Request{StaffID: "mondi", Date: monday})
	require.NoError(t, err)

	assert.Len(t, resp.Slots, 25)
	assert.NotContains(t, resp.Slots, ts(t, "10:00"))
	assert.NotContains(t, resp.Slots, ts(t, "17:20"))
	assert.Contains(t, resp.Slots, ts(t, "09:40"))
	assert.Contains(t, resp.Slots, ts(t, "10:20"))
}

func TestExecute_TimeRangeClosure(t *testing.T) {
	uc := newTestUseCase(
		&mockBookingRepo{getByStaffFn: noBookings},
		&mockClosureRepo{getByStaffAndDateFn: func(ctx context.Context, staffID string, date time.Time) ([]*domain.Closure, error) {
			return []*domain.Closure{{
				ID:          1,
				StaffID:     staffID,
				ClosureDate: date,
				Kind:        domain.ClosureTimeRange,
				StartTime:   ptr.Ptr(types.TimeString("17:00")),
				EndTime:     ptr.Ptr(types.TimeString("19:00")),
			}}, nil
		}},
		longAgo,
	)

	resp, err := uc.Execute(context.Background(), &Request{StaffID: "mondi", Date: monday})
	require.NoError(t, err)

	// 17:00..18:40 blocked, 19:00 is outside the half-open closure.
	assert.NotContains(t, resp.Slots, ts(t, "17:00"))
	assert.NotContains(t, resp.Slots, ts(t, "18:40"))
	assert.Contains(t, resp.Slots, ts(t, "19:00"))
	assert.Len(t, resp.Slots, 21)
}

func TestExecute_FullDayClosure(t *testing.T) {
	uc := newTestUseCase(
		&mockBookingRepo{getByStaffFn: func(ctx context.Context, filter domain.StaffBookingsFilter) ([]*domain.Booking, error) {
			t.Fatal("bookings must not be queried on a fully closed day")
			return nil, nil
		}},
		&mockClosureRepo{getByStaffAndDateFn: func(ctx context.Context, staffID string, date time.Time) ([]*domain.Closure, error) {
			return []*domain.Closure{{ID: 1, StaffID: staffID, ClosureDate: date, Kind: domain.ClosureFullDay}}, nil
		}},
		longAgo,
	)

	resp, err := uc.Execute(context.Background(), &Request{StaffID: "mondi", Date: monday})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_ClosedWeekday(t *testing.T) {
	uc := newTestUseCase(
		&mockBookingRepo{getByStaffFn: noBookings},
		&mockClosureRepo{getByStaffAndDateFn: noClosures},
		longAgo,
	)

	resp, err := uc.Execute(context.Background(), &Request{StaffID: "mondi", Date: sunday})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_TodayPastSlotsExcluded(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 5, 0, 0, time.UTC)
	uc := newTestUseCase(
		&mockBookingRepo{getByStaffFn: noBookings},
		&mockClosureRepo{getByStaffAndDateFn: noClosures},
		now,
	)

	resp, err := uc.Execute(context.Background(), &Request{StaffID: "mondi", Date: monday})
	require.NoError(t, err)

	assert.NotContains(t, resp.Slots, ts(t, "12:00"))
	assert.Contains(t, resp.Slots, ts(t, "12:20"))
	assert.Equal(t, ts(t, "12:20"), resp.Slots[0])
}

func TestExecute_SlotAtCurrentMinuteExcluded(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 20, 0, 0, time.UTC)
	uc := newTestUseCase(
		&mockBookingRepo{getByStaffFn: noBookings},
		&mockClosureRepo{getByStaffAndDateFn: noClosures},
		now,
	)

	resp, err := uc.Execute(context.Background(), &Request{StaffID: "mondi", Date: monday})
	require.NoError(t, err)

	assert.NotContains(t, resp.Slots, ts(t, "12:20"))
	assert.Equal(t, ts(t, "12:40"), resp.Slots[0])
}

func TestExecute_StaffNotFound(t *testing.T) {
	uc := newTestUseCase(
		&mockBookingRepo{getByStaffFn: noBookings},
		&mockClosureRepo{getByStaffAndDateFn: noClosures},
		longAgo,
	)

	_, err := uc.Execute(context.Background(), &Request{StaffID: "ghost", Date: monday})
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestExecute_PermissionDeniedSurfaces(t *testing.T) {
	uc := newTestUseCase(
		&mockBookingRepo{getByStaffFn: func(ctx context.Context, filter domain.StaffBookingsFilter) ([]*domain.Booking, error) {
			return nil, storagebooking.ErrPermissionDenied
		}},
		&mockClosureRepo{getByStaffAndDateFn: noClosures},
		longAgo,
	)

	_, err := uc.Execute(context.Background(), &Request{StaffID: "mondi", Date: monday})
	assert.ErrorIs(t, err, ErrAccessDenied)

	uc = newTestUseCase(
		&mockBookingRepo{getByStaffFn: noBookings},
		&mockClosureRepo{getByStaffAndDateFn: func(ctx context.Context, staffID string, date time.Time) ([]*domain.Closure, error) {
			return nil, storageclosure.ErrPermissionDenied
		}},
		longAgo,
	)

	_, err = uc.Execute(context.Background(), &Request{StaffID: "mondi", Date: monday})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_StorageFailureDegradesToEmpty(t *testing.T) {
	uc := newTestUseCase(
		&mockBookingRepo{getByStaffFn: func(ctx context.Context, filter domain.StaffBookingsFilter) ([]*domain.Booking, error) {
			return nil, errors.New("connection refused")
		}},
		&mockClosureRepo{getByStaffAndDateFn: noClosures},
		longAgo,
	)

	resp, err := uc.Execute(context.Background(), &Request{StaffID: "mondi", Date: monday})
	require.NoError(t, err)
	assert.NotNil(t, resp.Slots)
	assert.Empty(t, resp.Slots)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(
		&mockBookingRepo{getByStaffFn: noBookings},
		&mockClosureRepo{getByStaffAndDateFn: noClosures},
		longAgo,
	)

	_, err := uc.Execute(context.Background(), &Request{StaffID: "", Date: monday})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{StaffID: "mondi"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_Deterministic(t *testing.T) {
	uc := newTestUseCase(
		&mockBookingRepo{getByStaffFn: func(ctx context.Context, filter domain.StaffBookingsFilter) ([]*domain.Booking, error) {
			return []*domain.Booking{{ID: 1, StaffID: "mondi", TimeSlot: "09:40", Status: domain.StatusConfirmed}}, nil
		}},
		&mockClosureRepo{getByStaffAndDateFn: noClosures},
		longAgo,
	)

	first, err := uc.Execute(context.Background(), &Request{StaffID: "mondi", Date: monday})
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), &Request{StaffID: "mondi", Date: monday})
	require.NoError(t, err)

	assert.Equal(t, first.Slots, second.Slots)
}
