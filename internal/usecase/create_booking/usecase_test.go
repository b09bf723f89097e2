package create_booking

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
	storageslotlock "github.com/mondihair/MH-BookingService/internal/infra/storage/slotlock"
	"github.com/mondihair/MH-BookingService/pkg/phone"
	"github.com/mondihair/MH-BookingService/pkg/ptr"
	"github.com/mondihair/MH-BookingService/pkg/types"
)

// --- Mocks ---

type mockBookingRepo struct {
	createFn    func(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	getActiveFn func(ctx context.Context, staffID string, date time.Time, slot types.TimeString) (*domain.Booking, error)
	markConfFn  func(ctx context.Context, id int64, providerMessageID string) error
}

func (m *mockBookingRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	return m.createFn(ctx, booking)
}

func (m *mockBookingRepo) GetActiveBySlot(ctx context.Context, staffID string, date time.Time, slot types.TimeString) (*domain.Booking, error) {
	if m.getActiveFn != nil {
		return m.getActiveFn(ctx, staffID, date, slot)
	}
	return nil, storagebooking.ErrBookingNotFound
}

func (m *mockBookingRepo) MarkConfirmationSent(ctx context.Context, id int64, providerMessageID string) error {
	if m.markConfFn != nil {
		return m.markConfFn(ctx, id, providerMessageID)
	}
	return nil
}

type mockSlotLockRepo struct {
	getFn    func(ctx context.Context, id string) (*domain.SlotLock, error)
	createFn func(ctx context.Context, lock *domain.SlotLock) error
}

func (m *mockSlotLockRepo) Get(ctx context.Context, id string) (*domain.SlotLock, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, storageslotlock.ErrLockNotFound
}

func (m *mockSlotLockRepo) Create(ctx context.Context, lock *domain.SlotLock) error {
	if m.createFn != nil {
		return m.createFn(ctx, lock)
	}
	return nil
}

type mockClosureRepo struct {
	getByStaffAndDateFn func(ctx context.Context, staffID string, date time.Time) ([]*domain.Closure, error)
}

func (m *mockClosureRepo) GetByStaffAndDate(ctx context.Context, staffID string, date time.Time) ([]*domain.Closure, error) {
	if m.getByStaffAndDateFn != nil {
		return m.getByStaffAndDateFn(ctx, staffID, date)
	}
	return nil, nil
}

type mockNotifier struct {
	sendFn func(ctx context.Context, booking *domain.Booking) (string, error)
	sent   int
}

func (m *mockNotifier) SendConfirmation(ctx context.Context, booking *domain.Booking) (string, error) {
	m.sent++
	if m.sendFn != nil {
		return m.sendFn(ctx, booking)
	}
	return "msg-1", nil
}

// passthroughTxManager runs the callback directly; the retry and isolation
// behavior lives in pkg/txmanager and is tested there.
type passthroughTxManager struct {
	calls int
}

func (m *passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
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

func testCatalog() *catalog.Catalog {
	haircut := &catalog.Service{Name: "Haircut", Price: 13, DurationMinutes: 30}
	beard := &catalog.Service{Name: "Beard Trim", Price: 10, DurationMinutes: 20}
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
			Monday:   splitDay,
			Tuesday:  splitDay,
			Thursday: splitDay,
			Friday:   splitDay,
			Saturday: catalog.DaySchedule{Ranges: []catalog.TimeRange{{Start: "09:00", End: "21:00"}}},
			Sunday:   catalog.DaySchedule{Closed: true},
		},
	}
	return catalog.New([]*catalog.Service{haircut, beard}, []*catalog.StaffMember{mondi})
}

var (
	monday  = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	sunday  = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	longAgo = time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
)

func validRequest() *Request {
	return &Request{
		StaffID:       "mondi",
		CustomerName:  "Γιώργος Παπαδόπουλος",
		CustomerPhone: "6944123456",
		ServiceName:   "Haircut",
		Date:          monday,
		TimeSlot:      "10:00",
	}
}

type fixture struct {
	uc       *UseCase
	bookings *mockBookingRepo
	locks    *mockSlotLockRepo
	closures *mockClosureRepo
	notifier *mockNotifier
	tx       *passthroughTxManager
}

func newFixture(now time.Time) *fixture {
	f := &fixture{
		bookings: &mockBookingRepo{},
		locks:    &mockSlotLockRepo{},
		closures: &mockClosureRepo{},
		notifier: &mockNotifier{},
		tx:       &passthroughTxManager{},
	}
	f.bookings.createFn = func(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
		created := *booking
		created.ID = 42
		created.CreatedAt = now
		created.UpdatedAt = now
		return &created, nil
	}
	f.uc = NewUseCase(
		f.bookings, f.locks, f.closures,
		testCatalog(),
		phone.NewNormalizer("30", 10),
		f.notifier,
		f.tx,
		time.UTC,
		nopLogger{},
	)
	f.uc.timeProvider = &fixedTimeProvider{now: now}
	return f
}

// --- Tests ---

func TestExecute_Success(t *testing.T) {
	f := newFixture(longAgo)

	var createdLock *domain.SlotLock
	f.locks.createFn = func(ctx context.Context, lock *domain.SlotLock) error {
		createdLock = lock
		return nil
	}
	var confirmedID int64
	f.bookings.markConfFn = func(ctx context.Context, id int64, providerMessageID string) error {
		confirmedID = id
		assert.Equal(t, "msg-1", providerMessageID)
		return nil
	}

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "Mondi", resp.StaffName)
	assert.Equal(t, "+306944123456", resp.CustomerPhone)
	assert.Equal(t, 13.0, resp.ServicePrice)
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)

	require.NotNil(t, createdLock)
	assert.Equal(t, "mondi|2026-03-02|10:00", createdLock.ID)
	assert.Equal(t, int64(42), createdLock.BookingID)

	assert.Equal(t, 1, f.tx.calls)
	assert.Equal(t, 1, f.notifier.sent)
	assert.Equal(t, int64(42), confirmedID)
}

func TestExecute_FastPathRejectsTakenSlot(t *testing.T) {
	f := newFixture(longAgo)
	f.bookings.getActiveFn = func(ctx context.Context, staffID string, date time.Time, slot types.TimeString) (*domain.Booking, error) {
		return &domain.Booking{ID: 7, StaffID: staffID, TimeSlot: slot, Status: domain.StatusConfirmed}, nil
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Equal(t, 0, f.tx.calls)
	assert.Equal(t, 0, f.notifier.sent)
}

func TestExecute_LockHeldInTransaction(t *testing.T) {
	f := newFixture(longAgo)
	f.locks.getFn = func(ctx context.Context, id string) (*domain.SlotLock, error) {
		return &domain.SlotLock{ID: id, BookingID: 7}, nil
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Equal(t, 0, f.notifier.sent)
}

func TestExecute_LockInsertConflict(t *testing.T) {
	f := newFixture(longAgo)
	f.locks.createFn = func(ctx context.Context, lock *domain.SlotLock) error {
		return storageslotlock.ErrLockExists
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Equal(t, 0, f.notifier.sent)
}

func TestExecute_SMSFailureDoesNotFailBooking(t *testing.T) {
	f := newFixture(longAgo)
	f.notifier.sendFn = func(ctx context.Context, booking *domain.Booking) (string, error) {
		return "", errors.New("provider unavailable")
	}
	marked := false
	f.bookings.markConfFn = func(ctx context.Context, id int64, providerMessageID string) error {
		marked = true
		return nil
	}

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
	assert.False(t, marked)
}

func TestExecute_FullDayClosure(t *testing.T) {
	f := newFixture(longAgo)
	f.closures.getByStaffAndDateFn = func(ctx context.Context, staffID string, date time.Time) ([]*domain.Closure, error) {
		return []*domain.Closure{{ID: 1, StaffID: staffID, ClosureDate: date, Kind: domain.ClosureFullDay}}, nil
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrStaffClosed)
}

func TestExecute_TimeRangeClosureCoversSlot(t *testing.T) {
	f := newFixture(longAgo)
	f.closures.getByStaffAndDateFn = func(ctx context.Context, staffID string, date time.Time) ([]*domain.Closure, error) {
		return []*domain.Closure{{
			ID:          1,
			StaffID:     staffID,
			ClosureDate: date,
			Kind:        domain.ClosureTimeRange,
			StartTime:   ptr.Ptr(types.TimeString("09:00")),
			EndTime:     ptr.Ptr(types.TimeString("11:00")),
		}}, nil
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// The same closure does not block a later slot.
	req := validRequest()
	req.TimeSlot = "11:00"
	_, err = f.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_CatalogValidation(t *testing.T) {
	f := newFixture(longAgo)

	req := validRequest()
	req.StaffID = "ghost"
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrStaffNotFound)

	req = validRequest()
	req.ServiceName = "Massage"
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)

	// Beard Trim exists in the catalog but mondi does not offer it.
	req = validRequest()
	req.ServiceName = "Beard Trim"
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotOffered)
}

func TestExecute_SlotValidation(t *testing.T) {
	f := newFixture(longAgo)

	req := validRequest()
	req.TimeSlot = "10:07"
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)

	req = validRequest()
	req.TimeSlot = "15:00"
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)

	req = validRequest()
	req.TimeSlot = "14:00"
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)

	req = validRequest()
	req.Date = sunday
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrStaffClosed)
}

func TestExecute_DateValidation(t *testing.T) {
	now := time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC)
	f := newFixture(now)

	req := validRequest()
	req.Date = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)

	// Booking today for a slot that already passed.
	req = validRequest()
	req.TimeSlot = "10:00"
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)

	req = validRequest()
	req.TimeSlot = "11:20"
	_, err = f.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_PhoneValidation(t *testing.T) {
	f := newFixture(longAgo)

	req := validRequest()
	req.CustomerPhone = "12345"
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidPhone)
}

func TestExecute_InputValidation(t *testing.T) {
	f := newFixture(longAgo)

	req := validRequest()
	req.CustomerName = "   "
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest()
	req.TimeSlot = "25:99"
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}
