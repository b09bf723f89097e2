package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/mondihair/MH-BookingService/internal/domain"
	"github.com/mondihair/MH-BookingService/pkg/dbmetrics"
	"github.com/mondihair/MH-BookingService/pkg/psqlbuilder"
	"github.com/mondihair/MH-BookingService/pkg/types"
)

var bookingColumns = []string{
	"id",
	"staff_id",
	"customer_name",
	"customer_phone",
	"customer_phone_e164",
	"customer_email",
	"service_name",
	"service_price",
	"duration_minutes",
	"booking_date",
	"time_slot",
	"status",
	"notes",
	"confirmation_sms_sent",
	"confirmation_sms_sent_at",
	"confirmation_sms_id",
	"reminder_sent",
	"reminder_sent_at",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository stores bookings.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a booking repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a new booking and returns it with the generated id and
// timestamps. When the context carries an active transaction the insert
// runs inside it.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"staff_id",
			"customer_name",
			"customer_phone",
			"customer_phone_e164",
			"customer_email",
			"service_name",
			"service_price",
			"duration_minutes",
			"booking_date",
			"time_slot",
			"status",
			"notes",
		).
		Values(
			booking.StaffID,
			booking.CustomerName,
			booking.CustomerPhone,
			booking.CustomerPhoneE164,
			booking.CustomerEmail,
			booking.ServiceName,
			booking.ServicePrice,
			booking.DurationMinutes,
			booking.BookingDate,
			booking.TimeSlot,
			booking.Status,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, wrapExecErr("Create - execute insert", err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID fetches one booking.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	booking, err := scanBooking(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, wrapScanErr("GetByID - scan booking", err)
	}
	return booking, nil
}

// GetActiveBySlot fetches the active (pending or confirmed) booking holding
// the exact (staff, date, slot) key. ErrBookingNotFound means the key is free.
// This is the advisory fast-path check; the slot lock inside the reservation
// transaction is the correctness guarantee.
func (r *Repository) GetActiveBySlot(ctx context.Context, staffID string, date time.Time, slot types.TimeString) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{
			"staff_id":     staffID,
			"booking_date": date,
			"time_slot":    slot,
			"status":       statusStrings(domain.ActiveStatuses),
		}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveBySlot - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	booking, err := scanBooking(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, wrapScanErr("GetActiveBySlot - scan booking", err)
	}
	return booking, nil
}

// GetByStaffWithFilter fetches a staff member's bookings with flexible
// filtering by period and status. Results for a single date come ordered by
// slot ascending; period queries come newest first.
func (r *Repository) GetByStaffWithFilter(ctx context.Context, filter domain.StaffBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"staff_id": filter.StaffID})

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statusStrings(domain.ActiveStatuses)})
	}

	singleDate := filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate)
	if singleDate {
		selectBuilder = selectBuilder.OrderBy("time_slot ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC, time_slot DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStaffWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapExecErr("GetByStaffWithFilter - execute query", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetPendingReminders fetches the day's active bookings whose reminder has
// not gone out yet, across all staff, ordered by slot. The reminder scanner
// narrows this set down to its dispatch window in memory.
func (r *Repository) GetPendingReminders(ctx context.Context, date time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{
			"booking_date":  date,
			"status":        statusStrings(domain.ActiveStatuses),
			"reminder_sent": false,
		}).
		OrderBy("time_slot ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetPendingReminders - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapExecErr("GetPendingReminders - execute query", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// Cancel marks the booking cancelled and stamps cancelled_at.
// Runs inside the caller's transaction when one is active, so the status
// change and the slot-lock delete commit together.
func (r *Repository) Cancel(ctx context.Context, id int64, cancelledAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancelled_at", cancelledAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return wrapExecErr("Cancel - execute update", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// MarkConfirmationSent records a successful confirmation dispatch.
func (r *Repository) MarkConfirmationSent(ctx context.Context, id int64, providerMessageID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("confirmation_sms_sent", true).
		Set("confirmation_sms_sent_at", squirrel.Expr("NOW()")).
		Set("confirmation_sms_id", providerMessageID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkConfirmationSent - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return wrapExecErr("MarkConfirmationSent - execute update", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkConfirmationSent - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// MarkReminderSent flips the reminder_sent flag. The update is conditional
// on the flag still being false, which makes the reminder state machine
// monotone: NotSent -> Sent, never back. Returns false when another writer
// already flipped it.
func (r *Repository) MarkReminderSent(ctx context.Context, id int64, sentAt time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("reminder_sent", true).
		Set("reminder_sent_at", sentAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "reminder_sent": false}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: MarkReminderSent - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, wrapExecErr("MarkReminderSent - execute update", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: MarkReminderSent - get rows affected: %v", ErrExecQuery, err)
	}
	return rowsAffected > 0, nil
}

func scanBooking(scan func(dest ...interface{}) error) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := scan(
		&booking.ID,
		&booking.StaffID,
		&booking.CustomerName,
		&booking.CustomerPhone,
		&booking.CustomerPhoneE164,
		&booking.CustomerEmail,
		&booking.ServiceName,
		&booking.ServicePrice,
		&booking.DurationMinutes,
		&booking.BookingDate,
		&booking.TimeSlot,
		&booking.Status,
		&booking.Notes,
		&booking.ConfirmationSMSSent,
		&booking.ConfirmationSMSSentAt,
		&booking.ConfirmationSMSID,
		&booking.ReminderSent,
		&booking.ReminderSentAt,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time
	return &booking, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows.Scan)
		if err != nil {
			return nil, wrapScanErr("scanBookings - scan row", err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}
	return bookings, nil
}

func statusStrings(statuses []domain.BookingStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}

// PostgreSQL error codes for rejected credentials. These surface as
// ErrPermissionDenied so callers can distinguish "not entitled to read"
// from "no data".
const (
	pqInsufficientPrivilege = "42501"
	pqInvalidAuthorization  = "28000"
)

func wrapExecErr(op string, err error) error {
	if isPermissionDenied(err) {
		return fmt.Errorf("%w: %s: %v", ErrPermissionDenied, op, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrExecQuery, op, err)
}

func wrapScanErr(op string, err error) error {
	if isPermissionDenied(err) {
		return fmt.Errorf("%w: %s: %v", ErrPermissionDenied, op, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrScanRow, op, err)
}

func isPermissionDenied(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pqInsufficientPrivilege || string(pqErr.Code) == pqInvalidAuthorization
	}
	return false
}
