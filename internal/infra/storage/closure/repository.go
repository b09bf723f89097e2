package closure

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
)

// Repository stores ad-hoc closures.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository creates a closure repository.
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a closure and returns it with the generated id.
func (r *Repository) Create(ctx context.Context, closure *domain.Closure) (*domain.Closure, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("closures").
		Columns("staff_id", "closure_date", "kind", "start_time", "end_time").
		Values(closure.StaffID, closure.ClosureDate, closure.Kind, closure.StartTime, closure.EndTime).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&closure.ID, &closure.CreatedAt)
	if err != nil {
		return nil, wrapErr("Create - execute insert", ErrExecQuery, err)
	}
	return closure, nil
}

// GetByStaffAndDate fetches all closures for one staff member on one date.
func (r *Repository) GetByStaffAndDate(ctx context.Context, staffID string, date time.Time) ([]*domain.Closure, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "staff_id", "closure_date", "kind", "start_time", "end_time", "created_at").
		From("closures").
		Where(squirrel.Eq{"staff_id": staffID, "closure_date": date}).
		OrderBy("start_time ASC NULLS FIRST").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStaffAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("GetByStaffAndDate - execute query", ErrExecQuery, err)
	}
	defer rows.Close()

	closures := make([]*domain.Closure, 0)
	for rows.Next() {
		var closure domain.Closure
		if err := rows.Scan(
			&closure.ID,
			&closure.StaffID,
			&closure.ClosureDate,
			&closure.Kind,
			&closure.StartTime,
			&closure.EndTime,
			&closure.CreatedAt,
		); err != nil {
			return nil, wrapErr("GetByStaffAndDate - scan row", ErrScanRow, err)
		}
		closures = append(closures, &closure)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByStaffAndDate - rows error: %v", ErrScanRow, err)
	}
	return closures, nil
}

// Delete removes a closure.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("closures").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return wrapErr("Delete - execute delete", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrClosureNotFound
	}
	return nil
}

const (
	pqInsufficientPrivilege = "42501"
	pqInvalidAuthorization  = "28000"
)

func wrapErr(op string, sentinel error, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		code := string(pqErr.Code)
		if code == pqInsufficientPrivilege || code == pqInvalidAuthorization {
			return fmt.Errorf("%w: %s: %v", ErrPermissionDenied, op, err)
		}
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrClosureNotFound
	}
	return fmt.Errorf("%w: %s: %v", sentinel, op, err)
}
