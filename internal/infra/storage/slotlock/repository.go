package slotlock

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/mondihair/MH-BookingService/internal/domain"
	"github.com/mondihair/MH-BookingService/pkg/dbmetrics"
	"github.com/mondihair/MH-BookingService/pkg/psqlbuilder"
)

// pqUniqueViolation is raised when two inserts race on the primary key.
// The serializable reservation transaction normally prevents this; the
// constraint is the backstop.
const pqUniqueViolation = "23505"

// Repository stores slot locks. One row per actively held slot; the row's
// primary key is the deterministic (staff, date, slot) key.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository creates a slot lock repository.
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get fetches the lock for a key. ErrLockNotFound means the slot is free.
func (r *Repository) Get(ctx context.Context, id string) (*domain.SlotLock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "booking_id", "created_at").
		From("slot_locks").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var lock domain.SlotLock
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&lock.ID,
		&lock.BookingID,
		&lock.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLockNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan lock: %v", ErrExecQuery, err)
	}
	return &lock, nil
}

// Create inserts the lock. Returns ErrLockExists if another transaction
// already holds the key.
func (r *Repository) Create(ctx context.Context, lock *domain.SlotLock) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("slot_locks").
		Columns("id", "booking_id").
		Values(lock.ID, lock.BookingID).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&lock.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return ErrLockExists
		}
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

// Delete removes the lock, freeing the slot. Deleting an absent lock is
// not an error: cancellation must be idempotent with respect to the lock.
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slot_locks").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}
	return nil
}
