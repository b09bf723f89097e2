package slotlock

import "errors"

var (
	// ErrLockNotFound is returned when no lock exists for the key
	ErrLockNotFound = errors.New("slotlock.repository: lock not found")

	// ErrLockExists is returned when a lock for the key already exists
	ErrLockExists = errors.New("slotlock.repository: lock already exists")

	// ErrBuildQuery is returned when building the SQL query fails
	ErrBuildQuery = errors.New("slotlock.repository: failed to build query")

	// ErrExecQuery is returned when executing the SQL query fails
	ErrExecQuery = errors.New("slotlock.repository: failed to execute query")
)
