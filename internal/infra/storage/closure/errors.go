package closure

import "errors"

var (
	// ErrClosureNotFound is returned when the closure does not exist
	ErrClosureNotFound = errors.New("closure.repository: closure not found")

	// ErrPermissionDenied is returned when the database rejects the caller's
	// credentials
	ErrPermissionDenied = errors.New("closure.repository: permission denied")

	// ErrBuildQuery is returned when building the SQL query fails
	ErrBuildQuery = errors.New("closure.repository: failed to build query")

	// ErrExecQuery is returned when executing the SQL query fails
	ErrExecQuery = errors.New("closure.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails
	ErrScanRow = errors.New("closure.repository: failed to scan row")
)
