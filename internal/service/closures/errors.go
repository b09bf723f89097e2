package closures

import "errors"

var (
	// ErrClosureNotFound is returned when the closure does not exist
	ErrClosureNotFound = errors.New("closure not found")

	// ErrStaffNotFound is returned when the staff member is not in the catalog
	ErrStaffNotFound = errors.New("staff member not found")

	// ErrInvalidInput is returned on malformed request data
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on internal service errors
	ErrInternal = errors.New("service: internal error")
)
