package bookings

import "errors"

var (
	// ErrBookingNotFound is returned when the booking does not exist
	ErrBookingNotFound = errors.New("booking not found")

	// ErrStaffNotFound is returned when the staff member is not in the catalog
	ErrStaffNotFound = errors.New("staff member not found")

	// ErrCannotCancel is returned when the booking is not in a cancellable state
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrInvalidInput is returned on malformed request data
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidDateRange is returned when the requested period is malformed
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrInternal is returned on internal service errors
	ErrInternal = errors.New("service: internal error")
)
