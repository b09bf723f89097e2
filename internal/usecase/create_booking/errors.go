package create_booking

import "errors"

var (
	// ErrStaffNotFound is returned when the staff member is not in the catalog
	ErrStaffNotFound = errors.New("create_booking: staff member not found")

	// ErrServiceNotFound is returned when the service is not in the catalog
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrServiceNotOffered is returned when the staff member does not offer the service
	ErrServiceNotOffered = errors.New("create_booking: staff member does not offer this service")

	// ErrInvalidPhone is returned when the customer phone cannot be normalized
	ErrInvalidPhone = errors.New("create_booking: invalid phone number")

	// ErrInvalidDate is returned when the booking date is malformed or in the past
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrStaffClosed is returned when the staff member does not work on the date
	ErrStaffClosed = errors.New("create_booking: staff member is closed on this date")

	// ErrInvalidTimeSlot is returned when the slot is off-grid or outside working hours
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrSlotNotAvailable is returned when the slot is already taken
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidInput is returned on malformed request data
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal is returned on internal usecase errors
	ErrInternal = errors.New("create_booking: internal error")
)
