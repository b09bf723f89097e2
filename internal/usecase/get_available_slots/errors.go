package get_available_slots

import "errors"

var (
	// ErrStaffNotFound is returned when the staff member is not in the catalog
	ErrStaffNotFound = errors.New("get_available_slots: staff member not found")

	// ErrAccessDenied is returned when the store rejects the read; callers
	// must be able to distinguish "no slots" from "cannot check"
	ErrAccessDenied = errors.New("get_available_slots: access denied reading availability data")

	// ErrInvalidInput is returned on malformed request data
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal is returned on internal usecase errors
	ErrInternal = errors.New("get_available_slots: internal error")
)
