package notifications

import "errors"

var (
	// ErrInvalidPhone is returned when the booking's phone number cannot be
	// normalized; nothing is dispatched
	ErrInvalidPhone = errors.New("notifications: invalid customer phone number")

	// ErrDispatchFailed is returned when the provider call failed;
	// eligible for retry by the caller
	ErrDispatchFailed = errors.New("notifications: dispatch failed")
)
