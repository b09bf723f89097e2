package vonage

import "errors"

var (
	// ErrNotConfigured is returned when the client has no API credentials
	ErrNotConfigured = errors.New("vonage: client is not configured")

	// ErrSendFailed is returned when the provider rejected the message
	ErrSendFailed = errors.New("vonage: sms send failed")

	// ErrInvalidResponse is returned when the provider response cannot be parsed
	ErrInvalidResponse = errors.New("vonage: invalid provider response")

	// ErrInternal is returned on transport-level failures (timeout, refused)
	ErrInternal = errors.New("vonage: internal error")
)
