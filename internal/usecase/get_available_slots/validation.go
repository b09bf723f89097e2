package get_available_slots

import "fmt"

// validateRequest checks the request fields
func validateRequest(req *Request) error {
	if req.StaffID == "" {
		return fmt.Errorf("%w: staff id is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}
