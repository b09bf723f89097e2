package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/mondihair/MH-BookingService/internal/catalog"
	"github.com/mondihair/MH-BookingService/internal/domain"
	"github.com/mondihair/MH-BookingService/pkg/types"
)

// validateRequest checks the request fields before any store access
func validateRequest(req *Request) error {
	if req.StaffID == "" {
		return fmt.Errorf("%w: staff id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.CustomerName) == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}
	if len(req.CustomerName) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customer name exceeds %d characters", ErrInvalidInput, domain.MaxCustomerNameLength)
	}
	if strings.TrimSpace(req.CustomerPhone) == "" {
		return fmt.Errorf("%w: customer phone is required", ErrInvalidInput)
	}
	if req.ServiceName == "" {
		return fmt.Errorf("%w: service name is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.TimeSlot.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	return nil
}

// validateDate rejects dates before today in the business timezone
func validateDate(date, now time.Time) error {
	if date.Format(domain.DateFormat) < now.Format(domain.DateFormat) {
		return fmt.Errorf("%w: date %s is in the past", ErrInvalidDate, date.Format(domain.DateFormat))
	}
	return nil
}

// validateSlot checks that the slot sits on the staff member's grid and
// inside one of the day's working ranges
func validateSlot(day catalog.DaySchedule, stepMinutes int, slot types.TimeString) error {
	if day.Closed || len(day.Ranges) == 0 {
		return ErrStaffClosed
	}

	inRange := false
	for _, r := range day.Ranges {
		if r.Contains(slot) {
			inRange = true
			break
		}
	}
	if !inRange {
		return fmt.Errorf("%w: %s is outside working hours", ErrInvalidTimeSlot, slot)
	}

	// The grid is anchored at the earliest range start.
	anchor := day.Ranges[0].Start
	for _, r := range day.Ranges[1:] {
		if r.Start.IsBefore(anchor) {
			anchor = r.Start
		}
	}
	anchorMin, err := anchor.Minutes()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	slotMin, err := slot.Minutes()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}
	if (slotMin-anchorMin)%stepMinutes != 0 {
		return fmt.Errorf("%w: %s is off the %d-minute grid", ErrInvalidTimeSlot, slot, stepMinutes)
	}

	return nil
}

// validateNotPast rejects slots at or before the current time when booking
// for today
func validateNotPast(date time.Time, slot types.TimeString, now time.Time) error {
	if date.Format(domain.DateFormat) != now.Format(domain.DateFormat) {
		return nil
	}
	if !slot.IsAfter(types.NewTimeString(now)) {
		return fmt.Errorf("%w: slot %s has already passed", ErrInvalidTimeSlot, slot)
	}
	return nil
}
