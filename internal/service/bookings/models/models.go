package models

import (
	"errors"
	"time"

	"github.com/mondihair/MH-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus is returned for an unknown booking status string
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request models

// GetStaffBookingsRequest filters a staff member's bookings
type GetStaffBookingsRequest struct {
	StaffID         string     `json:"staffId"`
	StartDate       *time.Time `json:"startDate,omitempty"`
	EndDate         *time.Time `json:"endDate,omitempty"`
	Status          *string    `json:"status,omitempty"`
	IncludeInactive bool       `json:"includeInactive,omitempty"`
}

// ToDomainFilter converts the request into the storage filter
func (r *GetStaffBookingsRequest) ToDomainFilter() (domain.StaffBookingsFilter, error) {
	filter := domain.StaffBookingsFilter{
		StaffID:         r.StaffID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response models

// BookingResponse one booking as returned to clients
type BookingResponse struct {
	ID              int64  `json:"id"`
	StaffID         string `json:"staffId"`
	CustomerName    string `json:"customerName"`
	CustomerPhone   string `json:"customerPhone"`
	BookingDate     string `json:"bookingDate"` // "2026-03-02"
	TimeSlot        string `json:"timeSlot"`    // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`

	ServiceName  string  `json:"serviceName"`
	ServicePrice float64 `json:"servicePrice"`
	Notes        *string `json:"notes,omitempty"`

	ConfirmationSent bool    `json:"confirmationSent"`
	ReminderSent     bool    `json:"reminderSent"`
	CancelledAt      *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse list of bookings
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// FromDomainBooking converts a domain booking to the response model
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	resp := &BookingResponse{
		ID:               b.ID,
		StaffID:          b.StaffID,
		CustomerName:     b.CustomerName,
		CustomerPhone:    b.CustomerPhoneE164,
		BookingDate:      b.BookingDate.Format(domain.DateFormat),
		TimeSlot:         b.TimeSlot.String(),
		DurationMinutes:  b.DurationMinutes,
		Status:           string(b.Status),
		ServiceName:      b.ServiceName,
		ServicePrice:     b.ServicePrice,
		Notes:            b.Notes,
		ConfirmationSent: b.ConfirmationSMSSent,
		ReminderSent:     b.ReminderSent,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelled := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelled
	}

	return resp
}

// FromDomainBookingList converts a list of domain bookings
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
		Total:    len(bookings),
	}
	for _, b := range bookings {
		result.Bookings = append(result.Bookings, *FromDomainBooking(b))
	}
	return result
}

// ToDomainBookingStatus parses a status string
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	switch domain.BookingStatus(s) {
	case domain.StatusPending, domain.StatusConfirmed, domain.StatusCancelled:
		return domain.BookingStatus(s), nil
	default:
		return "", ErrInvalidStatus
	}
}
