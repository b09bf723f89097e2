package models

import (
	"time"

	"github.com/mondihair/MH-BookingService/internal/domain"
)

// Request models

// CreateClosureRequest blocks a date or a time window for a staff member
type CreateClosureRequest struct {
	StaffID   string    `json:"staffId"`
	Date      time.Time `json:"date"`
	Kind      string    `json:"kind"` // "full_day" or "time_range"
	StartTime *string   `json:"startTime,omitempty"`
	EndTime   *string   `json:"endTime,omitempty"`
}

// Response models

// ClosureResponse one closure as returned to clients
type ClosureResponse struct {
	ID        int64   `json:"id"`
	StaffID   string  `json:"staffId"`
	Date      string  `json:"date"` // "2026-03-02"
	Kind      string  `json:"kind"`
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// ClosureListResponse list of closures
type ClosureListResponse struct {
	Closures []ClosureResponse `json:"closures"`
	Total    int               `json:"total"`
}

// FromDomainClosure converts a domain closure to the response model
func FromDomainClosure(c *domain.Closure) *ClosureResponse {
	resp := &ClosureResponse{
		ID:        c.ID,
		StaffID:   c.StaffID,
		Date:      c.ClosureDate.Format(domain.DateFormat),
		Kind:      string(c.Kind),
		CreatedAt: c.CreatedAt,
	}
	if c.StartTime != nil {
		s := c.StartTime.String()
		resp.StartTime = &s
	}
	if c.EndTime != nil {
		e := c.EndTime.String()
		resp.EndTime = &e
	}
	return resp
}

// FromDomainClosureList converts a list of domain closures
func FromDomainClosureList(closures []*domain.Closure) *ClosureListResponse {
	result := &ClosureListResponse{
		Closures: make([]ClosureResponse, 0, len(closures)),
		Total:    len(closures),
	}
	for _, c := range closures {
		result.Closures = append(result.Closures, *FromDomainClosure(c))
	}
	return result
}
