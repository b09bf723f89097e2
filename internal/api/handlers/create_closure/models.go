package create_closure

import (
	"time"

	"github.com/mondihair/MH-BookingService/internal/domain"
	"github.com/mondihair/MH-BookingService/internal/service/closures/models"
)

// CreateClosureRequest HTTP request model
type CreateClosureRequest struct {
	Date      string  `json:"date"` // "2026-03-02"
	Kind      string  `json:"kind"` // "full_day" or "time_range"
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
}

// ToServiceRequest converts the HTTP request into the service model
func (r *CreateClosureRequest) ToServiceRequest(staffID string) (*models.CreateClosureRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}
	return &models.CreateClosureRequest{
		StaffID:   staffID,
		Date:      date,
		Kind:      r.Kind,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
	}, nil
}
