package get_staff

import (
	"github.com/mondihair/MH-BookingService/internal/catalog"
)

// ServiceResponse one offered service
type ServiceResponse struct {
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
	Description     string  `json:"description,omitempty"`
}

// StaffResponse one staff member with hours and services
type StaffResponse struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	SlotMinutes int                 `json:"slotMinutes"`
	Services    []string            `json:"services"`
	Week        map[string][]string `json:"week"`
}

// CatalogResponse the public catalog listing
type CatalogResponse struct {
	Staff    []StaffResponse   `json:"staff"`
	Services []ServiceResponse `json:"services"`
}

var weekdayKeys = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// FromCatalog converts the catalog snapshot into the HTTP model
func FromCatalog(c *catalog.Catalog) *CatalogResponse {
	resp := &CatalogResponse{
		Staff:    make([]StaffResponse, 0),
		Services: make([]ServiceResponse, 0),
	}

	for _, svc := range c.Services() {
		resp.Services = append(resp.Services, ServiceResponse{
			Name:            svc.Name,
			Price:           svc.Price,
			DurationMinutes: svc.DurationMinutes,
			Description:     svc.Description,
		})
	}

	for _, staff := range c.Staff() {
		resp.Staff = append(resp.Staff, StaffResponse{
			ID:          staff.ID,
			Name:        staff.Name,
			SlotMinutes: staff.SlotMinutes,
			Services:    staff.Services,
			Week:        weekToMap(staff.Week),
		})
	}

	return resp
}

func weekToMap(week catalog.Week) map[string][]string {
	days := []catalog.DaySchedule{
		week.Monday, week.Tuesday, week.Wednesday, week.Thursday,
		week.Friday, week.Saturday, week.Sunday,
	}

	result := make(map[string][]string, len(days))
	for i, day := range days {
		ranges := make([]string, 0, len(day.Ranges))
		if !day.Closed {
			for _, r := range day.Ranges {
				ranges = append(ranges, r.Start.String()+"-"+r.End.String())
			}
		}
		result[weekdayKeys[i]] = ranges
	}
	return result
}
