package get_available_slots

import (
	"time"

	"github.com/mondihair/MH-BookingService/internal/domain"
	getAvailableSlots "github.com/mondihair/MH-BookingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	StaffID     string   `json:"staffId"`
	StaffName   string   `json:"staffName"`
	Date        string   `json:"date"`
	SlotMinutes int      `json:"slotMinutes"`
	Slots       []string `json:"slots"`
}

// ToUseCaseRequest builds the use case request from URL parts
func ToUseCaseRequest(staffID, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}
	return &getAvailableSlots.Request{
		StaffID: staffID,
		Date:    date,
	}, nil
}

// FromUseCaseResponse converts the use case response into the HTTP model
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, s.String())
	}
	return &AvailableSlotsResponse{
		StaffID:     resp.StaffID,
		StaffName:   resp.StaffName,
		Date:        resp.Date.Format(domain.DateFormat),
		SlotMinutes: resp.SlotMinutes,
		Slots:       slots,
	}
}
