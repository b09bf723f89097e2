package create_booking

import (
	"errors"
	"net/http"

	"github.com/mondihair/MH-BookingService/internal/api/handlers"
	createBooking "github.com/mondihair/MH-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "μη έγκυρο σώμα αιτήματος"
	msgInvalidDateOrTime  = "μη έγκυρη μορφή ημερομηνίας ή ώρας, αναμένεται YYYY-MM-DD και HH:MM"
	msgSlotNotAvailable   = "το επιλεγμένο ραντεβού δεν είναι διαθέσιμο"
	msgStaffNotFound      = "ο κομμωτής δεν βρέθηκε"
	msgServiceNotFound    = "η υπηρεσία δεν βρέθηκε"
	msgServiceNotOffered  = "ο κομμωτής δεν προσφέρει αυτή την υπηρεσία"
	msgInvalidPhone       = "μη έγκυρος αριθμός τηλεφώνου"
	msgInvalidDate        = "μη έγκυρη ημερομηνία ραντεβού"
	msgStaffClosed        = "ο κομμωτής δεν εργάζεται αυτή την ημέρα"
	msgInvalidTimeSlot    = "μη έγκυρη ώρα ραντεβού"
	msgInvalidInput       = "μη έγκυρα στοιχεία κράτησης"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: staff=%s date=%s slot=%s",
				req.StaffID, req.BookingDate, req.TimeSlot)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrStaffNotFound):
			h.logger.Warn("POST /bookings - Staff not found: staff=%s", req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service=%q", req.ServiceName)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrServiceNotOffered):
			h.logger.Warn("POST /bookings - Service not offered: staff=%s service=%q", req.StaffID, req.ServiceName)
			handlers.RespondBadRequest(w, msgServiceNotOffered)

		case errors.Is(err, createBooking.ErrInvalidPhone):
			h.logger.Warn("POST /bookings - Invalid phone: staff=%s", req.StaffID)
			handlers.RespondBadRequest(w, msgInvalidPhone)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid date: staff=%s date=%s", req.StaffID, req.BookingDate)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createBooking.ErrStaffClosed):
			h.logger.Warn("POST /bookings - Staff closed: staff=%s date=%s", req.StaffID, req.BookingDate)
			handlers.RespondBadRequest(w, msgStaffClosed)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /bookings - Invalid time slot: staff=%s slot=%s", req.StaffID, req.TimeSlot)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: staff=%s error=%v", req.StaffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d staff=%s date=%s slot=%s",
		result.ID, result.StaffID, req.BookingDate, req.TimeSlot)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
