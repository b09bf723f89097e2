package get_closures

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/mondihair/MH-BookingService/internal/api/handlers"
	"github.com/mondihair/MH-BookingService/internal/domain"
	"github.com/mondihair/MH-BookingService/internal/service/closures"
)

const (
	msgMissingDate   = "η παράμετρος date είναι υποχρεωτική"
	msgInvalidDate   = "μη έγκυρη μορφή ημερομηνίας, αναμένεται YYYY-MM-DD"
	msgStaffNotFound = "ο κομμωτής δεν βρέθηκε"
)

type Handler struct {
	service ClosuresService
	logger  Logger
}

func NewHandler(service ClosuresService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/staff/{staffId}/closures
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffID := mux.Vars(r)["staffId"]

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /staff/{id}/closures - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /staff/{id}/closures - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.GetByStaffAndDate(r.Context(), staffID, date)
	if err != nil {
		switch {
		case errors.Is(err, closures.ErrStaffNotFound):
			h.logger.Warn("GET /staff/{id}/closures - Staff not found: staff=%s", staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		default:
			h.logger.Error("GET /staff/{id}/closures - Failed: staff=%s error=%v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
