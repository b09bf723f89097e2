package create_closure

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mondihair/MH-BookingService/internal/api/handlers"
	"github.com/mondihair/MH-BookingService/internal/service/closures"
)

const (
	msgInvalidRequestBody = "μη έγκυρο σώμα αιτήματος"
	msgInvalidDate        = "μη έγκυρη μορφή ημερομηνίας, αναμένεται YYYY-MM-DD"
	msgStaffNotFound      = "ο κομμωτής δεν βρέθηκε"
	msgInvalidClosure     = "μη έγκυρα στοιχεία αργίας"
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

// Handle POST /api/v1/staff/{staffId}/closures
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffID := mux.Vars(r)["staffId"]

	var req CreateClosureRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /staff/{id}/closures - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(staffID)
	if err != nil {
		h.logger.Warn("POST /staff/{id}/closures - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.Create(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, closures.ErrStaffNotFound):
			h.logger.Warn("POST /staff/{id}/closures - Staff not found: staff=%s", staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, closures.ErrInvalidInput):
			h.logger.Warn("POST /staff/{id}/closures - Invalid closure: staff=%s error=%v", staffID, err)
			handlers.RespondBadRequest(w, msgInvalidClosure)

		default:
			h.logger.Error("POST /staff/{id}/closures - Failed: staff=%s error=%v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /staff/{id}/closures - Closure created: id=%d staff=%s date=%s",
		result.ID, staffID, result.Date)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
