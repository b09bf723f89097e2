package get_staff

import (
	"net/http"

	"github.com/mondihair/MH-BookingService/internal/api/handlers"
	"github.com/mondihair/MH-BookingService/internal/catalog"
)

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Handler serves the public catalog listing. The catalog is an immutable
// startup snapshot, so the response is assembled once.
type Handler struct {
	response *CatalogResponse
	logger   Logger
}

func NewHandler(cat *catalog.Catalog, logger Logger) *Handler {
	return &Handler{
		response: FromCatalog(cat),
		logger:   logger,
	}
}

// Handle GET /api/v1/staff
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.response)
}
