package get_closures

import (
	"context"
	"time"

	"github.com/mondihair/MH-BookingService/internal/service/closures/models"
)

type ClosuresService interface {
	GetByStaffAndDate(ctx context.Context, staffID string, date time.Time) (*models.ClosureListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
