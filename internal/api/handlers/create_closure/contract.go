package create_closure

import (
	"context"

	"github.com/mondihair/MH-BookingService/internal/service/closures/models"
)

type ClosuresService interface {
	Create(ctx context.Context, req *models.CreateClosureRequest) (*models.ClosureResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
