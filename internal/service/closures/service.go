package closures

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mondihair/MH-BookingService/internal/catalog"
	"github.com/mondihair/MH-BookingService/internal/domain"
	closureRepo "github.com/mondihair/MH-BookingService/internal/infra/storage/closure"
	"github.com/mondihair/MH-BookingService/internal/service/closures/models"
	"github.com/mondihair/MH-BookingService/pkg/types"
)

// Service handles admin management of staff closures
type Service struct {
	closureRepo ClosureRepository
	catalog     *catalog.Catalog
	logger      Logger
}

// NewService creates the closures service
func NewService(closureRepo ClosureRepository, cat *catalog.Catalog, logger Logger) *Service {
	return &Service{
		closureRepo: closureRepo,
		catalog:     cat,
		logger:      logger,
	}
}

// Create blocks a date or a time window for a staff member
func (s *Service) Create(ctx context.Context, req *models.CreateClosureRequest) (*models.ClosureResponse, error) {
	s.logger.Info("CreateClosure: staff=%s date=%s kind=%s",
		req.StaffID, req.Date.Format(domain.DateFormat), req.Kind)

	closure, err := s.buildClosure(req)
	if err != nil {
		s.logger.Warn("CreateClosure: validation failed: %v", err)
		return nil, err
	}

	created, err := s.closureRepo.Create(ctx, closure)
	if err != nil {
		s.logger.Error("CreateClosure: repository error for staff=%s: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: CreateClosure - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateClosure: created closure id=%d", created.ID)
	return models.FromDomainClosure(created), nil
}

// GetByStaffAndDate lists a staff member's closures on a date
func (s *Service) GetByStaffAndDate(ctx context.Context, staffID string, date time.Time) (*models.ClosureListResponse, error) {
	if _, ok := s.catalog.StaffByID(staffID); !ok {
		s.logger.Warn("GetClosures: staff id=%s not found", staffID)
		return nil, ErrStaffNotFound
	}
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	list, err := s.closureRepo.GetByStaffAndDate(ctx, staffID, date)
	if err != nil {
		s.logger.Error("GetClosures: repository error for staff=%s: %v", staffID, err)
		return nil, fmt.Errorf("%w: GetClosures - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainClosureList(list), nil
}

// Delete removes a closure
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("DeleteClosure: deleting closure id=%d", id)

	if err := s.closureRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, closureRepo.ErrClosureNotFound) {
			s.logger.Warn("DeleteClosure: closure id=%d not found", id)
			return ErrClosureNotFound
		}
		s.logger.Error("DeleteClosure: repository error for closure id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteClosure - repository error: %v", ErrInternal, err)
	}

	return nil
}

func (s *Service) buildClosure(req *models.CreateClosureRequest) (*domain.Closure, error) {
	if _, ok := s.catalog.StaffByID(req.StaffID); !ok {
		return nil, ErrStaffNotFound
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	closure := &domain.Closure{
		StaffID:     req.StaffID,
		ClosureDate: req.Date,
		Kind:        domain.ClosureKind(req.Kind),
	}

	switch closure.Kind {
	case domain.ClosureFullDay:
		if req.StartTime != nil || req.EndTime != nil {
			return nil, fmt.Errorf("%w: full_day closure takes no time range", ErrInvalidInput)
		}

	case domain.ClosureTimeRange:
		if req.StartTime == nil || req.EndTime == nil {
			return nil, fmt.Errorf("%w: time_range closure requires startTime and endTime", ErrInvalidInput)
		}
		start, err := types.NewTimeStringFromString(*req.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		end, err := types.NewTimeStringFromString(*req.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if !start.IsBefore(end) {
			return nil, fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
		}
		closure.StartTime = &start
		closure.EndTime = &end

	default:
		return nil, fmt.Errorf("%w: unknown closure kind %q", ErrInvalidInput, req.Kind)
	}

	return closure, nil
}
