package closures

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mondihair/MH-BookingService/internal/catalog"
	"github.com/mondihair/MH-BookingService/internal/domain"
	closureRepo "github.com/mondihair/MH-BookingService/internal/infra/storage/closure"
	"github.com/mondihair/MH-BookingService/internal/service/closures/models"
	"github.com/mondihair/MH-BookingService/pkg/ptr"
)

type mockClosureRepo struct {
	createFn func(ctx context.Context, closure *domain.Closure) (*domain.Closure, error)
	getFn    func(ctx context.Context, staffID string, date time.Time) ([]*domain.Closure, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (m *mockClosureRepo) Create(ctx context.Context, closure *domain.Closure) (*domain.Closure, error) {
	return m.createFn(ctx, closure)
}

func (m *mockClosureRepo) GetByStaffAndDate(ctx context.Context, staffID string, date time.Time) ([]*domain.Closure, error) {
	return m.getFn(ctx, staffID, date)
}

func (m *mockClosureRepo) Delete(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func testCatalog() *catalog.Catalog {
	haircut := &catalog.Service{Name: "Haircut", Price: 13, DurationMinutes: 30}
	mondi := &catalog.StaffMember{ID: "mondi", Name: "Mondi", SlotMinutes: 20, Services: []string{"Haircut"}}
	return catalog.New([]*catalog.Service{haircut}, []*catalog.StaffMember{mondi})
}

var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func TestCreate_FullDay(t *testing.T) {
	repo := &mockClosureRepo{
		createFn: func(ctx context.Context, closure *domain.Closure) (*domain.Closure, error) {
			assert.Equal(t, domain.ClosureFullDay, closure.Kind)
			assert.Nil(t, closure.StartTime)
			created := *closure
			created.ID = 5
			return &created, nil
		},
	}
	svc := NewService(repo, testCatalog(), nopLogger{})

	resp, err := svc.Create(context.Background(), &models.CreateClosureRequest{
		StaffID: "mondi",
		Date:    monday,
		Kind:    "full_day",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, "2026-03-02", resp.Date)
	assert.Nil(t, resp.StartTime)
}

func TestCreate_TimeRange(t *testing.T) {
	repo := &mockClosureRepo{
		createFn: func(ctx context.Context, closure *domain.Closure) (*domain.Closure, error) {
			require.NotNil(t, closure.StartTime)
			require.NotNil(t, closure.EndTime)
			assert.Equal(t, "17:00", closure.StartTime.String())
			assert.Equal(t, "19:00", closure.EndTime.String())
			created := *closure
			created.ID = 6
			return &created, nil
		},
	}
	svc := NewService(repo, testCatalog(), nopLogger{})

	resp, err := svc.Create(context.Background(), &models.CreateClosureRequest{
		StaffID:   "mondi",
		Date:      monday,
		Kind:      "time_range",
		StartTime: ptr.Ptr("17:00"),
		EndTime:   ptr.Ptr("19:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "17:00", *resp.StartTime)
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(&mockClosureRepo{}, testCatalog(), nopLogger{})

	cases := []struct {
		name string
		req  *models.CreateClosureRequest
		want error
	}{
		{
			name: "unknown staff",
			req:  &models.CreateClosureRequest{StaffID: "ghost", Date: monday, Kind: "full_day"},
			want: ErrStaffNotFound,
		},
		{
			name: "missing date",
			req:  &models.CreateClosureRequest{StaffID: "mondi", Kind: "full_day"},
			want: ErrInvalidInput,
		},
		{
			name: "unknown kind",
			req:  &models.CreateClosureRequest{StaffID: "mondi", Date: monday, Kind: "holiday"},
			want: ErrInvalidInput,
		},
		{
			name: "full day with times",
			req: &models.CreateClosureRequest{
				StaffID: "mondi", Date: monday, Kind: "full_day",
				StartTime: ptr.Ptr("10:00"), EndTime: ptr.Ptr("12:00"),
			},
			want: ErrInvalidInput,
		},
		{
			name: "time range without times",
			req:  &models.CreateClosureRequest{StaffID: "mondi", Date: monday, Kind: "time_range"},
			want: ErrInvalidInput,
		},
		{
			name: "inverted range",
			req: &models.CreateClosureRequest{
				StaffID: "mondi", Date: monday, Kind: "time_range",
				StartTime: ptr.Ptr("19:00"), EndTime: ptr.Ptr("17:00"),
			},
			want: ErrInvalidInput,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestGetByStaffAndDate(t *testing.T) {
	repo := &mockClosureRepo{
		getFn: func(ctx context.Context, staffID string, date time.Time) ([]*domain.Closure, error) {
			return []*domain.Closure{
				{ID: 1, StaffID: staffID, ClosureDate: date, Kind: domain.ClosureFullDay},
			}, nil
		},
	}
	svc := NewService(repo, testCatalog(), nopLogger{})

	resp, err := svc.GetByStaffAndDate(context.Background(), "mondi", monday)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)

	_, err = svc.GetByStaffAndDate(context.Background(), "ghost", monday)
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestDelete(t *testing.T) {
	repo := &mockClosureRepo{
		deleteFn: func(ctx context.Context, id int64) error {
			if id == 404 {
				return closureRepo.ErrClosureNotFound
			}
			return nil
		},
	}
	svc := NewService(repo, testCatalog(), nopLogger{})

	assert.NoError(t, svc.Delete(context.Background(), 1))
	assert.ErrorIs(t, svc.Delete(context.Background(), 404), ErrClosureNotFound)
}
