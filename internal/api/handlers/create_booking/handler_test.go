package create_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	createBooking "github.com/mondihair/MH-BookingService/internal/usecase/create_booking"
)

type mockUseCase struct {
	executeFn func(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error)
}

func (m *mockUseCase) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	return m.executeFn(ctx, req)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

const validBody = `{
	"staffId": "mondi",
	"customerName": "Μαρία",
	"customerPhone": "6944123456",
	"serviceName": "Haircut",
	"bookingDate": "2026-03-02",
	"timeSlot": "10:00"
}`

func TestHandle_Created(t *testing.T) {
	uc := &mockUseCase{
		executeFn: func(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
			assert.Equal(t, "mondi", req.StaffID)
			assert.Equal(t, "10:00", req.TimeSlot.String())
			return &createBooking.Response{
				ID:              42,
				StaffID:         "mondi",
				StaffName:       "Mondi",
				CustomerName:    req.CustomerName,
				CustomerPhone:   "+306944123456",
				ServiceName:     "Haircut",
				ServicePrice:    13,
				DurationMinutes: 30,
				Date:            req.Date,
				TimeSlot:        req.TimeSlot,
				Status:          "confirmed",
				CreatedAt:       time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
			}, nil
		},
	}
	h := NewHandler(uc, nopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(validBody))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "2026-03-02", resp.BookingDate)
	assert.Equal(t, "10:00", resp.TimeSlot)
	assert.Equal(t, "+306944123456", resp.CustomerPhone)
}

func TestHandle_SlotConflict(t *testing.T) {
	uc := &mockUseCase{
		executeFn: func(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
			return nil, createBooking.ErrSlotNotAvailable
		},
	}
	h := NewHandler(uc, nopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(validBody))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "δεν είναι διαθέσιμο")
}

func TestHandle_BadBody(t *testing.T) {
	uc := &mockUseCase{
		executeFn: func(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
			t.Fatal("use case must not run on a bad body")
			return nil, nil
		},
	}
	h := NewHandler(uc, nopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_BadDate(t *testing.T) {
	h := NewHandler(&mockUseCase{}, nopLogger{})

	body := strings.Replace(validBody, "2026-03-02", "02/03/2026", 1)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_NotFoundErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{name: "staff", err: createBooking.ErrStaffNotFound, code: http.StatusNotFound},
		{name: "service", err: createBooking.ErrServiceNotFound, code: http.StatusNotFound},
		{name: "not offered", err: createBooking.ErrServiceNotOffered, code: http.StatusBadRequest},
		{name: "phone", err: createBooking.ErrInvalidPhone, code: http.StatusBadRequest},
		{name: "closed", err: createBooking.ErrStaffClosed, code: http.StatusBadRequest},
		{name: "internal", err: createBooking.ErrInternal, code: http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := &mockUseCase{
				executeFn: func(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
					return nil, tc.err
				},
			}
			h := NewHandler(uc, nopLogger{})

			req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(validBody))
			rec := httptest.NewRecorder()
			h.Handle(rec, req)

			assert.Equal(t, tc.code, rec.Code)
		})
	}
}
