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

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBookingService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-VenueBookingService/internal/usecase/create_booking"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubUseCase struct {
	got  *createBooking.Request
	resp *createBooking.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	s.got = req
	return s.resp, s.err
}

func serve(t *testing.T, uc CreateBookingUseCase, body string) (*httptest.ResponseRecorder, handlers.ErrorResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	req.Header.Set(middleware.HeaderUserID, "7")
	rec := httptest.NewRecorder()

	middleware.Auth(http.HandlerFunc(NewHandler(uc, nopLogger{}).Handle)).ServeHTTP(rec, req)

	var errResp handlers.ErrorResponse
	if rec.Code >= 400 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	}
	return rec, errResp
}

const validBody = `{"eventId":1,"venueId":2,"start":"2025-03-10T10:00:00Z","end":"2025-03-10T11:00:00Z"}`

func TestHandle_Created(t *testing.T) {
	start := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	uc := &stubUseCase{resp: &createBooking.Response{
		ID: 5, EventID: 1, VenueID: 2, StartAt: start, EndAt: start.Add(time.Hour),
		Status: "pending", CreatedBy: 7, CreatedAt: start,
	}}

	rec, _ := serve(t, uc, validBody)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(7), uc.got.CreatorID)
	assert.True(t, uc.got.Start.Equal(start))

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, "pending", resp.Status)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		err       error
		wantCode  int
		wantField string
	}{
		{
			name:     "malformed body",
			body:     `{"eventId":`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:      "bad end time",
			body:      `{"eventId":1,"venueId":2,"start":"2025-03-10T10:00:00Z","end":"11:00"}`,
			wantCode:  http.StatusBadRequest,
			wantField: createBooking.FieldEnd,
		},
		{
			name:      "validation error",
			body:      validBody,
			err:       &createBooking.ValidationError{Field: createBooking.FieldStart, Message: "m", Err: createBooking.ErrTooSoon},
			wantCode:  http.StatusBadRequest,
			wantField: createBooking.FieldStart,
		},
		{
			name:      "overlap",
			body:      validBody,
			err:       &createBooking.ValidationError{Field: createBooking.FieldStart, Message: "m", Err: createBooking.ErrOverlap},
			wantCode:  http.StatusConflict,
			wantField: createBooking.FieldStart,
		},
		{
			name:     "event not found",
			body:     validBody,
			err:      createBooking.ErrEventNotFound,
			wantCode: http.StatusNotFound,
		},
		{
			name:     "internal",
			body:     validBody,
			err:      createBooking.ErrInternal,
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, errResp := serve(t, &stubUseCase{err: tt.err}, tt.body)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantField, errResp.Field)
			assert.NotEmpty(t, errResp.Message)
		})
	}
}
