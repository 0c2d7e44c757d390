package cancel_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/bookings/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubService struct {
	req *models.CancelBookingRequest
	err error
}

func (s *stubService) Cancel(_ context.Context, _ int64, req *models.CancelBookingRequest) error {
	s.req = req
	return s.err
}

func serve(svc BookingService, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Handle("/bookings/{bookingId}/cancel", middleware.Auth(http.HandlerFunc(NewHandler(svc, nopLogger{}).Handle)))

	req := httptest.NewRequest(http.MethodPatch, "/bookings/3/cancel", strings.NewReader(body))
	req.Header.Set(middleware.HeaderUserID, "9")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	svc := &stubService{}
	rec := serve(svc, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, int64(9), svc.req.UserID)
	assert.Empty(t, svc.req.CancellationReason)

	svc = &stubService{}
	rec = serve(svc, `{"cancellationReason":"  мероприятие перенесли "}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "мероприятие перенесли", svc.req.CancellationReason)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{bookings.ErrBookingNotFound, http.StatusNotFound},
		{bookings.ErrAccessDenied, http.StatusForbidden},
		{bookings.ErrCannotCancel, http.StatusConflict},
		{bookings.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		rec := serve(&stubService{err: tt.err}, "")
		assert.Equal(t, tt.want, rec.Code, tt.err.Error())
	}

	assert.Equal(t, http.StatusBadRequest, serve(&stubService{}, `{"cancellationReason":`).Code)
}
