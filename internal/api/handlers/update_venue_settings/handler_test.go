package update_venue_settings

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/settings"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/settings/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubService struct {
	venueID int64
	req     *models.UpdateSettingsRequest
	err     error
}

func (s *stubService) Update(_ context.Context, venueID int64, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.venueID, s.req = venueID, req
	if s.err != nil {
		return nil, s.err
	}
	return &models.SettingsResponse{VenueID: venueID}, nil
}

func serve(svc SettingsService, path, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Handle("/venues/{venueId}/settings", middleware.Auth(http.HandlerFunc(NewHandler(svc, nopLogger{}).Handle)))

	req := httptest.NewRequest(http.MethodPut, path, strings.NewReader(body))
	req.Header.Set(middleware.HeaderUserID, "1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	svc := &stubService{}

	rec := serve(svc, "/venues/4/settings", `{"pendingReviewMinutes":0}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(4), svc.venueID)
	require.NotNil(t, svc.req.PendingReviewMinutes)
	assert.Equal(t, 0, *svc.req.PendingReviewMinutes)
	assert.Nil(t, svc.req.PendingWarningMinutes)
}

func TestHandle_Errors(t *testing.T) {
	rec := serve(&stubService{}, "/venues/abc/settings", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(&stubService{}, "/venues/4/settings", `{"unknown":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(&stubService{err: fmt.Errorf("%w: x", settings.ErrInvalidThreshold)}, "/venues/4/settings", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(&stubService{err: settings.ErrInternal}, "/venues/4/settings", `{}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
