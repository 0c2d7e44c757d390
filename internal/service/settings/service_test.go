package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/settings/models"
	"github.com/m04kA/SMC-VenueBookingService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type memRepo struct {
	items map[int64]domain.VenueSettings
	err   error
}

func (r *memRepo) GetByVenueID(_ context.Context, venueID int64) (*domain.VenueSettings, error) {
	if r.err != nil {
		return nil, r.err
	}
	s, ok := r.items[venueID]
	if !ok {
		return nil, settingsRepo.ErrSettingsNotFound
	}
	return &s, nil
}

func (r *memRepo) Upsert(_ context.Context, s *domain.VenueSettings) error {
	r.items[s.VenueID] = *s
	return nil
}

func TestService_GetDefaults(t *testing.T) {
	svc := NewService(&memRepo{items: map[int64]domain.VenueSettings{}}, nopLogger{})

	resp, err := svc.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, resp.IsDefault)
	assert.Equal(t, domain.DefaultPendingReviewMinutes, resp.PendingReviewMinutes)
}

func TestService_UpdatePartial(t *testing.T) {
	repo := &memRepo{items: map[int64]domain.VenueSettings{}}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.Update(context.Background(), 7, &models.UpdateSettingsRequest{
		PendingReviewMinutes: ptr.Ptr(60),
	})
	require.NoError(t, err)
	assert.False(t, resp.IsDefault)
	assert.Equal(t, 60, resp.PendingReviewMinutes)
	assert.Equal(t, domain.DefaultPendingBeforeStartMinutes, resp.PendingBeforeStartMinutes)

	resp, err = svc.Update(context.Background(), 7, &models.UpdateSettingsRequest{
		PendingWarningMinutes: ptr.Ptr(0),
	})
	require.NoError(t, err)
	assert.Equal(t, 60, resp.PendingReviewMinutes)
	assert.Equal(t, 0, resp.PendingWarningMinutes)
	assert.Equal(t, 0, repo.items[7].PendingWarningMinutes)
}

func TestService_UpdateRejectsNegative(t *testing.T) {
	repo := &memRepo{items: map[int64]domain.VenueSettings{}}
	svc := NewService(repo, nopLogger{})

	_, err := svc.Update(context.Background(), 7, &models.UpdateSettingsRequest{
		PendingBeforeStartMinutes: ptr.Ptr(-1),
	})
	assert.ErrorIs(t, err, ErrInvalidThreshold)
	assert.Empty(t, repo.items)
}

func TestService_RepositoryError(t *testing.T) {
	svc := NewService(&memRepo{err: errors.New("timeout")}, nopLogger{})

	_, err := svc.Get(context.Background(), 7)
	assert.ErrorIs(t, err, ErrInternal)
}
