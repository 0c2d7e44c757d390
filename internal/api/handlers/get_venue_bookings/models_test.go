package get_venue_bookings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToServiceRequest(t *testing.T) {
	req, err := ToServiceRequest(3, 7, "2025-03-10T00:00:00Z", "2025-03-11T00:00:00+03:00", "pending, paid,", "true")
	require.NoError(t, err)

	assert.Equal(t, int64(3), req.VenueID)
	assert.Equal(t, int64(7), req.UserID)
	require.NotNil(t, req.From)
	require.NotNil(t, req.To)
	assert.Equal(t, 21, req.To.UTC().Hour())
	assert.Equal(t, []string{"pending", "paid"}, req.Statuses)
	assert.True(t, req.IncludeCancelled)
}

func TestToServiceRequest_Empty(t *testing.T) {
	req, err := ToServiceRequest(3, 7, "", "", "", "")
	require.NoError(t, err)

	assert.Nil(t, req.From)
	assert.Nil(t, req.To)
	assert.Empty(t, req.Statuses)
	assert.False(t, req.IncludeCancelled)
}

func TestToServiceRequest_Invalid(t *testing.T) {
	_, err := ToServiceRequest(3, 7, "2025-03-10", "", "", "")
	assert.Error(t, err)

	_, err = ToServiceRequest(3, 7, "", "", "", "maybe")
	assert.Error(t, err)
}
