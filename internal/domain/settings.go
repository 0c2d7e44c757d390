package domain

// VenueSettings per-venue thresholds used by automatic expiry of bookings.
// A zero value disables the corresponding rule.
type VenueSettings struct {
	VenueID                   int64
	PendingReviewMinutes      int // максимум рабочих минут в статусе pending
	PendingBeforeStartMinutes int // за сколько минут до начала pending должен быть решен
	PendingWarningMinutes     int // за сколько минут до автоотмены отправить предупреждение
}

// DefaultVenueSettings settings used when the venue has no explicit row
func DefaultVenueSettings(venueID int64) *VenueSettings {
	return &VenueSettings{
		VenueID:                   venueID,
		PendingReviewMinutes:      DefaultPendingReviewMinutes,
		PendingBeforeStartMinutes: DefaultPendingBeforeStartMinutes,
		PendingWarningMinutes:     DefaultPendingWarningMinutes,
	}
}

// HasReviewCutoff returns true if review time is limited
func (s *VenueSettings) HasReviewCutoff() bool {
	return s.PendingReviewMinutes > 0
}

// HasStartCutoff returns true if pending bookings must be resolved before start
func (s *VenueSettings) HasStartCutoff() bool {
	return s.PendingBeforeStartMinutes > 0
}

// HasWarning returns true if a warning precedes automatic cancellation
func (s *VenueSettings) HasWarning() bool {
	return s.PendingWarningMinutes > 0
}
