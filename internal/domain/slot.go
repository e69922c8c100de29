package domain

import "github.com/m04kA/RMS-BookingGateway/pkg/types"

// AvailabilitySlot is a derived, UI-facing candidate booking time computed
// from schedule blocks and existing bookings for one date. Never persisted
// and never cached beyond the current request.
type AvailabilitySlot struct {
	StartTime       types.TimeString
	DurationMinutes int
	IsBooked        bool
	IsPast          bool
}

// Available returns true iff the slot is neither booked nor in the past
func (s *AvailabilitySlot) Available() bool {
	return !s.IsBooked && !s.IsPast
}
