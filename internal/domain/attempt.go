package domain

import (
	"time"

	"github.com/m04kA/RMS-BookingGateway/pkg/types"
)

// ReconcileAttempt captures one booking-submission attempt and the repair
// work done for it, for auditing. The journal is best-effort: it observes
// the workflow, it never drives it.
type ReconcileAttempt struct {
	ID         int64
	ResourceID int64

	BookingDate time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString

	// Category is the classified failure kind that triggered repair,
	// or "none" when the first submission succeeded
	Category string

	// RepairStep is how far the sequencer escalated ("", "no_schedule",
	// "exact_window")
	RepairStep string

	Success       bool
	FailureReason *string

	CreatedAt time.Time
}
