package domain

import "github.com/m04kA/RMS-BookingGateway/pkg/types"

// Default configuration values
const (
	DefaultGranularityMinutes = 15
	DefaultTimeZone           = "Asia/Hong_Kong"

	// Operating window applied to validation and to repair-created blocks
	DefaultOperatingStart types.TimeString = "06:00"
	DefaultOperatingEnd   types.TimeString = "23:00"

	// Full-day window used by the last-resort repair step
	FullDayStart types.TimeString = "00:00"
	FullDayEnd   types.TimeString = "23:59"
)

// Repair sequencer tuning
const (
	// BulkRepairDays how many calendar days ahead the bulk repair step covers
	BulkRepairDays = 30
)

// Time and date formats
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
