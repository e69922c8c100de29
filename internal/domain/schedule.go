package domain

import (
	"strings"
	"time"

	"github.com/m04kA/RMS-BookingGateway/pkg/types"
)

// Weekday is the platform's weekday enum (lowercase English names)
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// WeekdayOf maps a calendar date to the platform's weekday enum
func WeekdayOf(date time.Time) Weekday {
	return Weekday(strings.ToLower(date.Weekday().String()))
}

// ScheduleBlock is a recurring weekly availability window for a resource.
// A resource's full weekly availability is the union of its blocks.
type ScheduleBlock struct {
	ID         int64
	ResourceID int64
	LocationID int64
	Weekday    Weekday
	StartTime  types.TimeString
	EndTime    types.TimeString
}

// CoversWeekday reports whether the block applies to the given date's weekday
func (b *ScheduleBlock) CoversWeekday(date time.Time) bool {
	return b.Weekday == WeekdayOf(date)
}

// RecurringSchedule is the date-range envelope scoping which calendar dates
// a resource's schedule blocks apply to. A resource has at most one active
// recurring schedule in the flows this gateway touches.
type RecurringSchedule struct {
	ID         int64
	ResourceID int64
	StartDate  time.Time
	EndDate    time.Time
	IsActive   bool
}

// Covers reports whether the envelope includes the given date
func (r *RecurringSchedule) Covers(date time.Time) bool {
	if !r.IsActive {
		return false
	}
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	start := time.Date(r.StartDate.Year(), r.StartDate.Month(), r.StartDate.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(r.EndDate.Year(), r.EndDate.Month(), r.EndDate.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(start) && !d.After(end)
}
