package domain

// Resource represents a bookable room or piece of equipment.
// Owned by the remote platform; the gateway caches a read-only copy
// for the duration of a request.
type Resource struct {
	ID          int64
	LocationID  int64
	Name        string
	MaxBookings int // maximum simultaneous bookings
}

// Offering is a bookable service attached to a resource: carries duration,
// duration bounds and the bookable interval (slot granularity).
type Offering struct {
	ID         int64
	ResourceID int64
	Name       string

	// Durations are ISO-8601 strings on the wire (PT1H30M), minutes here
	DurationMinutes    int
	MinDurationMinutes int
	MaxDurationMinutes int

	// BookableIntervalMinutes is the slot granularity; 0 means the
	// platform default applies
	BookableIntervalMinutes int

	Price float64
}

// Granularity returns the offering's bookable interval, falling back to
// the system default when the platform did not set one.
func (o *Offering) Granularity() int {
	if o.BookableIntervalMinutes > 0 {
		return o.BookableIntervalMinutes
	}
	return DefaultGranularityMinutes
}

// Location is a physical site resources belong to. TimeZone is an IANA
// zone name resolved per-date into a UTC offset.
type Location struct {
	ID       int64
	Name     string
	TimeZone string
}

// Zone returns the location's IANA zone name, falling back to the
// deployment default when the platform record carries none.
func (l *Location) Zone() string {
	if l.TimeZone != "" {
		return l.TimeZone
	}
	return DefaultTimeZone
}
