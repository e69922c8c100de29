package domain

import "time"

// BookingStatus represents the status of a booking on the Roomly platform
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents a reservation held by the remote platform.
// The gateway only ever holds a snapshot: the platform is the authority
// and every local copy must be treated as possibly stale.
type Booking struct {
	ID         int64
	ResourceID int64
	OfferingID int64
	LocationID int64

	// StartsAt/EndsAt carry an explicit UTC offset, e.g. 2025-01-15T09:00:00+08:00
	StartsAt time.Time
	EndsAt   time.Time

	Price  float64
	Status BookingStatus

	CustomerID    string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Notes         *string
	ImageURL      *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its time window
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// Overlaps reports whether the half-open interval [start, end) intersects
// this booking's window. Bookings that merely touch at a boundary do not
// overlap.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return start.Before(b.EndsAt) && end.After(b.StartsAt)
}
