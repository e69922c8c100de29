package list_bookings

import (
	"time"

	"github.com/m04kA/RMS-BookingGateway/internal/domain"
)

// BookingsResponse HTTP response model
type BookingsResponse struct {
	ResourceID int64     `json:"resourceId"`
	Date       string    `json:"date"`
	Bookings   []Booking `json:"bookings"`
}

// Booking модель бронирования в ответе
type Booking struct {
	ID            int64   `json:"id"`
	ResourceID    int64   `json:"resourceId"`
	OfferingID    int64   `json:"offeringId"`
	LocationID    int64   `json:"locationId"`
	StartsAt      string  `json:"startsAt"`
	EndsAt        string  `json:"endsAt"`
	Price         float64 `json:"price"`
	Status        string  `json:"status"`
	CustomerID    string  `json:"customerId"`
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerPhone string  `json:"customerPhone"`
	Notes         *string `json:"notes,omitempty"`
	ImageURL      *string `json:"imageUrl,omitempty"`
}

// FromDomain конвертирует доменные бронирования в HTTP response
func FromDomain(resourceID int64, date time.Time, bookings []domain.Booking) *BookingsResponse {
	result := make([]Booking, len(bookings))
	for i, b := range bookings {
		result[i] = Booking{
			ID:            b.ID,
			ResourceID:    b.ResourceID,
			OfferingID:    b.OfferingID,
			LocationID:    b.LocationID,
			StartsAt:      b.StartsAt.Format(time.RFC3339),
			EndsAt:        b.EndsAt.Format(time.RFC3339),
			Price:         b.Price,
			Status:        string(b.Status),
			CustomerID:    b.CustomerID,
			CustomerName:  b.CustomerName,
			CustomerEmail: b.CustomerEmail,
			CustomerPhone: b.CustomerPhone,
			Notes:         b.Notes,
			ImageURL:      b.ImageURL,
		}
	}

	return &BookingsResponse{
		ResourceID: resourceID,
		Date:       date.Format(domain.DateFormat),
		Bookings:   result,
	}
}
