package submit_booking

import (
	"io"
	"time"

	"github.com/m04kA/RMS-BookingGateway/internal/domain"
	submitBooking "github.com/m04kA/RMS-BookingGateway/internal/usecase/submit_booking"
	"github.com/m04kA/RMS-BookingGateway/pkg/types"
)

// SubmitBookingRequest HTTP request model
type SubmitBookingRequest struct {
	ResourceID    int64   `json:"resourceId"`
	OfferingID    int64   `json:"offeringId"`
	LocationID    int64   `json:"locationId"`
	BookingDate   string  `json:"bookingDate"` // "2025-10-15"
	StartTime     string  `json:"startTime"`   // "09:00"
	EndTime       string  `json:"endTime"`     // "10:00"
	Price         float64 `json:"price"`
	CustomerID    string  `json:"customerId"`
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerPhone string  `json:"customerPhone"`
	Notes         *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	BookingID  int64   `json:"bookingId"`
	ResourceID int64   `json:"resourceId"`
	StartsAt   string  `json:"startsAt"`
	EndsAt     string  `json:"endsAt"`
	Price      float64 `json:"price"`
	Status     string  `json:"status"`
	ImageURL   *string `json:"imageUrl,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SubmitBookingRequest) ToUseCaseRequest(imageName string, image io.Reader) (*submitBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	req := &submitBooking.Request{
		ResourceID:    r.ResourceID,
		OfferingID:    r.OfferingID,
		LocationID:    r.LocationID,
		Date:          bookingDate,
		StartTime:     startTime,
		EndTime:       endTime,
		Price:         r.Price,
		CustomerID:    r.CustomerID,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
		Notes:         r.Notes,
	}

	if image != nil {
		req.Attachment = &submitBooking.Attachment{
			Filename: imageName,
			Content:  image,
		}
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *submitBooking.Response) *BookingResponse {
	return &BookingResponse{
		BookingID:  resp.BookingID,
		ResourceID: resp.ResourceID,
		StartsAt:   resp.StartsAt.Format(time.RFC3339),
		EndsAt:     resp.EndsAt.Format(time.RFC3339),
		Price:      resp.Price,
		Status:     resp.Status,
		ImageURL:   resp.ImageURL,
	}
}
