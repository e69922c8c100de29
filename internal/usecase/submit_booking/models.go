package submit_booking

import (
	"io"
	"time"

	"github.com/m04kA/RMS-BookingGateway/pkg/types"
)

// Attachment вложение бронирования (изображение)
type Attachment struct {
	Filename string
	Content  io.Reader
}

// Request модель запроса на создание бронирования
type Request struct {
	ResourceID int64
	OfferingID int64
	LocationID int64

	Date      time.Time        // дата бронирования (без времени)
	StartTime types.TimeString // "09:00"
	EndTime   types.TimeString // "10:00"

	Price float64

	CustomerID    string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Notes         *string

	Attachment *Attachment // опционально
}

// Response модель ответа с созданным бронированием
type Response struct {
	BookingID  int64
	ResourceID int64
	StartsAt   time.Time
	EndsAt     time.Time
	Price      float64
	Status     string
	ImageURL   *string
}
