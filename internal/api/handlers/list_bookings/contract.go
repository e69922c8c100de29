package list_bookings

import (
	"context"
	"time"

	"github.com/m04kA/RMS-BookingGateway/internal/domain"
)

type BookingService interface {
	List(ctx context.Context, resourceID int64, date time.Time) ([]domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
