package bookings

import (
	"context"
	"time"

	"github.com/m04kA/RMS-BookingGateway/internal/domain"
	"github.com/m04kA/RMS-BookingGateway/internal/integrations/roomly"
)

// BookingClient интерфейс клиента Roomly API для работы с бронированиями
type BookingClient interface {
	ListBookings(ctx context.Context, resourceID int64, date time.Time) ([]roomly.Booking, error)
	CancelBooking(ctx context.Context, bookingID int64) error
}

// BookingCache интерфейс кэша списков бронирований.
// Ядро сообщает о мутациях через Invalidate, не залезая в хранилище ключей.
type BookingCache interface {
	Get(ctx context.Context, resourceID int64, date time.Time) ([]domain.Booking, bool)
	Set(ctx context.Context, resourceID int64, date time.Time, bookings []domain.Booking)
	Invalidate(ctx context.Context, resourceID int64)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
