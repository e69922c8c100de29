package bookings

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/RMS-BookingGateway/internal/domain"
	"github.com/m04kA/RMS-BookingGateway/internal/integrations/roomly"
)

// Service сервис просмотра и отмены бронирований для дашборда.
// Списки читаются через кэш: платформенные данные в любом случае
// снапшот, короткий TTL здесь ничего не ухудшает.
type Service struct {
	client BookingClient
	cache  BookingCache
	logger Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(client BookingClient, cache BookingCache, logger Logger) *Service {
	return &Service{
		client: client,
		cache:  cache,
		logger: logger,
	}
}

// List возвращает бронирования ресурса на дату, сначала из кэша
func (s *Service) List(ctx context.Context, resourceID int64, date time.Time) ([]domain.Booking, error) {
	if cached, ok := s.cache.Get(ctx, resourceID, date); ok {
		s.logger.Info("List: cache hit for resource=%d date=%s", resourceID, date.Format(domain.DateFormat))
		return cached, nil
	}

	raw, err := s.client.ListBookings(ctx, resourceID, date)
	if err != nil {
		if roomly.IsKind(err, roomly.KindNotFound) {
			s.logger.Warn("List: resource=%d not found on platform", resourceID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("List: failed to fetch bookings for resource=%d: %v", resourceID, err)
		return nil, fmt.Errorf("%w: List - platform error: %v", ErrInternal, err)
	}

	bookings := make([]domain.Booking, 0, len(raw))
	for _, b := range raw {
		bookings = append(bookings, b.ToDomain())
	}

	s.cache.Set(ctx, resourceID, date, bookings)
	s.logger.Info("List: fetched %d bookings for resource=%d date=%s",
		len(bookings), resourceID, date.Format(domain.DateFormat))
	return bookings, nil
}

// Cancel отменяет бронирование и сбрасывает кэш ресурса
func (s *Service) Cancel(ctx context.Context, bookingID, resourceID int64) error {
	if err := s.client.CancelBooking(ctx, bookingID); err != nil {
		if roomly.IsKind(err, roomly.KindNotFound) {
			s.logger.Warn("Cancel: booking=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: failed to cancel booking=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - platform error: %v", ErrInternal, err)
	}

	s.cache.Invalidate(ctx, resourceID)
	s.logger.Info("Cancel: booking=%d cancelled, cache invalidated for resource=%d", bookingID, resourceID)
	return nil
}
