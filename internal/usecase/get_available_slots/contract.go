package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/RMS-BookingGateway/internal/domain"
	"github.com/m04kA/RMS-BookingGateway/internal/integrations/roomly"
	"github.com/m04kA/RMS-BookingGateway/internal/service/schedules"
)

// PlatformClient интерфейс клиента Roomly API
type PlatformClient interface {
	GetResource(ctx context.Context, resourceID int64) (*roomly.Resource, error)
	GetOffering(ctx context.Context, offeringID int64) (*roomly.Offering, error)
	GetLocation(ctx context.Context, locationID int64) (*roomly.Location, error)
}

// CoverageProber интерфейс пробера расписания.
// Проба деградирует в пустое покрытие, поэтому отсутствие расписания
// дает пустой список слотов, а не ошибку.
type CoverageProber interface {
	Probe(ctx context.Context, resourceID int64) *schedules.Coverage
}

// BookingLister интерфейс получения бронирований ресурса на дату
type BookingLister interface {
	List(ctx context.Context, resourceID int64, date time.Time) ([]domain.Booking, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
