package submit_booking

import (
	"context"
	"io"
	"time"

	"github.com/m04kA/RMS-BookingGateway/internal/domain"
	"github.com/m04kA/RMS-BookingGateway/internal/integrations/roomly"
	"github.com/m04kA/RMS-BookingGateway/internal/service/schedules"
	"github.com/m04kA/RMS-BookingGateway/pkg/types"
)

// PlatformClient интерфейс клиента Roomly API
type PlatformClient interface {
	GetLocation(ctx context.Context, locationID int64) (*roomly.Location, error)
	AssociateOffering(ctx context.Context, offeringID, resourceID int64) error
	CreateBooking(ctx context.Context, req roomly.CreateBookingRequest) (*roomly.Booking, error)
}

// RepairSequencer интерфейс секвенсора ремонта расписаний
type RepairSequencer interface {
	EnsureCoverage(ctx context.Context, target schedules.RepairTarget) bool
	RepairAfterNoSchedule(ctx context.Context, target schedules.RepairTarget) bool
	CreateExactWindow(ctx context.Context, target schedules.RepairTarget, start, end types.TimeString) bool
}

// MediaUploader интерфейс загрузки вложений
type MediaUploader interface {
	Upload(ctx context.Context, filename string, content io.Reader) (string, error)
}

// AttemptJournal интерфейс журнала попыток согласования.
// Журнал наблюдает за процессом: его ошибки не влияют на исход бронирования.
type AttemptJournal interface {
	Create(ctx context.Context, attempt *domain.ReconcileAttempt) (*domain.ReconcileAttempt, error)
}

// BookingCache интерфейс инвалидации кэша списков бронирований
type BookingCache interface {
	Invalidate(ctx context.Context, resourceID int64)
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
