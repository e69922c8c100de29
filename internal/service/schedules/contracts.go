package schedules

import (
	"context"
	"time"

	"github.com/m04kA/RMS-BookingGateway/internal/integrations/roomly"
)

// ScheduleClient интерфейс клиента Roomly API для работы с расписаниями
type ScheduleClient interface {
	ListScheduleBlocks(ctx context.Context, resourceID int64) (*roomly.ScheduleResponse, error)
	CreateScheduleBlock(ctx context.Context, resourceID int64, req roomly.CreateScheduleBlockRequest) (*roomly.ScheduleBlock, error)
	CreateRecurringSchedule(ctx context.Context, resourceID int64, req roomly.CreateRecurringScheduleRequest) (*roomly.RecurringSchedule, error)
}

// CoverageProber интерфейс пробера покрытия (для секвенсора и тестов)
type CoverageProber interface {
	Probe(ctx context.Context, resourceID int64) *Coverage
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Sleeper интерфейс пауз между шагами ремонта.
// Вынесен в интерфейс, чтобы тесты не ждали настоящие задержки.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
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

// RealSleeper реальная пауза с учетом отмены контекста
type RealSleeper struct{}

// Sleep ждет d или отмену контекста — брошенная попытка не должна
// продолжать выпускать ремонтные вызовы
func (s *RealSleeper) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
