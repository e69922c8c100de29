package list_attempts

import (
	"context"

	"github.com/m04kA/RMS-BookingGateway/internal/domain"
)

type AttemptJournal interface {
	ListByResource(ctx context.Context, resourceID int64, limit int) ([]*domain.ReconcileAttempt, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
