package attemptlog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/m04kA/RMS-BookingGateway/internal/domain"
	"github.com/m04kA/RMS-BookingGateway/pkg/psqlbuilder"
)

// Repository журнал попыток согласования расписания.
// Единственное локальное хранилище шлюза: платформа остается владельцем
// всех бронирований, журнал хранит только историю попыток для операторов.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория журнала
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create записывает попытку в журнал
func (r *Repository) Create(ctx context.Context, attempt *domain.ReconcileAttempt) (*domain.ReconcileAttempt, error) {
	query, args, err := psqlbuilder.Insert("reconcile_attempts").
		Columns(
			"resource_id",
			"booking_date",
			"start_time",
			"end_time",
			"category",
			"repair_step",
			"success",
			"failure_reason",
		).
		Values(
			attempt.ResourceID,
			attempt.BookingDate,
			attempt.StartTime,
			attempt.EndTime,
			attempt.Category,
			attempt.RepairStep,
			attempt.Success,
			attempt.FailureReason,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&attempt.ID,
		&createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	attempt.CreatedAt = createdAt.Time
	return attempt, nil
}

// ListByResource возвращает последние попытки для ресурса, новые первыми
func (r *Repository) ListByResource(ctx context.Context, resourceID int64, limit int) ([]*domain.ReconcileAttempt, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"resource_id",
		"booking_date",
		"start_time",
		"end_time",
		"category",
		"repair_step",
		"success",
		"failure_reason",
		"created_at",
	).
		From("reconcile_attempts").
		Where("resource_id = ?", resourceID).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByResource - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByResource - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var attempts []*domain.ReconcileAttempt
	for rows.Next() {
		var a domain.ReconcileAttempt
		var createdAt sql.NullTime

		err := rows.Scan(
			&a.ID,
			&a.ResourceID,
			&a.BookingDate,
			&a.StartTime,
			&a.EndTime,
			&a.Category,
			&a.RepairStep,
			&a.Success,
			&a.FailureReason,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByResource - scan row: %v", ErrScanRow, err)
		}

		a.CreatedAt = createdAt.Time
		attempts = append(attempts, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByResource - rows iteration: %v", ErrExecQuery, err)
	}

	return attempts, nil
}
