package submit_booking

import (
	"fmt"
	"time"
)

// validateRequest валидирует запрос до любых сетевых вызовов
func (uc *UseCase) validateRequest(req *Request, now time.Time) error {
	if req.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}
	if req.OfferingID <= 0 {
		return fmt.Errorf("%w: offeringID must be positive", ErrInvalidInput)
	}
	if req.LocationID <= 0 {
		return fmt.Errorf("%w: locationID must be positive", ErrInvalidInput)
	}
	if req.CustomerID == "" || req.CustomerName == "" {
		return fmt.Errorf("%w: customer is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: start and end time are required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid end time: %v", ErrInvalidInput, err)
	}

	if !req.StartTime.IsBefore(req.EndTime) {
		return ErrInvalidTimeRange
	}

	if req.StartTime.IsBefore(uc.opts.OperatingStart) || req.EndTime.IsAfter(uc.opts.OperatingEnd) {
		return fmt.Errorf("%w: window must be within %s-%s",
			ErrOutsideOperatingHours, uc.opts.OperatingStart, uc.opts.OperatingEnd)
	}

	if isDateInPast(req.Date, now) {
		return ErrInvalidDate
	}

	return nil
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
