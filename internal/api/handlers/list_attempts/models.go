package list_attempts

import (
	"time"

	"github.com/m04kA/RMS-BookingGateway/internal/domain"
)

// AttemptsResponse HTTP response model
type AttemptsResponse struct {
	ResourceID int64     `json:"resourceId"`
	Attempts   []Attempt `json:"attempts"`
}

// Attempt запись журнала согласования в ответе
type Attempt struct {
	ID            int64   `json:"id"`
	ResourceID    int64   `json:"resourceId"`
	BookingDate   string  `json:"bookingDate"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	Category      string  `json:"category"`
	RepairStep    string  `json:"repairStep,omitempty"`
	Success       bool    `json:"success"`
	FailureReason *string `json:"failureReason,omitempty"`
	CreatedAt     string  `json:"createdAt"`
}

// FromDomain конвертирует записи журнала в HTTP response
func FromDomain(resourceID int64, attempts []*domain.ReconcileAttempt) *AttemptsResponse {
	result := make([]Attempt, len(attempts))
	for i, a := range attempts {
		result[i] = Attempt{
			ID:            a.ID,
			ResourceID:    a.ResourceID,
			BookingDate:   a.BookingDate.Format(domain.DateFormat),
			StartTime:     a.StartTime.String(),
			EndTime:       a.EndTime.String(),
			Category:      a.Category,
			RepairStep:    a.RepairStep,
			Success:       a.Success,
			FailureReason: a.FailureReason,
			CreatedAt:     a.CreatedAt.Format(time.RFC3339),
		}
	}

	return &AttemptsResponse{
		ResourceID: resourceID,
		Attempts:   result,
	}
}
