package get_available_slots

import (
	"time"

	"github.com/m04kA/RMS-BookingGateway/internal/domain"
	getAvailableSlots "github.com/m04kA/RMS-BookingGateway/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	ResourceID int64           `json:"resourceId"`
	Date       string          `json:"date"`
	TimeZone   string          `json:"timeZone"`
	Slots      []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	IsBooked        bool   `json:"isBooked"`
	IsPast          bool   `json:"isPast"`
}

// ToUseCaseRequest создает запрос use case из параметров URL
func ToUseCaseRequest(resourceID int64, offeringID *int64, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		ResourceID: resourceID,
		OfferingID: offeringID,
		Date:       date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime:       slot.StartTime.String(),
			DurationMinutes: slot.DurationMinutes,
			IsBooked:        slot.IsBooked,
			IsPast:          slot.IsPast,
		}
	}

	return &AvailableSlotsResponse{
		ResourceID: resp.ResourceID,
		Date:       resp.Date.Format(domain.DateFormat),
		TimeZone:   resp.TimeZone,
		Slots:      slots,
	}
}
