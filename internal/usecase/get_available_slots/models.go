package get_available_slots

import (
	"time"

	"github.com/m04kA/RMS-BookingGateway/internal/domain"
)

// Request модель запроса на получение слотов доступности
type Request struct {
	ResourceID int64     // ID ресурса
	OfferingID *int64    // ID услуги (опционально; без нее длительность слота = гранулярность)
	Date       time.Time // Дата, на которую строятся слоты (без времени)
}

// Response модель ответа со слотами на дату
type Response struct {
	ResourceID int64
	Date       time.Time
	TimeZone   string // зона, в которой считалась маска прошедшего времени
	Slots      []domain.AvailabilitySlot
}
