package roomly

import (
	"time"

	"github.com/m04kA/RMS-BookingGateway/internal/domain"
	"github.com/m04kA/RMS-BookingGateway/pkg/types"
)

// ScheduleBlock блок расписания в формате платформы
type ScheduleBlock struct {
	ID           int64  `json:"id"`
	ResourceID   int64  `json:"resource_id"`
	LocationID   int64  `json:"location_id"`
	DayOfWeek    string `json:"day_of_week"`    // monday..sunday
	StartsAtTime string `json:"starts_at_time"` // "06:00"
	EndsAtTime   string `json:"ends_at_time"`   // "23:00"
}

// RecurringSchedule конверт дат, в пределах которого действуют блоки ресурса
type RecurringSchedule struct {
	ID         int64  `json:"id"`
	ResourceID int64  `json:"resource_id"`
	StartsOn   string `json:"starts_on"` // "2025-01-01"
	EndsOn     string `json:"ends_on"`
	IsActive   bool   `json:"is_active"`
}

// ScheduleResponse ответ на запрос расписания ресурса
type ScheduleResponse struct {
	ScheduleBlocks    []ScheduleBlock    `json:"schedule_blocks"`
	RecurringSchedule *RecurringSchedule `json:"recurring_schedule"`
}

// CreateScheduleBlockRequest запрос на создание блока расписания.
// Платформа сама выводит день недели из starts_at.
type CreateScheduleBlockRequest struct {
	LocationID int64  `json:"location_id"`
	StartsAt   string `json:"starts_at"` // ISO-8601 с явным смещением UTC
	EndsAt     string `json:"ends_at"`
}

// CreateRecurringScheduleRequest запрос на создание недельного блока
type CreateRecurringScheduleRequest struct {
	DayOfWeek    string `json:"day_of_week"`
	StartsAtTime string `json:"starts_at_time"`
	EndsAtTime   string `json:"ends_at_time"`
	IsActive     bool   `json:"is_active"`
}

// BookingMetadata свободные поля бронирования
type BookingMetadata struct {
	CustomerName  string  `json:"customer_name"`
	CustomerID    string  `json:"customer_id"`
	CustomerEmail string  `json:"customer_email"`
	CustomerPhone string  `json:"customer_phone"`
	Notes         *string `json:"notes,omitempty"`
	ImageURL      *string `json:"image_url,omitempty"`
}

// CreateBookingRequest запрос на создание бронирования
type CreateBookingRequest struct {
	LocationID int64           `json:"location_id"`
	ResourceID int64           `json:"resource_id"`
	ServiceID  int64           `json:"service_id"`
	StartsAt   string          `json:"starts_at"` // "2025-01-15T09:00:00+08:00"
	EndsAt     string          `json:"ends_at"`
	Price      float64         `json:"price"`
	Metadata   BookingMetadata `json:"metadata"`
}

// Booking бронирование в формате платформы
type Booking struct {
	ID         int64           `json:"id"`
	LocationID int64           `json:"location_id"`
	ResourceID int64           `json:"resource_id"`
	ServiceID  int64           `json:"service_id"`
	StartsAt   time.Time       `json:"starts_at"`
	EndsAt     time.Time       `json:"ends_at"`
	Price      float64         `json:"price"`
	Status     string          `json:"status"`
	Metadata   BookingMetadata `json:"metadata"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// Resource ресурс в формате платформы
type Resource struct {
	ID          int64  `json:"id"`
	LocationID  int64  `json:"location_id"`
	Name        string `json:"name"`
	MaxBookings int    `json:"max_simultaneous_bookings"`
}

// Offering услуга в формате платформы; длительности приходят строками ISO-8601
type Offering struct {
	ID               int64   `json:"id"`
	ResourceID       int64   `json:"resource_id"`
	Name             string  `json:"name"`
	Duration         string  `json:"duration"`     // "PT1H"
	MinDuration      string  `json:"min_duration"` // "PT30M"
	MaxDuration      string  `json:"max_duration"`
	BookableInterval string  `json:"bookable_interval"` // "PT15M"
	Price            float64 `json:"price"`
}

// Location локация в формате платформы
type Location struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	TimeZone string `json:"time_zone"` // IANA, например "Asia/Hong_Kong"
}

// ErrorResponse тело ошибки платформы
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ToDomain конвертирует блок расписания в доменную модель
func (b ScheduleBlock) ToDomain() domain.ScheduleBlock {
	return domain.ScheduleBlock{
		ID:         b.ID,
		ResourceID: b.ResourceID,
		LocationID: b.LocationID,
		Weekday:    domain.Weekday(b.DayOfWeek),
		StartTime:  types.TimeString(b.StartsAtTime),
		EndTime:    types.TimeString(b.EndsAtTime),
	}
}

// ToDomain конвертирует конверт дат в доменную модель
func (r RecurringSchedule) ToDomain() (domain.RecurringSchedule, error) {
	start, err := time.Parse(domain.DateFormat, r.StartsOn)
	if err != nil {
		return domain.RecurringSchedule{}, err
	}
	end, err := time.Parse(domain.DateFormat, r.EndsOn)
	if err != nil {
		return domain.RecurringSchedule{}, err
	}
	return domain.RecurringSchedule{
		ID:         r.ID,
		ResourceID: r.ResourceID,
		StartDate:  start,
		EndDate:    end,
		IsActive:   r.IsActive,
	}, nil
}

// ToDomain конвертирует бронирование в доменную модель
func (b Booking) ToDomain() domain.Booking {
	return domain.Booking{
		ID:            b.ID,
		ResourceID:    b.ResourceID,
		OfferingID:    b.ServiceID,
		LocationID:    b.LocationID,
		StartsAt:      b.StartsAt,
		EndsAt:        b.EndsAt,
		Price:         b.Price,
		Status:        domain.BookingStatus(b.Status),
		CustomerID:    b.Metadata.CustomerID,
		CustomerName:  b.Metadata.CustomerName,
		CustomerEmail: b.Metadata.CustomerEmail,
		CustomerPhone: b.Metadata.CustomerPhone,
		Notes:         b.Metadata.Notes,
		ImageURL:      b.Metadata.ImageURL,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}
