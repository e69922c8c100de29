package schedules

import (
	"time"

	"github.com/m04kA/RMS-BookingGateway/internal/domain"
)

// Coverage результат пробы расписания ресурса: что платформа знает
// о его блоках и конверте дат на момент запроса
type Coverage struct {
	Blocks    []domain.ScheduleBlock
	Recurring *domain.RecurringSchedule
}

// HasAnyBlocks проверяет, что у ресурса есть хоть один блок расписания
func (c *Coverage) HasAnyBlocks() bool {
	return len(c.Blocks) > 0
}

// HasCoverageForDate проверяет покрытие конкретной даты: достаточно
// совпадения дня недели хотя бы одного блока. Покрытие по времени суток
// здесь намеренно не проверяется — это зона генератора слотов и
// серверной валидации.
func (c *Coverage) HasCoverageForDate(date time.Time) bool {
	weekday := domain.WeekdayOf(date)
	for _, block := range c.Blocks {
		if block.Weekday == weekday {
			return true
		}
	}
	return false
}

// RepairTarget параметры ремонтируемого ресурса
type RepairTarget struct {
	ResourceID int64
	LocationID int64
	TimeZone   string    // имя зоны IANA локации ресурса
	Date       time.Time // дата, под которую нужно покрытие
}
