package get_available_slots

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/RMS-BookingGateway/internal/domain"
	"github.com/m04kA/RMS-BookingGateway/pkg/types"
)

// generateSlots строит слоты доступности на дату из блоков расписания
// и существующих бронирований.
//
// Алгоритм:
//  1. Берутся блоки, чей день недели совпадает с датой.
//  2. Внутри блока времена перечисляются от начала до конца (исключительно)
//     с шагом granularity.
//  3. Конец кандидата = время + durationMinutes.
//  4. Слот занят, если полуинтервал [start, end) пересекается с окном
//     любого активного бронирования (slotStart < bEnd && slotEnd > bStart).
//  5. Слот прошедший, если его момент на дате не позже now в зоне локации.
//
// Перекрывающиеся блоки одного дня недели могут дать одинаковые времена —
// дубликаты схлопываются по времени начала, остается слот первого блока.
func generateSlots(
	blocks []domain.ScheduleBlock,
	bookings []domain.Booking,
	date time.Time,
	granularity int,
	durationMinutes int,
	now time.Time,
	loc *time.Location,
) []domain.AvailabilitySlot {
	if granularity <= 0 {
		granularity = domain.DefaultGranularityMinutes
	}
	if durationMinutes <= 0 {
		durationMinutes = granularity
	}

	weekday := domain.WeekdayOf(date)

	seen := make(map[int]bool)
	var startMinutes []int

	for _, block := range blocks {
		if block.Weekday != weekday {
			continue
		}

		start, err := block.StartTime.Minutes()
		if err != nil {
			continue
		}
		end, err := block.EndTime.Minutes()
		if err != nil {
			continue
		}

		for m := start; m < end; m += granularity {
			if !seen[m] {
				seen[m] = true
				startMinutes = append(startMinutes, m)
			}
		}
	}

	sort.Ints(startMinutes)

	occupied := bookingWindows(bookings, date, loc)

	slots := make([]domain.AvailabilitySlot, 0, len(startMinutes))
	for _, m := range startMinutes {
		slotEnd := m + durationMinutes

		booked := false
		for _, w := range occupied {
			if m < w.end && slotEnd > w.start {
				booked = true
				break
			}
		}

		slotMoment := time.Date(date.Year(), date.Month(), date.Day(), m/60, m%60, 0, 0, loc)

		slots = append(slots, domain.AvailabilitySlot{
			StartTime:       types.TimeString(fmt.Sprintf("%02d:%02d", m/60, m%60)),
			DurationMinutes: durationMinutes,
			IsBooked:        booked,
			IsPast:          !slotMoment.After(now),
		})
	}

	return slots
}

// window окно бронирования в минутах от начала суток целевой даты
type window struct {
	start int
	end   int
}

// bookingWindows проецирует активные бронирования на минуты целевой даты
// в зоне локации. Бронирования других дат отбрасываются.
func bookingWindows(bookings []domain.Booking, date time.Time, loc *time.Location) []window {
	var windows []window

	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}

		start := b.StartsAt.In(loc)
		if !isSameDay(start, date) {
			continue
		}

		end := b.EndsAt.In(loc)
		windows = append(windows, window{
			start: start.Hour()*60 + start.Minute(),
			end:   end.Hour()*60 + end.Minute(),
		})
	}

	return windows
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
