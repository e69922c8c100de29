package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RMS-BookingGateway/internal/domain"
	"github.com/m04kA/RMS-BookingGateway/pkg/types"
)

var (
	slotsDate = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC) // понедельник
	// До начала рабочего дня — ни один слот не прошедший
	earlyMorning = time.Date(2025, 10, 13, 5, 0, 0, 0, time.UTC)
)

func mondayBlock(start, end types.TimeString) domain.ScheduleBlock {
	return domain.ScheduleBlock{
		ID:         1,
		ResourceID: 42,
		Weekday:    domain.Monday,
		StartTime:  start,
		EndTime:    end,
	}
}

func activeBooking(start, end time.Time) domain.Booking {
	return domain.Booking{
		ID:         100,
		ResourceID: 42,
		StartsAt:   start,
		EndsAt:     end,
		Status:     domain.StatusConfirmed,
	}
}

func slotTimes(slots []domain.AvailabilitySlot) []string {
	times := make([]string, len(slots))
	for i, s := range slots {
		times[i] = s.StartTime.String()
	}
	return times
}

func TestGenerateSlots(t *testing.T) {
	t.Run("enumerates block with granularity step", func(t *testing.T) {
		blocks := []domain.ScheduleBlock{mondayBlock("09:00", "11:00")}

		slots := generateSlots(blocks, nil, slotsDate, 30, 30, earlyMorning, time.UTC)

		// Конец блока исключителен: слот 11:00 не порождается
		assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30"}, slotTimes(slots))
		for _, s := range slots {
			assert.Equal(t, 30, s.DurationMinutes)
			assert.False(t, s.IsBooked)
			assert.False(t, s.IsPast)
		}
	})

	t.Run("wrong weekday gives no slots", func(t *testing.T) {
		blocks := []domain.ScheduleBlock{
			{ID: 1, ResourceID: 42, Weekday: domain.Sunday, StartTime: "09:00", EndTime: "17:00"},
		}

		slots := generateSlots(blocks, nil, slotsDate, 30, 30, earlyMorning, time.UTC)

		assert.Empty(t, slots)
	})

	t.Run("booking marks only overlapping slots", func(t *testing.T) {
		blocks := []domain.ScheduleBlock{mondayBlock("09:00", "12:00")}
		bookings := []domain.Booking{
			activeBooking(
				time.Date(2025, 10, 13, 10, 0, 0, 0, time.UTC),
				time.Date(2025, 10, 13, 11, 0, 0, 0, time.UTC),
			),
		}

		slots := generateSlots(blocks, bookings, slotsDate, 60, 60, earlyMorning, time.UTC)

		require.Len(t, slots, 3)
		assert.False(t, slots[0].IsBooked) // 09:00-10:00 касается, но не пересекается
		assert.True(t, slots[1].IsBooked)  // 10:00-11:00
		assert.False(t, slots[2].IsBooked) // 11:00-12:00 полуинтервал: конец брони не занимает
	})

	t.Run("cancelled booking does not occupy slots", func(t *testing.T) {
		blocks := []domain.ScheduleBlock{mondayBlock("10:00", "11:00")}
		cancelled := activeBooking(
			time.Date(2025, 10, 13, 10, 0, 0, 0, time.UTC),
			time.Date(2025, 10, 13, 11, 0, 0, 0, time.UTC),
		)
		cancelled.Status = domain.StatusCancelled

		slots := generateSlots(blocks, []domain.Booking{cancelled}, slotsDate, 60, 60, earlyMorning, time.UTC)

		require.Len(t, slots, 1)
		assert.False(t, slots[0].IsBooked)
	})

	t.Run("booking on another date is ignored", func(t *testing.T) {
		blocks := []domain.ScheduleBlock{mondayBlock("10:00", "11:00")}
		bookings := []domain.Booking{
			activeBooking(
				time.Date(2025, 10, 14, 10, 0, 0, 0, time.UTC),
				time.Date(2025, 10, 14, 11, 0, 0, 0, time.UTC),
			),
		}

		slots := generateSlots(blocks, bookings, slotsDate, 60, 60, earlyMorning, time.UTC)

		require.Len(t, slots, 1)
		assert.False(t, slots[0].IsBooked)
	})

	t.Run("duration longer than granularity widens collisions", func(t *testing.T) {
		blocks := []domain.ScheduleBlock{mondayBlock("09:00", "11:00")}
		bookings := []domain.Booking{
			activeBooking(
				time.Date(2025, 10, 13, 10, 0, 0, 0, time.UTC),
				time.Date(2025, 10, 13, 10, 30, 0, 0, time.UTC),
			),
		}

		// Слоты каждые 30 минут, но кандидат длится 60: 09:30 тоже задевает бронь
		slots := generateSlots(blocks, bookings, slotsDate, 30, 60, earlyMorning, time.UTC)

		require.Len(t, slots, 4)
		assert.False(t, slots[0].IsBooked) // 09:00-10:00
		assert.True(t, slots[1].IsBooked)  // 09:30-10:30
		assert.True(t, slots[2].IsBooked)  // 10:00-11:00
		assert.False(t, slots[3].IsBooked) // 10:30-11:30
	})

	t.Run("past slots are masked against now", func(t *testing.T) {
		blocks := []domain.ScheduleBlock{mondayBlock("09:00", "12:00")}
		now := time.Date(2025, 10, 13, 10, 0, 0, 0, time.UTC)

		slots := generateSlots(blocks, nil, slotsDate, 60, 60, now, time.UTC)

		require.Len(t, slots, 3)
		assert.True(t, slots[0].IsPast)  // 09:00 прошло
		assert.True(t, slots[1].IsPast)  // 10:00 == now тоже считается прошедшим
		assert.False(t, slots[2].IsPast) // 11:00 в будущем
	})

	t.Run("past mask respects location zone", func(t *testing.T) {
		blocks := []domain.ScheduleBlock{mondayBlock("09:00", "11:00")}
		hk, err := time.LoadLocation("Asia/Hong_Kong")
		require.NoError(t, err)

		// 01:30 UTC = 09:30 в Гонконге
		now := time.Date(2025, 10, 13, 1, 30, 0, 0, time.UTC)

		slots := generateSlots(blocks, nil, slotsDate, 60, 60, now, hk)

		require.Len(t, slots, 2)
		assert.True(t, slots[0].IsPast)  // 09:00 HKT уже прошло
		assert.False(t, slots[1].IsPast) // 10:00 HKT еще впереди
	})

	t.Run("overlapping blocks dedupe start times", func(t *testing.T) {
		blocks := []domain.ScheduleBlock{
			mondayBlock("09:00", "11:00"),
			mondayBlock("10:00", "12:00"),
		}

		slots := generateSlots(blocks, nil, slotsDate, 60, 60, earlyMorning, time.UTC)

		assert.Equal(t, []string{"09:00", "10:00", "11:00"}, slotTimes(slots))
	})

	t.Run("malformed block times are skipped", func(t *testing.T) {
		blocks := []domain.ScheduleBlock{
			mondayBlock("garbage", "11:00"),
			mondayBlock("09:00", "10:00"),
		}

		slots := generateSlots(blocks, nil, slotsDate, 30, 30, earlyMorning, time.UTC)

		assert.Equal(t, []string{"09:00", "09:30"}, slotTimes(slots))
	})

	t.Run("no blocks give empty slice", func(t *testing.T) {
		slots := generateSlots(nil, nil, slotsDate, 30, 30, earlyMorning, time.UTC)
		assert.Empty(t, slots)
	})
}
