package schedules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RMS-BookingGateway/internal/domain"
	"github.com/m04kA/RMS-BookingGateway/internal/integrations/roomly"
)

func TestProber_Probe(t *testing.T) {
	t.Run("converts blocks and recurring schedule", func(t *testing.T) {
		client := &mockScheduleClient{
			listResp: &roomly.ScheduleResponse{
				ScheduleBlocks: []roomly.ScheduleBlock{
					{ID: 1, ResourceID: 42, DayOfWeek: "monday", StartsAtTime: "06:00", EndsAtTime: "23:00"},
					{ID: 2, ResourceID: 42, DayOfWeek: "friday", StartsAtTime: "09:00", EndsAtTime: "18:00"},
				},
				RecurringSchedule: &roomly.RecurringSchedule{
					ID: 3, ResourceID: 42, StartsOn: "2025-01-01", EndsOn: "2025-12-31", IsActive: true,
				},
			},
		}
		prober := NewProber(client, nopLogger{})

		coverage := prober.Probe(context.Background(), 42)

		require.Len(t, coverage.Blocks, 2)
		assert.Equal(t, domain.Monday, coverage.Blocks[0].Weekday)
		assert.Equal(t, domain.Friday, coverage.Blocks[1].Weekday)
		require.NotNil(t, coverage.Recurring)
		assert.True(t, coverage.Recurring.IsActive)

		assert.True(t, coverage.HasAnyBlocks())
		assert.True(t, coverage.HasCoverageForDate(testDate)) // понедельник
	})

	t.Run("client failure degrades to empty coverage", func(t *testing.T) {
		client := &mockScheduleClient{
			listErr: &roomly.APIError{Kind: roomly.KindTransient, StatusCode: 500, Message: "boom"},
		}
		prober := NewProber(client, nopLogger{})

		coverage := prober.Probe(context.Background(), 42)

		assert.False(t, coverage.HasAnyBlocks())
		assert.False(t, coverage.HasCoverageForDate(testDate))
	})

	t.Run("malformed recurring schedule is ignored", func(t *testing.T) {
		client := &mockScheduleClient{
			listResp: &roomly.ScheduleResponse{
				ScheduleBlocks: []roomly.ScheduleBlock{
					{ID: 1, ResourceID: 42, DayOfWeek: "monday", StartsAtTime: "06:00", EndsAtTime: "23:00"},
				},
				RecurringSchedule: &roomly.RecurringSchedule{
					ID: 3, ResourceID: 42, StartsOn: "not a date", EndsOn: "2025-12-31",
				},
			},
		}
		prober := NewProber(client, nopLogger{})

		coverage := prober.Probe(context.Background(), 42)

		assert.True(t, coverage.HasAnyBlocks())
		assert.Nil(t, coverage.Recurring)
	})
}
