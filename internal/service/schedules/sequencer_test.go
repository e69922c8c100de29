package schedules

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RMS-BookingGateway/internal/domain"
	"github.com/m04kA/RMS-BookingGateway/internal/integrations/roomly"
)

// --- Mocks ---

type mockScheduleClient struct {
	blockErr     error
	recurringErr error

	blockCalls     []roomly.CreateScheduleBlockRequest
	recurringCalls []roomly.CreateRecurringScheduleRequest
	callOrder      []string

	listResp *roomly.ScheduleResponse
	listErr  error
}

func (m *mockScheduleClient) ListScheduleBlocks(_ context.Context, _ int64) (*roomly.ScheduleResponse, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	if m.listResp != nil {
		return m.listResp, nil
	}
	return &roomly.ScheduleResponse{}, nil
}

func (m *mockScheduleClient) CreateScheduleBlock(_ context.Context, _ int64, req roomly.CreateScheduleBlockRequest) (*roomly.ScheduleBlock, error) {
	m.blockCalls = append(m.blockCalls, req)
	m.callOrder = append(m.callOrder, "block")
	if m.blockErr != nil {
		return nil, m.blockErr
	}
	return &roomly.ScheduleBlock{ID: int64(len(m.blockCalls))}, nil
}

func (m *mockScheduleClient) CreateRecurringSchedule(_ context.Context, _ int64, req roomly.CreateRecurringScheduleRequest) (*roomly.RecurringSchedule, error) {
	m.recurringCalls = append(m.recurringCalls, req)
	m.callOrder = append(m.callOrder, "recurring")
	if m.recurringErr != nil {
		return nil, m.recurringErr
	}
	return &roomly.RecurringSchedule{ID: 1}, nil
}

// fakeProber отдает заранее заданные результаты проб по очереди,
// последний повторяется
type fakeProber struct {
	coverages []*Coverage
	calls     int
}

func (p *fakeProber) Probe(_ context.Context, _ int64) *Coverage {
	idx := p.calls
	if idx >= len(p.coverages) {
		idx = len(p.coverages) - 1
	}
	p.calls++
	return p.coverages[idx]
}

type fakeSleeper struct {
	slept []time.Duration
}

func (s *fakeSleeper) Sleep(_ context.Context, d time.Duration) error {
	s.slept = append(s.slept, d)
	return nil
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- Helpers ---

var (
	testDate = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC) // понедельник
	testNow  = time.Date(2025, 10, 13, 8, 0, 0, 0, time.UTC)
)

func testTarget() RepairTarget {
	return RepairTarget{
		ResourceID: 42,
		LocationID: 7,
		TimeZone:   "Asia/Hong_Kong",
		Date:       testDate,
	}
}

func testOptions() SequencerOptions {
	opts := DefaultSequencerOptions()
	opts.BulkDays = 3
	opts.SettleInitialDelay = time.Second
	opts.SettleMaxWait = 6 * time.Second
	return opts
}

func mondayCoverage() *Coverage {
	return &Coverage{
		Blocks: []domain.ScheduleBlock{
			{ID: 1, ResourceID: 42, Weekday: domain.Monday, StartTime: "06:00", EndTime: "23:00"},
		},
	}
}

func sundayCoverage() *Coverage {
	return &Coverage{
		Blocks: []domain.ScheduleBlock{
			{ID: 2, ResourceID: 42, Weekday: domain.Sunday, StartTime: "06:00", EndTime: "23:00"},
		},
	}
}

func newTestSequencer(client *mockScheduleClient, prober *fakeProber) (*Sequencer, *fakeSleeper) {
	sleeper := &fakeSleeper{}
	seq := NewSequencer(client, prober, nopLogger{}, testOptions()).
		WithClock(&fixedClock{now: testNow}).
		WithSleeper(sleeper)
	return seq, sleeper
}

// --- EnsureCoverage ---

func TestSequencer_EnsureCoverage(t *testing.T) {
	t.Run("already covered does nothing", func(t *testing.T) {
		client := &mockScheduleClient{}
		prober := &fakeProber{coverages: []*Coverage{mondayCoverage()}}
		seq, sleeper := newTestSequencer(client, prober)

		ok := seq.EnsureCoverage(context.Background(), testTarget())

		assert.True(t, ok)
		assert.Empty(t, client.blockCalls)
		assert.Empty(t, sleeper.slept)
	})

	t.Run("no blocks at all triggers bulk creation", func(t *testing.T) {
		client := &mockScheduleClient{}
		prober := &fakeProber{coverages: []*Coverage{
			{},               // первичная проба: пусто
			mondayCoverage(), // после массового создания блоки видны
		}}
		seq, _ := newTestSequencer(client, prober)

		ok := seq.EnsureCoverage(context.Background(), testTarget())

		assert.True(t, ok)
		// BulkDays дневных блоков начиная с сегодня
		require.Len(t, client.blockCalls, 3)
		assert.Empty(t, client.recurringCalls)
	})

	t.Run("wrong weekday triggers single targeted block", func(t *testing.T) {
		client := &mockScheduleClient{}
		prober := &fakeProber{coverages: []*Coverage{
			sundayCoverage(), // блоки есть, но не на понедельник
			mondayCoverage(),
		}}
		seq, _ := newTestSequencer(client, prober)

		ok := seq.EnsureCoverage(context.Background(), testTarget())

		assert.True(t, ok)
		require.Len(t, client.blockCalls, 1)
	})

	t.Run("collision on creation counts as success", func(t *testing.T) {
		client := &mockScheduleClient{
			blockErr: &roomly.APIError{Kind: roomly.KindScheduleCollision, StatusCode: 409, Message: "collides"},
		}
		prober := &fakeProber{coverages: []*Coverage{
			sundayCoverage(),
			mondayCoverage(),
		}}
		seq, _ := newTestSequencer(client, prober)

		ok := seq.EnsureCoverage(context.Background(), testTarget())

		assert.True(t, ok)
	})

	t.Run("coverage never becomes visible", func(t *testing.T) {
		client := &mockScheduleClient{}
		prober := &fakeProber{coverages: []*Coverage{{}}}
		seq, sleeper := newTestSequencer(client, prober)

		ok := seq.EnsureCoverage(context.Background(), testTarget())

		assert.False(t, ok)
		// Удвоение задержек в пределах SettleMaxWait: 1s, 2s, 4s
		assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, sleeper.slept)
	})
}

// --- RepairAfterNoSchedule ---

func TestSequencer_RepairAfterNoSchedule(t *testing.T) {
	t.Run("stops after targeted block becomes visible", func(t *testing.T) {
		client := &mockScheduleClient{}
		prober := &fakeProber{coverages: []*Coverage{mondayCoverage()}}
		seq, _ := newTestSequencer(client, prober)

		ok := seq.RepairAfterNoSchedule(context.Background(), testTarget())

		assert.True(t, ok)
		require.Len(t, client.blockCalls, 1)
		assert.Empty(t, client.recurringCalls)
	})

	t.Run("escalates through recurring to full-day", func(t *testing.T) {
		transient := &roomly.APIError{Kind: roomly.KindTransient, StatusCode: 500, Message: "boom"}
		client := &mockScheduleClient{blockErr: transient, recurringErr: transient}
		prober := &fakeProber{coverages: []*Coverage{{}}}
		seq, _ := newTestSequencer(client, prober)

		ok := seq.RepairAfterNoSchedule(context.Background(), testTarget())

		assert.False(t, ok)
		// Шаг 2 (точечный), шаг 3 (недельный), шаг 4 (на все сутки)
		assert.Equal(t, []string{"block", "recurring", "block"}, client.callOrder)

		require.Len(t, client.recurringCalls, 1)
		assert.Equal(t, "monday", client.recurringCalls[0].DayOfWeek)
		assert.True(t, client.recurringCalls[0].IsActive)
	})

	t.Run("full-day block uses whole-day window", func(t *testing.T) {
		transient := &roomly.APIError{Kind: roomly.KindTransient, StatusCode: 500, Message: "boom"}
		client := &mockScheduleClient{recurringErr: transient}
		prober := &fakeProber{coverages: []*Coverage{{}}}
		seq, _ := newTestSequencer(client, prober)

		seq.RepairAfterNoSchedule(context.Background(), testTarget())

		require.Len(t, client.blockCalls, 2)
		lastDay := client.blockCalls[1]
		assert.Contains(t, lastDay.StartsAt, "T00:00:00")
		assert.Contains(t, lastDay.EndsAt, "T23:59:59")
	})

	t.Run("recurring collision counts as created", func(t *testing.T) {
		transient := &roomly.APIError{Kind: roomly.KindTransient, StatusCode: 500, Message: "boom"}
		collision := &roomly.APIError{Kind: roomly.KindScheduleCollision, StatusCode: 409, Message: "already exists"}
		client := &mockScheduleClient{blockErr: transient, recurringErr: collision}
		prober := &fakeProber{coverages: []*Coverage{{}}}
		seq, _ := newTestSequencer(client, prober)

		ok := seq.RepairAfterNoSchedule(context.Background(), testTarget())

		// Проба покрытие не увидела, но платформа подтвердила его
		// существование коллизией
		assert.True(t, ok)
	})

	t.Run("believed created even when never visible", func(t *testing.T) {
		client := &mockScheduleClient{}
		prober := &fakeProber{coverages: []*Coverage{{}}}
		seq, _ := newTestSequencer(client, prober)

		ok := seq.RepairAfterNoSchedule(context.Background(), testTarget())

		// Все создания прошли успешно, хотя проба их не увидела
		assert.True(t, ok)
	})
}

// --- CreateExactWindow ---

func TestSequencer_CreateExactWindow(t *testing.T) {
	t.Run("creates block for exact window and settles", func(t *testing.T) {
		client := &mockScheduleClient{}
		prober := &fakeProber{coverages: []*Coverage{{}}}
		seq, sleeper := newTestSequencer(client, prober)

		ok := seq.CreateExactWindow(context.Background(), testTarget(), "10:30", "11:45")

		assert.True(t, ok)
		require.Len(t, client.blockCalls, 1)
		assert.Contains(t, client.blockCalls[0].StartsAt, "T10:30:00")
		assert.Contains(t, client.blockCalls[0].EndsAt, "T11:45:00")
		assert.Equal(t, []time.Duration{time.Second}, sleeper.slept)
	})

	t.Run("failure skips settle delay", func(t *testing.T) {
		client := &mockScheduleClient{
			blockErr: &roomly.APIError{Kind: roomly.KindTransient, StatusCode: 500, Message: "boom"},
		}
		prober := &fakeProber{coverages: []*Coverage{{}}}
		seq, sleeper := newTestSequencer(client, prober)

		ok := seq.CreateExactWindow(context.Background(), testTarget(), "10:30", "11:45")

		assert.False(t, ok)
		assert.Empty(t, sleeper.slept)
	})
}

// --- Timestamps ---

func TestSequencer_BuildTimestampUsesZoneOffset(t *testing.T) {
	client := &mockScheduleClient{}
	prober := &fakeProber{coverages: []*Coverage{
		sundayCoverage(),
		mondayCoverage(),
	}}
	seq, _ := newTestSequencer(client, prober)

	seq.EnsureCoverage(context.Background(), testTarget())

	require.Len(t, client.blockCalls, 1)
	assert.Equal(t, "2025-10-13T06:00:00+08:00", client.blockCalls[0].StartsAt)
	assert.Equal(t, "2025-10-13T23:00:00+08:00", client.blockCalls[0].EndsAt)
}
