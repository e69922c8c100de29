package submit_booking

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RMS-BookingGateway/internal/domain"
	"github.com/m04kA/RMS-BookingGateway/internal/integrations/roomly"
	"github.com/m04kA/RMS-BookingGateway/internal/service/schedules"
	"github.com/m04kA/RMS-BookingGateway/pkg/types"
)

// --- Mocks ---

type mockPlatform struct {
	location    *roomly.Location
	locationErr error

	associateErr   error
	associateCalls int

	// createErrs выдаются по одному на каждый вызов CreateBooking;
	// после исчерпания очереди вызов успешен
	createErrs  []error
	createCalls []roomly.CreateBookingRequest
}

func (m *mockPlatform) GetLocation(_ context.Context, _ int64) (*roomly.Location, error) {
	return m.location, m.locationErr
}

func (m *mockPlatform) AssociateOffering(_ context.Context, _, _ int64) error {
	m.associateCalls++
	return m.associateErr
}

func (m *mockPlatform) CreateBooking(_ context.Context, req roomly.CreateBookingRequest) (*roomly.Booking, error) {
	idx := len(m.createCalls)
	m.createCalls = append(m.createCalls, req)

	if idx < len(m.createErrs) && m.createErrs[idx] != nil {
		return nil, m.createErrs[idx]
	}

	return &roomly.Booking{
		ID:         777,
		ResourceID: req.ResourceID,
		ServiceID:  req.ServiceID,
		LocationID: req.LocationID,
		StartsAt:   time.Date(2025, 10, 13, 10, 0, 0, 0, time.UTC),
		EndsAt:     time.Date(2025, 10, 13, 11, 0, 0, 0, time.UTC),
		Price:      req.Price,
		Status:     "confirmed",
		Metadata:   req.Metadata,
	}, nil
}

type mockSequencer struct {
	ensureResult bool
	ensureCalls  int

	repairResult bool
	repairCalls  int

	exactResult bool
	exactCalls  int
	exactStart  types.TimeString
	exactEnd    types.TimeString
}

func (m *mockSequencer) EnsureCoverage(_ context.Context, _ schedules.RepairTarget) bool {
	m.ensureCalls++
	return m.ensureResult
}

func (m *mockSequencer) RepairAfterNoSchedule(_ context.Context, _ schedules.RepairTarget) bool {
	m.repairCalls++
	return m.repairResult
}

func (m *mockSequencer) CreateExactWindow(_ context.Context, _ schedules.RepairTarget, start, end types.TimeString) bool {
	m.exactCalls++
	m.exactStart = start
	m.exactEnd = end
	return m.exactResult
}

type mockMedia struct {
	url      string
	err      error
	uploads  int
	filename string
}

func (m *mockMedia) Upload(_ context.Context, filename string, _ io.Reader) (string, error) {
	m.uploads++
	m.filename = filename
	if m.err != nil {
		return "", m.err
	}
	return m.url, nil
}

type mockJournal struct {
	attempts []*domain.ReconcileAttempt
	err      error
}

func (m *mockJournal) Create(_ context.Context, attempt *domain.ReconcileAttempt) (*domain.ReconcileAttempt, error) {
	m.attempts = append(m.attempts, attempt)
	return attempt, m.err
}

type mockCache struct {
	invalidated []int64
}

func (m *mockCache) Invalidate(_ context.Context, resourceID int64) {
	m.invalidated = append(m.invalidated, resourceID)
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

// --- Fixtures ---

var testNow = time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)

func apiErr(kind roomly.ErrorKind, message string) error {
	return &roomly.APIError{Kind: kind, StatusCode: 400, Message: message}
}

func testRequest() *Request {
	return &Request{
		ResourceID:   42,
		OfferingID:   5,
		LocationID:   7,
		Date:         time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC),
		StartTime:    "10:00",
		EndTime:      "11:00",
		Price:        150,
		CustomerID:   "cust-1",
		CustomerName: "Иван Иванов",
	}
}

type fixture struct {
	platform  *mockPlatform
	sequencer *mockSequencer
	media     *mockMedia
	journal   *mockJournal
	cache     *mockCache
	uc        *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		platform: &mockPlatform{
			location: &roomly.Location{ID: 7, TimeZone: "Asia/Hong_Kong"},
		},
		sequencer: &mockSequencer{ensureResult: true, repairResult: true, exactResult: true},
		media:     &mockMedia{url: "https://cdn.example.com/img.png"},
		journal:   &mockJournal{},
		cache:     &mockCache{},
	}
	f.uc = NewUseCase(f.platform, f.sequencer, f.media, f.journal, f.cache, nopLogger{}, DefaultOptions()).
		WithTimeProvider(&fixedClock{now: testNow})
	return f
}

// --- Happy path ---

func TestUseCase_Execute_Success(t *testing.T) {
	t.Run("first submit succeeds", func(t *testing.T) {
		f := newFixture()

		resp, err := f.uc.Execute(context.Background(), testRequest())

		require.NoError(t, err)
		assert.Equal(t, int64(777), resp.BookingID)
		assert.Equal(t, "confirmed", resp.Status)

		// Покрытие проверяется до отправки, отправка ровно одна
		assert.Equal(t, 1, f.sequencer.ensureCalls)
		require.Len(t, f.platform.createCalls, 1)
		assert.Equal(t, 0, f.sequencer.repairCalls)

		// Журнал: категория отказа отсутствует
		require.Len(t, f.journal.attempts, 1)
		assert.Equal(t, "none", f.journal.attempts[0].Category)
		assert.True(t, f.journal.attempts[0].Success)

		assert.Equal(t, []int64{42}, f.cache.invalidated)
	})

	t.Run("timestamps carry location offset", func(t *testing.T) {
		f := newFixture()

		_, err := f.uc.Execute(context.Background(), testRequest())

		require.NoError(t, err)
		require.Len(t, f.platform.createCalls, 1)
		assert.Equal(t, "2025-10-13T10:00:00+08:00", f.platform.createCalls[0].StartsAt)
		assert.Equal(t, "2025-10-13T11:00:00+08:00", f.platform.createCalls[0].EndsAt)
	})

	t.Run("location failure degrades to default zone", func(t *testing.T) {
		f := newFixture()
		f.platform.location = nil
		f.platform.locationErr = apiErr(roomly.KindTransient, "boom")

		_, err := f.uc.Execute(context.Background(), testRequest())

		require.NoError(t, err)
		// Зона по умолчанию тоже +08:00
		assert.Contains(t, f.platform.createCalls[0].StartsAt, "+08:00")
	})

	t.Run("association failure does not abort", func(t *testing.T) {
		f := newFixture()
		f.platform.associateErr = apiErr(roomly.KindTransient, "boom")

		resp, err := f.uc.Execute(context.Background(), testRequest())

		require.NoError(t, err)
		assert.Equal(t, int64(777), resp.BookingID)
		assert.Equal(t, 1, f.platform.associateCalls)
	})
}

// --- Image upload ---

func TestUseCase_Execute_ImageUpload(t *testing.T) {
	t.Run("uploaded image lands in payload", func(t *testing.T) {
		f := newFixture()
		req := testRequest()
		req.Attachment = &Attachment{Filename: "photo.png", Content: strings.NewReader("data")}

		resp, err := f.uc.Execute(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, 1, f.media.uploads)
		assert.Equal(t, "photo.png", f.media.filename)

		require.NotNil(t, f.platform.createCalls[0].Metadata.ImageURL)
		assert.Equal(t, "https://cdn.example.com/img.png", *f.platform.createCalls[0].Metadata.ImageURL)
		require.NotNil(t, resp.ImageURL)
	})

	t.Run("upload failure aborts before any booking call", func(t *testing.T) {
		f := newFixture()
		f.media.err = apiErr(roomly.KindTransient, "storage down")
		req := testRequest()
		req.Attachment = &Attachment{Filename: "photo.png", Content: strings.NewReader("data")}

		_, err := f.uc.Execute(context.Background(), req)

		assert.ErrorIs(t, err, ErrImageUpload)
		assert.Empty(t, f.platform.createCalls)
		assert.Equal(t, 0, f.sequencer.ensureCalls)
	})

	t.Run("no attachment skips upload", func(t *testing.T) {
		f := newFixture()

		_, err := f.uc.Execute(context.Background(), testRequest())

		require.NoError(t, err)
		assert.Equal(t, 0, f.media.uploads)
		assert.Nil(t, f.platform.createCalls[0].Metadata.ImageURL)
	})
}

// --- Schedule missing ---

func TestUseCase_Execute_ScheduleMissing(t *testing.T) {
	t.Run("repair then resubmit succeeds", func(t *testing.T) {
		f := newFixture()
		f.platform.createErrs = []error{apiErr(roomly.KindScheduleMissing, "does not have an open schedule")}

		resp, err := f.uc.Execute(context.Background(), testRequest())

		require.NoError(t, err)
		assert.Equal(t, int64(777), resp.BookingID)
		assert.Equal(t, 1, f.sequencer.repairCalls)
		assert.Len(t, f.platform.createCalls, 2)

		require.Len(t, f.journal.attempts, 1)
		assert.Equal(t, string(roomly.KindScheduleMissing), f.journal.attempts[0].Category)
		assert.Equal(t, "no_schedule", f.journal.attempts[0].RepairStep)
		assert.True(t, f.journal.attempts[0].Success)
	})

	t.Run("second failure is terminal", func(t *testing.T) {
		f := newFixture()
		f.platform.createErrs = []error{
			apiErr(roomly.KindScheduleMissing, "does not have an open schedule"),
			apiErr(roomly.KindScheduleMissing, "does not have an open schedule"),
		}

		_, err := f.uc.Execute(context.Background(), testRequest())

		assert.ErrorIs(t, err, ErrScheduleUnrepairable)
		// Ровно один цикл ремонт+переотправка, третьей попытки нет
		assert.Equal(t, 1, f.sequencer.repairCalls)
		assert.Len(t, f.platform.createCalls, 2)

		require.Len(t, f.journal.attempts, 1)
		assert.False(t, f.journal.attempts[0].Success)
		require.NotNil(t, f.journal.attempts[0].FailureReason)

		assert.Empty(t, f.cache.invalidated)
	})
}

// --- Schedule collision ---

func TestUseCase_Execute_ScheduleCollision(t *testing.T) {
	t.Run("resubmits without repair", func(t *testing.T) {
		f := newFixture()
		f.platform.createErrs = []error{apiErr(roomly.KindScheduleCollision, "collides")}

		resp, err := f.uc.Execute(context.Background(), testRequest())

		require.NoError(t, err)
		assert.Equal(t, int64(777), resp.BookingID)
		// Коллизия — положительный сигнал: ремонт не запускается
		assert.Equal(t, 0, f.sequencer.repairCalls)
		assert.Equal(t, 0, f.sequencer.exactCalls)
		assert.Len(t, f.platform.createCalls, 2)
	})

	t.Run("slot invalid after collision means slot taken", func(t *testing.T) {
		f := newFixture()
		f.platform.createErrs = []error{
			apiErr(roomly.KindScheduleCollision, "collides"),
			apiErr(roomly.KindSlotInvalid, "does not match a valid bookable slot"),
		}

		_, err := f.uc.Execute(context.Background(), testRequest())

		assert.ErrorIs(t, err, ErrSlotUnavailable)
		assert.Len(t, f.platform.createCalls, 2)
	})
}

// --- Slot invalid ---

func TestUseCase_Execute_SlotInvalid(t *testing.T) {
	t.Run("exact window block then resubmit succeeds", func(t *testing.T) {
		f := newFixture()
		f.platform.createErrs = []error{apiErr(roomly.KindSlotInvalid, "does not match a valid bookable slot")}

		resp, err := f.uc.Execute(context.Background(), testRequest())

		require.NoError(t, err)
		assert.Equal(t, int64(777), resp.BookingID)

		assert.Equal(t, 1, f.sequencer.exactCalls)
		assert.Equal(t, types.TimeString("10:00"), f.sequencer.exactStart)
		assert.Equal(t, types.TimeString("11:00"), f.sequencer.exactEnd)

		require.Len(t, f.journal.attempts, 1)
		assert.Equal(t, "exact_window", f.journal.attempts[0].RepairStep)
	})

	t.Run("still invalid after exact window", func(t *testing.T) {
		f := newFixture()
		f.platform.createErrs = []error{
			apiErr(roomly.KindSlotInvalid, "does not match a valid bookable slot"),
			apiErr(roomly.KindSlotInvalid, "does not match a valid bookable slot"),
		}

		_, err := f.uc.Execute(context.Background(), testRequest())

		assert.ErrorIs(t, err, ErrSlotStillInvalid)
		assert.Equal(t, 1, f.sequencer.exactCalls)
		assert.Len(t, f.platform.createCalls, 2)
	})

	t.Run("collision on resubmit means conflicting booking", func(t *testing.T) {
		f := newFixture()
		f.platform.createErrs = []error{
			apiErr(roomly.KindSlotInvalid, "does not match a valid bookable slot"),
			apiErr(roomly.KindScheduleCollision, "collides"),
		}

		_, err := f.uc.Execute(context.Background(), testRequest())

		assert.ErrorIs(t, err, ErrSlotConflict)
	})
}

// --- Transient and journal behavior ---

func TestUseCase_Execute_Transient(t *testing.T) {
	f := newFixture()
	f.platform.createErrs = []error{apiErr(roomly.KindTransient, "internal server error")}

	_, err := f.uc.Execute(context.Background(), testRequest())

	assert.ErrorIs(t, err, ErrInternal)
	// Нераспознанный отказ не ремонтируется и не переотправляется
	assert.Len(t, f.platform.createCalls, 1)
	assert.Equal(t, 0, f.sequencer.repairCalls)
	assert.Equal(t, 0, f.sequencer.exactCalls)

	require.Len(t, f.journal.attempts, 1)
	assert.Equal(t, string(roomly.KindTransient), f.journal.attempts[0].Category)
	assert.False(t, f.journal.attempts[0].Success)
}

func TestUseCase_Execute_JournalFailureDoesNotAffectOutcome(t *testing.T) {
	f := newFixture()
	f.journal.err = apiErr(roomly.KindTransient, "db down")

	resp, err := f.uc.Execute(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(777), resp.BookingID)
}

// --- Validation ---

func TestUseCase_Execute_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Request)
		wantErr error
	}{
		{
			name:    "missing resource",
			mutate:  func(r *Request) { r.ResourceID = 0 },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "missing customer",
			mutate:  func(r *Request) { r.CustomerID = "" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "end before start",
			mutate:  func(r *Request) { r.StartTime = "11:00"; r.EndTime = "10:00" },
			wantErr: ErrInvalidTimeRange,
		},
		{
			name:    "zero-length window",
			mutate:  func(r *Request) { r.EndTime = r.StartTime },
			wantErr: ErrInvalidTimeRange,
		},
		{
			name:    "before operating hours",
			mutate:  func(r *Request) { r.StartTime = "05:00"; r.EndTime = "06:00" },
			wantErr: ErrOutsideOperatingHours,
		},
		{
			name:    "after operating hours",
			mutate:  func(r *Request) { r.StartTime = "22:30"; r.EndTime = "23:30" },
			wantErr: ErrOutsideOperatingHours,
		},
		{
			name:    "date in the past",
			mutate:  func(r *Request) { r.Date = time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC) },
			wantErr: ErrInvalidDate,
		},
		{
			name:    "malformed start time",
			mutate:  func(r *Request) { r.StartTime = "25:99" },
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := testRequest()
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, tt.wantErr)
			// Невалидный запрос не доходит до платформы
			assert.Empty(t, f.platform.createCalls)
		})
	}
}
