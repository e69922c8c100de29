package schedules

import (
	"context"
	"time"

	"github.com/m04kA/RMS-BookingGateway/internal/domain"
	"github.com/m04kA/RMS-BookingGateway/internal/integrations/roomly"
	"github.com/m04kA/RMS-BookingGateway/pkg/tzoffset"
	"github.com/m04kA/RMS-BookingGateway/pkg/types"
)

// SequencerOptions настройки секвенсора ремонта расписаний
type SequencerOptions struct {
	// Окно рабочих часов для создаваемых блоков
	OperatingStart types.TimeString
	OperatingEnd   types.TimeString

	// BulkDays сколько дней вперед закрывает массовый шаг
	BulkDays int

	// Параметры ожидания видимости: повторная проба с удвоением задержки,
	// суммарно не дольше SettleMaxWait
	SettleInitialDelay time.Duration
	SettleMaxWait      time.Duration
}

// DefaultSequencerOptions возвращает настройки по умолчанию
func DefaultSequencerOptions() SequencerOptions {
	return SequencerOptions{
		OperatingStart:     domain.DefaultOperatingStart,
		OperatingEnd:       domain.DefaultOperatingEnd,
		BulkDays:           domain.BulkRepairDays,
		SettleInitialDelay: 500 * time.Millisecond,
		SettleMaxWait:      6 * time.Second,
	}
}

// Sequencer создает покрытие расписания, достаточное для принятия
// бронирования, фиксированной эскалацией идемпотентных шагов:
//  1. массовое создание дневных блоков на BulkDays дней вперед
//     (только если блоков нет вообще);
//  2. точечный блок на запрошенную дату;
//  3. недельный блок на день недели запрошенной даты;
//  4. блок на все сутки запрошенной даты как последняя попытка.
//
// Ответ платформы "коллизия/уже существует" на любом шаге считается
// успехом: покрытие уже есть. Остальные отказы логируются и не прерывают
// последовательность. Секвенсор никогда не возвращает ошибку — только
// булево "покрытие, по нашим данным, теперь есть".
type Sequencer struct {
	client  ScheduleClient
	prober  CoverageProber
	keys    *keyLock
	clock   TimeProvider
	sleeper Sleeper
	log     Logger
	opts    SequencerOptions
}

// NewSequencer создает новый экземпляр секвенсора
func NewSequencer(client ScheduleClient, prober CoverageProber, log Logger, opts SequencerOptions) *Sequencer {
	return &Sequencer{
		client:  client,
		prober:  prober,
		keys:    newKeyLock(),
		clock:   &RealTimeProvider{},
		sleeper: &RealSleeper{},
		log:     log,
		opts:    opts,
	}
}

// WithClock подменяет провайдер времени (для тестов)
func (s *Sequencer) WithClock(clock TimeProvider) *Sequencer {
	s.clock = clock
	return s
}

// WithSleeper подменяет паузы (для тестов)
func (s *Sequencer) WithSleeper(sleeper Sleeper) *Sequencer {
	s.sleeper = sleeper
	return s
}

// EnsureCoverage выполняется перед отправкой бронирования: проверяет
// покрытие даты и при необходимости создает его (шаги 1-2).
func (s *Sequencer) EnsureCoverage(ctx context.Context, target RepairTarget) bool {
	unlock := s.keys.acquire(target.ResourceID, target.Date)
	defer unlock()

	coverage := s.prober.Probe(ctx, target.ResourceID)
	if coverage.HasCoverageForDate(target.Date) {
		return true
	}

	if !coverage.HasAnyBlocks() {
		// Шаг 1: расписания нет вообще — закрываем ближайшие BulkDays дней.
		// Частичный успех допустим: в итоге важна только целевая дата.
		s.log.Info("EnsureCoverage: resource=%d has no schedule at all, bulk-creating %d daily blocks",
			target.ResourceID, s.opts.BulkDays)

		base := s.clock.Now()
		for i := 0; i < s.opts.BulkDays; i++ {
			day := base.AddDate(0, 0, i)
			s.createBlock(ctx, target, day, s.opts.OperatingStart, s.opts.OperatingEnd, 0)
		}
	} else {
		// Шаг 2: блоки есть, но не на этот день недели — точечный блок
		s.log.Info("EnsureCoverage: resource=%d lacks coverage for %s, creating targeted day block",
			target.ResourceID, target.Date.Format(domain.DateFormat))
		s.createBlock(ctx, target, target.Date, s.opts.OperatingStart, s.opts.OperatingEnd, 0)
	}

	return s.pollUntilVisible(ctx, target)
}

// RepairAfterNoSchedule выполняется, когда платформа отклонила бронирование
// с сигнатурой "нет открытого расписания": шаги 2-4 по порядку, с ожиданием
// видимости после каждого.
func (s *Sequencer) RepairAfterNoSchedule(ctx context.Context, target RepairTarget) bool {
	unlock := s.keys.acquire(target.ResourceID, target.Date)
	defer unlock()

	// Шаг 2: точечный блок на запрошенную дату
	created := s.createBlock(ctx, target, target.Date, s.opts.OperatingStart, s.opts.OperatingEnd, 0)
	if s.pollUntilVisible(ctx, target) {
		return true
	}

	// Шаг 3: недельный блок на день недели запрошенной даты
	weekday := domain.WeekdayOf(target.Date)
	s.log.Info("RepairAfterNoSchedule: resource=%d falling back to recurring %s block",
		target.ResourceID, weekday)

	_, err := s.client.CreateRecurringSchedule(ctx, target.ResourceID, roomly.CreateRecurringScheduleRequest{
		DayOfWeek:    string(weekday),
		StartsAtTime: s.opts.OperatingStart.String(),
		EndsAtTime:   s.opts.OperatingEnd.String(),
		IsActive:     true,
	})
	switch {
	case err == nil:
		created = true
		s.log.Info("RepairAfterNoSchedule: recurring %s block created for resource=%d", weekday, target.ResourceID)
	case roomly.IsKind(err, roomly.KindScheduleCollision):
		created = true
		s.log.Info("RepairAfterNoSchedule: recurring %s block already exists for resource=%d, counting as success",
			weekday, target.ResourceID)
	default:
		s.log.Warn("RepairAfterNoSchedule: recurring block creation failed for resource=%d, continuing: %v",
			target.ResourceID, err)
	}

	if s.pollUntilVisible(ctx, target) {
		return true
	}

	// Шаг 4: блок на все сутки как последняя попытка перед сдачей
	s.log.Info("RepairAfterNoSchedule: resource=%d last resort, creating full-day block", target.ResourceID)
	if s.createBlock(ctx, target, target.Date, domain.FullDayStart, domain.FullDayEnd, 59) {
		created = true
	}

	if s.pollUntilVisible(ctx, target) {
		return true
	}

	// Проба так и не увидела покрытие, но создания прошли без отказов —
	// считаем покрытие присутствующим и даем оркестратору переотправить
	return created
}

// CreateExactWindow создает блок точно под запрошенное окно бронирования.
// Используется, когда платформа ответила "не совпадает с бронируемым
// слотом": окно могло не лечь на сетку гранулярности.
func (s *Sequencer) CreateExactWindow(ctx context.Context, target RepairTarget, start, end types.TimeString) bool {
	unlock := s.keys.acquire(target.ResourceID, target.Date)
	defer unlock()

	created := s.createBlock(ctx, target, target.Date, start, end, 0)
	if created {
		// Блоку нужно стать видимым до переотправки
		_ = s.sleeper.Sleep(ctx, s.opts.SettleInitialDelay)
	}
	return created
}

// createBlock создает один блок расписания. Возвращает true при успехе
// и при коллизии ("покрытие уже есть"); прочие отказы логируются.
func (s *Sequencer) createBlock(ctx context.Context, target RepairTarget, day time.Time, start, end types.TimeString, endSeconds int) bool {
	req := roomly.CreateScheduleBlockRequest{
		LocationID: target.LocationID,
		StartsAt:   s.buildTimestamp(day, start, target.TimeZone, 0),
		EndsAt:     s.buildTimestamp(day, end, target.TimeZone, endSeconds),
	}

	_, err := s.client.CreateScheduleBlock(ctx, target.ResourceID, req)
	switch {
	case err == nil:
		s.log.Info("createBlock: resource=%d %s %s-%s created",
			target.ResourceID, day.Format(domain.DateFormat), start, end)
		return true
	case roomly.IsKind(err, roomly.KindScheduleCollision):
		s.log.Info("createBlock: resource=%d %s %s-%s collides with existing coverage, counting as success",
			target.ResourceID, day.Format(domain.DateFormat), start, end)
		return true
	default:
		s.log.Warn("createBlock: resource=%d %s %s-%s failed, skipping: %v",
			target.ResourceID, day.Format(domain.DateFormat), start, end, err)
		return false
	}
}

// pollUntilVisible ждет, пока покрытие целевой даты станет видимым:
// повторная проба с удвоением задержки в пределах SettleMaxWait.
// Замена фиксированного sleep — платформа применяет созданные блоки
// асинхронно, и чаще всего они видны раньше максимального ожидания.
func (s *Sequencer) pollUntilVisible(ctx context.Context, target RepairTarget) bool {
	if s.prober.Probe(ctx, target.ResourceID).HasCoverageForDate(target.Date) {
		return true
	}

	delay := s.opts.SettleInitialDelay
	var waited time.Duration

	for waited < s.opts.SettleMaxWait {
		if err := s.sleeper.Sleep(ctx, delay); err != nil {
			return false
		}
		waited += delay
		delay *= 2

		if s.prober.Probe(ctx, target.ResourceID).HasCoverageForDate(target.Date) {
			return true
		}
	}

	s.log.Warn("pollUntilVisible: coverage for resource=%d date=%s not visible after %s",
		target.ResourceID, target.Date.Format(domain.DateFormat), waited)
	return false
}

// buildTimestamp собирает метку времени с явным смещением UTC для зоны
// локации на эту дату (смещение зависит от даты из-за переходов на
// летнее время)
func (s *Sequencer) buildTimestamp(day time.Time, ts types.TimeString, zone string, seconds int) string {
	minutes, err := ts.Minutes()
	if err != nil {
		minutes = 0
	}

	loc := tzoffset.Location(zone)
	t := time.Date(day.Year(), day.Month(), day.Day(), minutes/60, minutes%60, seconds, 0, loc)
	return t.Format(time.RFC3339)
}
