package submit_booking

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/RMS-BookingGateway/internal/domain"
	"github.com/m04kA/RMS-BookingGateway/internal/integrations/roomly"
	"github.com/m04kA/RMS-BookingGateway/internal/service/schedules"
	"github.com/m04kA/RMS-BookingGateway/pkg/ptr"
	"github.com/m04kA/RMS-BookingGateway/pkg/tzoffset"
	"github.com/m04kA/RMS-BookingGateway/pkg/types"
)

// Options настройки оркестратора
type Options struct {
	OperatingStart  types.TimeString
	OperatingEnd    types.TimeString
	DefaultTimeZone string
}

// DefaultOptions возвращает настройки по умолчанию
func DefaultOptions() Options {
	return Options{
		OperatingStart:  domain.DefaultOperatingStart,
		OperatingEnd:    domain.DefaultOperatingEnd,
		DefaultTimeZone: domain.DefaultTimeZone,
	}
}

// UseCase оркестратор отправки бронирования.
//
// Машина состояний одной попытки:
//
//	Validating -> Associating -> (upload) -> Submitting ->
//	  {Success | Diagnosing -> Repairing -> Resubmitting -> {Success | Terminal}}
//
// На каждую распознанную категорию отказа выполняется не больше одного
// цикла ремонт+переотправка — это ограничение, а не цикл до победного.
type UseCase struct {
	client       PlatformClient
	sequencer    RepairSequencer
	media        MediaUploader
	journal      AttemptJournal
	cache        BookingCache
	timeProvider TimeProvider
	logger       Logger
	opts         Options
}

// NewUseCase создает новый экземпляр оркестратора
func NewUseCase(
	client PlatformClient,
	sequencer RepairSequencer,
	media MediaUploader,
	journal AttemptJournal,
	cache BookingCache,
	logger Logger,
	opts Options,
) *UseCase {
	return &UseCase{
		client:       client,
		sequencer:    sequencer,
		media:        media,
		journal:      journal,
		cache:        cache,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		opts:         opts,
	}
}

// WithTimeProvider подменяет провайдер времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет одну попытку бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SubmitBooking: resource=%d, offering=%d, date=%s, window=%s-%s",
		req.ResourceID, req.OfferingID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация — до любых сетевых вызовов
	now := uc.timeProvider.Now()
	if err := uc.validateRequest(req, now); err != nil {
		uc.logger.Warn("SubmitBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Зона локации для явных смещений UTC в timestamps
	zone := uc.opts.DefaultTimeZone
	if location, err := uc.client.GetLocation(ctx, req.LocationID); err != nil {
		uc.logger.Warn("SubmitBooking: failed to get location id=%d, using default zone: %v", req.LocationID, err)
	} else if location.TimeZone != "" {
		zone = location.TimeZone
	}

	// 3. Привязка услуги к ресурсу — best effort: платформа может уже
	// иметь эту связь, отказ здесь не повод прерывать бронирование
	if err := uc.client.AssociateOffering(ctx, req.OfferingID, req.ResourceID); err != nil {
		uc.logger.Warn("SubmitBooking: failed to associate offering=%d with resource=%d, continuing: %v",
			req.OfferingID, req.ResourceID, err)
	}

	// 4. Загрузка вложения — до создания бронирования, отказ фатален:
	// бронирование без заявленной картинки не отправляется
	var imageURL *string
	if req.Attachment != nil {
		url, err := uc.media.Upload(ctx, req.Attachment.Filename, req.Attachment.Content)
		if err != nil {
			uc.logger.Error("SubmitBooking: image upload failed, aborting attempt: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrImageUpload, err)
		}
		imageURL = &url
	}

	target := schedules.RepairTarget{
		ResourceID: req.ResourceID,
		LocationID: req.LocationID,
		TimeZone:   zone,
		Date:       req.Date,
	}

	// 5. Проба и превентивный ремонт покрытия: расписание ресурса может
	// вообще не существовать, и тогда первая же отправка обречена
	if !uc.sequencer.EnsureCoverage(ctx, target) {
		uc.logger.Warn("SubmitBooking: coverage for resource=%d date=%s not confirmed before submit",
			req.ResourceID, req.Date.Format(domain.DateFormat))
	}

	payload := uc.buildPayload(req, zone, imageURL)

	// 6. Отправка
	booking, err := uc.client.CreateBooking(ctx, payload)
	if err == nil {
		return uc.succeed(ctx, req, booking, "none", ""), nil
	}

	// 7. Диагностика по категории и один цикл ремонт+переотправка
	kind := roomly.KindOf(err)
	uc.logger.Warn("SubmitBooking: create failed for resource=%d, diagnosing kind=%s: %v",
		req.ResourceID, kind, err)

	switch kind {
	case roomly.KindScheduleMissing:
		return uc.recoverScheduleMissing(ctx, req, target, payload)

	case roomly.KindScheduleCollision:
		// Коллизия расписания — положительный сигнал: покрытие есть,
		// переотправляем сразу
		return uc.recoverScheduleCollision(ctx, req, payload)

	case roomly.KindSlotInvalid:
		return uc.recoverSlotInvalid(ctx, req, target, payload)

	default:
		uc.record(ctx, req, string(kind), "", false, err)
		return nil, fmt.Errorf("%w: platform rejected booking (%s): %v", ErrInternal, kind, err)
	}
}

// recoverScheduleMissing категория (a): у ресурса нет открытого расписания —
// ремонт шагами 2-4 и одна переотправка
func (uc *UseCase) recoverScheduleMissing(ctx context.Context, req *Request, target schedules.RepairTarget, payload roomly.CreateBookingRequest) (*Response, error) {
	repaired := uc.sequencer.RepairAfterNoSchedule(ctx, target)
	uc.logger.Info("SubmitBooking: schedule repair for resource=%d finished, coverage=%t", req.ResourceID, repaired)

	booking, err := uc.client.CreateBooking(ctx, payload)
	if err == nil {
		return uc.succeed(ctx, req, booking, string(roomly.KindScheduleMissing), "no_schedule"), nil
	}

	uc.record(ctx, req, string(roomly.KindScheduleMissing), "no_schedule", false, err)
	uc.logger.Error("SubmitBooking: resubmit after schedule repair failed for resource=%d: %v", req.ResourceID, err)
	return nil, fmt.Errorf("%w: resource %d; try another resource or date", ErrScheduleUnrepairable, req.ResourceID)
}

// recoverScheduleCollision категория (b): расписание существует —
// переотправка без ремонта
func (uc *UseCase) recoverScheduleCollision(ctx context.Context, req *Request, payload roomly.CreateBookingRequest) (*Response, error) {
	booking, err := uc.client.CreateBooking(ctx, payload)
	if err == nil {
		return uc.succeed(ctx, req, booking, string(roomly.KindScheduleCollision), ""), nil
	}

	uc.record(ctx, req, string(roomly.KindScheduleCollision), "", false, err)

	if roomly.IsKind(err, roomly.KindSlotInvalid) {
		return nil, ErrSlotUnavailable
	}
	return nil, fmt.Errorf("%w: resubmit after collision signal failed: %v", ErrInternal, err)
}

// recoverSlotInvalid категория (c): окно не ложится на сетку слотов —
// блок точно под окно и одна переотправка
func (uc *UseCase) recoverSlotInvalid(ctx context.Context, req *Request, target schedules.RepairTarget, payload roomly.CreateBookingRequest) (*Response, error) {
	uc.sequencer.CreateExactWindow(ctx, target, req.StartTime, req.EndTime)

	booking, err := uc.client.CreateBooking(ctx, payload)
	if err == nil {
		return uc.succeed(ctx, req, booking, string(roomly.KindSlotInvalid), "exact_window"), nil
	}

	uc.record(ctx, req, string(roomly.KindSlotInvalid), "exact_window", false, err)

	switch roomly.KindOf(err) {
	case roomly.KindSlotInvalid:
		return nil, ErrSlotStillInvalid
	case roomly.KindScheduleCollision:
		return nil, ErrSlotConflict
	default:
		return nil, fmt.Errorf("%w: resubmit after exact-window repair failed: %v", ErrInternal, err)
	}
}

// succeed фиксирует успех: журнал, сброс кэша, ответ
func (uc *UseCase) succeed(ctx context.Context, req *Request, booking *roomly.Booking, category, step string) *Response {
	uc.record(ctx, req, category, step, true, nil)
	uc.cache.Invalidate(ctx, req.ResourceID)

	uc.logger.Info("SubmitBooking: booking id=%d created for resource=%d", booking.ID, req.ResourceID)

	return &Response{
		BookingID:  booking.ID,
		ResourceID: booking.ResourceID,
		StartsAt:   booking.StartsAt,
		EndsAt:     booking.EndsAt,
		Price:      booking.Price,
		Status:     booking.Status,
		ImageURL:   booking.Metadata.ImageURL,
	}
}

// record пишет попытку в журнал. Журнал best-effort: его отказ логируется
// и не влияет на исход.
func (uc *UseCase) record(ctx context.Context, req *Request, category, step string, success bool, cause error) {
	attempt := &domain.ReconcileAttempt{
		ResourceID:  req.ResourceID,
		BookingDate: req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Category:    category,
		RepairStep:  step,
		Success:     success,
	}
	if cause != nil {
		attempt.FailureReason = ptr.Ptr(cause.Error())
	}

	if _, err := uc.journal.Create(ctx, attempt); err != nil {
		uc.logger.Warn("SubmitBooking: failed to journal attempt for resource=%d: %v", req.ResourceID, err)
	}
}

// buildPayload собирает запрос платформы с явными смещениями UTC
func (uc *UseCase) buildPayload(req *Request, zone string, imageURL *string) roomly.CreateBookingRequest {
	return roomly.CreateBookingRequest{
		LocationID: req.LocationID,
		ResourceID: req.ResourceID,
		ServiceID:  req.OfferingID,
		StartsAt:   buildTimestamp(req.Date, req.StartTime, zone),
		EndsAt:     buildTimestamp(req.Date, req.EndTime, zone),
		Price:      req.Price,
		Metadata: roomly.BookingMetadata{
			CustomerName:  req.CustomerName,
			CustomerID:    req.CustomerID,
			CustomerEmail: req.CustomerEmail,
			CustomerPhone: req.CustomerPhone,
			Notes:         req.Notes,
			ImageURL:      imageURL,
		},
	}
}

// buildTimestamp собирает метку времени вида 2025-01-15T09:00:00+08:00
func buildTimestamp(day time.Time, ts types.TimeString, zone string) string {
	minutes, err := ts.Minutes()
	if err != nil {
		minutes = 0
	}

	loc := tzoffset.Location(zone)
	t := time.Date(day.Year(), day.Month(), day.Day(), minutes/60, minutes%60, 0, 0, loc)
	return t.Format(time.RFC3339)
}
