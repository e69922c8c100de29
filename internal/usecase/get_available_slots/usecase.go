package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/RMS-BookingGateway/internal/domain"
	"github.com/m04kA/RMS-BookingGateway/internal/integrations/roomly"
	"github.com/m04kA/RMS-BookingGateway/pkg/isodur"
	"github.com/m04kA/RMS-BookingGateway/pkg/tzoffset"
)

// UseCase use case построения слотов доступности ресурса на дату
type UseCase struct {
	client       PlatformClient
	prober       CoverageProber
	bookings     BookingLister
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	client PlatformClient,
	prober CoverageProber,
	bookings BookingLister,
	logger Logger,
) *UseCase {
	return &UseCase{
		client:       client,
		prober:       prober,
		bookings:     bookings,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет провайдер времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case построения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: resource=%d, date=%s",
		req.ResourceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Получаем ресурс
	resource, err := uc.client.GetResource(ctx, req.ResourceID)
	if err != nil {
		if roomly.IsKind(err, roomly.KindNotFound) {
			uc.logger.Warn("GetAvailableSlots: resource id=%d not found", req.ResourceID)
			return nil, ErrResourceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get resource id=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to get resource: %v", ErrInternal, err)
	}

	// 3. Определяем зону локации; отказ платформы деградирует в зону по умолчанию
	zone := domain.DefaultTimeZone
	location, err := uc.client.GetLocation(ctx, resource.LocationID)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: failed to get location id=%d, using default zone: %v",
			resource.LocationID, err)
	} else if location.TimeZone != "" {
		zone = location.TimeZone
	}
	loc := tzoffset.Location(zone)

	// 4. Длительность кандидата и гранулярность из услуги (если указана)
	granularity := domain.DefaultGranularityMinutes
	durationMinutes := 0

	if req.OfferingID != nil {
		offering, err := uc.client.GetOffering(ctx, *req.OfferingID)
		if err != nil {
			// Слоты можно показать и без услуги: длительность = гранулярность
			uc.logger.Warn("GetAvailableSlots: failed to get offering id=%d, falling back to granularity: %v",
				*req.OfferingID, err)
		} else {
			durationMinutes = isodur.Parse(offering.Duration)
			if offering.BookableInterval != "" {
				granularity = isodur.Parse(offering.BookableInterval)
			}
		}
	}

	// 5. Проба расписания: пустое покрытие даст пустой список слотов
	coverage := uc.prober.Probe(ctx, req.ResourceID)

	// 6. Бронирования ресурса на дату
	existing, err := uc.bookings.List(ctx, req.ResourceID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list bookings for resource=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}

	// 7. Генерация слотов
	slots := generateSlots(coverage.Blocks, existing, req.Date, granularity, durationMinutes, now, loc)

	uc.logger.Info("GetAvailableSlots: generated %d slots for resource=%d date=%s",
		len(slots), req.ResourceID, req.Date.Format(domain.DateFormat))

	return &Response{
		ResourceID: req.ResourceID,
		Date:       req.Date,
		TimeZone:   zone,
		Slots:      slots,
	}, nil
}
