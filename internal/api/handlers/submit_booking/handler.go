package submit_booking

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/m04kA/RMS-BookingGateway/internal/api/handlers"
	submitBooking "github.com/m04kA/RMS-BookingGateway/internal/usecase/submit_booking"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidDateOrTime     = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidTimeRange      = "время окончания должно быть позже времени начала"
	msgOutsideOperatingHours = "запрошенное окно вне рабочих часов площадки"
	msgImageUploadFailed     = "не удалось загрузить изображение, бронирование не отправлено"
	msgScheduleUnrepairable  = "не удалось восстановить расписание ресурса, попробуйте другой ресурс или дату"
	msgSlotUnavailable       = "выбранный временной слот недоступен"
	msgSlotStillInvalid      = "запрошенное окно не соответствует сетке слотов ресурса"
	msgSlotConflict          = "слот уже занят другим бронированием"
)

const maxUploadBytes = 10 << 20 // 10 MiB

type Handler struct {
	useCase SubmitBookingUseCase
	logger  Logger
}

func NewHandler(useCase SubmitBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
//
// Принимает либо application/json без вложения, либо multipart/form-data
// с JSON в поле "payload" и файлом в поле "image".
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	useCaseReq, err := h.decodeRequest(r)
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, submitBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: resource_id=%d: %v", useCaseReq.ResourceID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, submitBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid date: resource_id=%d", useCaseReq.ResourceID)
			handlers.RespondBadRequest(w, msgInvalidDateOrTime)

		case errors.Is(err, submitBooking.ErrInvalidTimeRange):
			h.logger.Warn("POST /bookings - Invalid time range: resource_id=%d", useCaseReq.ResourceID)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, submitBooking.ErrOutsideOperatingHours):
			h.logger.Warn("POST /bookings - Outside operating hours: resource_id=%d", useCaseReq.ResourceID)
			handlers.RespondBadRequest(w, msgOutsideOperatingHours)

		case errors.Is(err, submitBooking.ErrImageUpload):
			h.logger.Error("POST /bookings - Image upload failed: resource_id=%d: %v", useCaseReq.ResourceID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgImageUploadFailed)

		case errors.Is(err, submitBooking.ErrScheduleUnrepairable):
			h.logger.Error("POST /bookings - Schedule unrepairable: resource_id=%d", useCaseReq.ResourceID)
			handlers.RespondError(w, http.StatusConflict, msgScheduleUnrepairable)

		case errors.Is(err, submitBooking.ErrSlotUnavailable):
			h.logger.Warn("POST /bookings - Slot unavailable: resource_id=%d", useCaseReq.ResourceID)
			handlers.RespondError(w, http.StatusConflict, msgSlotUnavailable)

		case errors.Is(err, submitBooking.ErrSlotStillInvalid):
			h.logger.Warn("POST /bookings - Window does not fit slot grid: resource_id=%d", useCaseReq.ResourceID)
			handlers.RespondBadRequest(w, msgSlotStillInvalid)

		case errors.Is(err, submitBooking.ErrSlotConflict):
			h.logger.Warn("POST /bookings - Slot conflict: resource_id=%d", useCaseReq.ResourceID)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		default:
			h.logger.Error("POST /bookings - Failed to submit booking: resource_id=%d, error=%v",
				useCaseReq.ResourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking submitted successfully: booking_id=%d, resource_id=%d",
		result.BookingID, result.ResourceID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

func (h *Handler) decodeRequest(r *http.Request) (*submitBooking.Request, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if !strings.HasPrefix(mediaType, "multipart/") {
		var req SubmitBookingRequest
		if err := handlers.DecodeJSON(r, &req); err != nil {
			return nil, err
		}
		return req.ToUseCaseRequest("", nil)
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, err
	}

	var req SubmitBookingRequest
	if err := json.Unmarshal([]byte(r.FormValue("payload")), &req); err != nil {
		return nil, err
	}

	var (
		imageName string
		image     io.Reader
	)
	if file, header, err := r.FormFile("image"); err == nil {
		imageName = header.Filename
		image = file
	} else if !errors.Is(err, http.ErrMissingFile) {
		return nil, err
	}

	return req.ToUseCaseRequest(imageName, image)
}
