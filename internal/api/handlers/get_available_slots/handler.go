package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/RMS-BookingGateway/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/RMS-BookingGateway/internal/usecase/get_available_slots"
)

const (
	msgInvalidResourceID = "некорректный ID ресурса"
	msgInvalidOfferingID = "некорректный ID услуги"
	msgMissingDate       = "дата обязательна"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgResourceNotFound  = "ресурс не найден"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/resources/{resourceId}/available-slots
// Query params: date (required, YYYY-MM-DD), offeringId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	resourceID, err := strconv.ParseInt(vars["resourceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /resources/{id}/available-slots - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	var offeringID *int64
	if offeringIDStr := r.URL.Query().Get("offeringId"); offeringIDStr != "" {
		id, err := strconv.ParseInt(offeringIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /resources/{id}/available-slots - Invalid offering ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidOfferingID)
			return
		}
		offeringID = &id
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /resources/{id}/available-slots - Missing date: resource_id=%d", resourceID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(resourceID, offeringID, dateStr)
	if err != nil {
		h.logger.Warn("GET /resources/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrResourceNotFound):
			h.logger.Warn("GET /resources/{id}/available-slots - Resource not found: resource_id=%d", resourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /resources/{id}/available-slots - Invalid input: resource_id=%d: %v", resourceID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /resources/{id}/available-slots - Failed to get slots: resource_id=%d, error=%v",
				resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /resources/{id}/available-slots - Slots retrieved successfully: resource_id=%d, date=%s, slots_count=%d",
		resourceID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
