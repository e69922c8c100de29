package list_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/RMS-BookingGateway/internal/api/handlers"
	"github.com/m04kA/RMS-BookingGateway/internal/domain"
	"github.com/m04kA/RMS-BookingGateway/internal/service/bookings"
)

const (
	msgInvalidResourceID = "некорректный ID ресурса"
	msgMissingDate       = "дата обязательна"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgResourceNotFound  = "ресурс не найден"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/resources/{resourceId}/bookings
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	resourceID, err := strconv.ParseInt(vars["resourceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /resources/{id}/bookings - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /resources/{id}/bookings - Missing date: resource_id=%d", resourceID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /resources/{id}/bookings - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.List(r.Context(), resourceID, date)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /resources/{id}/bookings - Resource not found: resource_id=%d", resourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		default:
			h.logger.Error("GET /resources/{id}/bookings - Failed to list bookings: resource_id=%d, error=%v",
				resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /resources/{id}/bookings - Bookings retrieved successfully: resource_id=%d, date=%s, count=%d",
		resourceID, dateStr, len(result))
	handlers.RespondJSON(w, http.StatusOK, FromDomain(resourceID, date, result))
}
