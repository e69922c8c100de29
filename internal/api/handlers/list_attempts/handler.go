package list_attempts

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/RMS-BookingGateway/internal/api/handlers"
)

const (
	msgInvalidResourceID = "некорректный ID ресурса"
	msgInvalidLimit      = "некорректное значение limit"
)

const defaultLimit = 50

type Handler struct {
	journal AttemptJournal
	logger  Logger
}

func NewHandler(journal AttemptJournal, logger Logger) *Handler {
	return &Handler{
		journal: journal,
		logger:  logger,
	}
}

// Handle GET /api/v1/resources/{resourceId}/attempts
// Query params: limit (optional, default 50)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	resourceID, err := strconv.ParseInt(vars["resourceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /resources/{id}/attempts - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	limit := defaultLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			h.logger.Warn("GET /resources/{id}/attempts - Invalid limit: %q", limitStr)
			handlers.RespondBadRequest(w, msgInvalidLimit)
			return
		}
	}

	attempts, err := h.journal.ListByResource(r.Context(), resourceID, limit)
	if err != nil {
		h.logger.Error("GET /resources/{id}/attempts - Failed to list attempts: resource_id=%d, error=%v",
			resourceID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /resources/{id}/attempts - Attempts retrieved successfully: resource_id=%d, count=%d",
		resourceID, len(attempts))
	handlers.RespondJSON(w, http.StatusOK, FromDomain(resourceID, attempts))
}
