package http

import (
	"net/http"

	"github.com/mailbeacon/mailbeacon/internal/domain"
	"github.com/mailbeacon/mailbeacon/pkg/logger"
)

// EventLogHandler serves the webhook event audit log
type EventLogHandler struct {
	eventRepo domain.WebhookEventRepository
	logger    logger.Logger
}

// NewEventLogHandler creates a new event log handler
func NewEventLogHandler(eventRepo domain.WebhookEventRepository, logger logger.Logger) *EventLogHandler {
	return &EventLogHandler{
		eventRepo: eventRepo,
		logger:    logger,
	}
}

// RegisterRoutes registers the event log HTTP endpoints
func (h *EventLogHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("/api/webhookEvents.list", http.HandlerFunc(h.handleList))
}

func (h *EventLogHandler) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var params domain.WebhookEventListParams
	if err := params.FromQuery(r.URL.Query()); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.eventRepo.ListEvents(r.Context(), params)
	if err != nil {
		h.logger.Error("Failed to list webhook events: " + err.Error())
		WriteJSONError(w, "Failed to list webhook events", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
