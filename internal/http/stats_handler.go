package http

import (
	"net/http"

	"github.com/mailbeacon/mailbeacon/internal/domain"
	"github.com/mailbeacon/mailbeacon/pkg/logger"
)

// StatsHandler serves on-demand delivery funnel statistics
type StatsHandler struct {
	tracker domain.DeliveryTracker
	logger  logger.Logger
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(tracker domain.DeliveryTracker, logger logger.Logger) *StatsHandler {
	return &StatsHandler{
		tracker: tracker,
		logger:  logger,
	}
}

// RegisterRoutes registers the statistics HTTP endpoints
func (h *StatsHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("/api/stats.campaign", http.HandlerFunc(h.handleCampaignStats))
	mux.Handle("/api/stats.user", http.HandlerFunc(h.handleUserStats))
}

func (h *StatsHandler) handleCampaignStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	campaignID := r.URL.Query().Get("campaign_id")
	if campaignID == "" {
		WriteJSONError(w, "campaign_id is required", http.StatusBadRequest)
		return
	}

	stats, err := h.tracker.CumulativeCampaignStats(r.Context(), campaignID)
	if err != nil {
		h.logger.Error("Failed to compute campaign stats: " + err.Error())
		WriteJSONError(w, "Failed to compute campaign stats", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"campaign_id": campaignID,
		"stats":       stats,
	})
}

func (h *StatsHandler) handleUserStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		WriteJSONError(w, "user_id is required", http.StatusBadRequest)
		return
	}

	stats, err := h.tracker.CumulativeUserStats(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to compute user stats: " + err.Error())
		WriteJSONError(w, "Failed to compute user stats", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user_id": userID,
		"stats":   stats,
	})
}
