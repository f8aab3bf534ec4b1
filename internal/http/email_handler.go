package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mailbeacon/mailbeacon/internal/domain"
	"github.com/mailbeacon/mailbeacon/internal/service"
	"github.com/mailbeacon/mailbeacon/pkg/logger"
)

// emailSender is the part of the email service the handler needs
type emailSender interface {
	SendTemplatedEmail(ctx context.Context, request service.SendTemplatedEmailRequest) (*domain.OutboundEmail, error)
}

// EmailHandler handles the outbound email API endpoints
type EmailHandler struct {
	sender    emailSender
	emailRepo domain.OutboundEmailRepository
	logger    logger.Logger
}

// NewEmailHandler creates a new email handler
func NewEmailHandler(sender emailSender, emailRepo domain.OutboundEmailRepository, logger logger.Logger) *EmailHandler {
	return &EmailHandler{
		sender:    sender,
		emailRepo: emailRepo,
		logger:    logger,
	}
}

// RegisterRoutes registers the email HTTP endpoints
func (h *EmailHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("/api/emails.send", http.HandlerFunc(h.handleSend))
	mux.Handle("/api/emails.list", http.HandlerFunc(h.handleList))
	mux.Handle("/api/emails.get", http.HandlerFunc(h.handleGet))
}

func (h *EmailHandler) handleSend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req service.SendTemplatedEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	email, err := h.sender.SendTemplatedEmail(r.Context(), req)
	if err != nil {
		var validationErr domain.ValidationError
		var notFound *domain.ErrNotFound
		switch {
		case errors.As(err, &validationErr):
			WriteJSONError(w, validationErr.Message, http.StatusBadRequest)
		case errors.As(err, &notFound):
			WriteJSONError(w, notFound.Error(), http.StatusNotFound)
		default:
			h.logger.Error("Failed to send email: " + err.Error())
			WriteJSONError(w, "Failed to send email", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"email": email,
	})
}

func (h *EmailHandler) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var params domain.EmailListParams
	if err := params.FromQuery(r.URL.Query()); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	emails, nextCursor, err := h.emailRepo.ListEmails(r.Context(), params)
	if err != nil {
		h.logger.Error("Failed to list emails: " + err.Error())
		WriteJSONError(w, "Failed to list emails", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, domain.EmailListResult{
		Emails:     emails,
		NextCursor: nextCursor,
		HasMore:    nextCursor != "",
	})
}

func (h *EmailHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	messageID := r.URL.Query().Get("message_id")
	if messageID == "" {
		WriteJSONError(w, "message_id is required", http.StatusBadRequest)
		return
	}

	email, err := h.emailRepo.GetByMessageID(r.Context(), messageID)
	if err != nil {
		var notFound *domain.ErrNotFound
		if errors.As(err, &notFound) {
			WriteJSONError(w, notFound.Error(), http.StatusNotFound)
			return
		}
		h.logger.Error("Failed to get email: " + err.Error())
		WriteJSONError(w, "Failed to get email", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"email": email,
	})
}
