package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/mailbeacon/mailbeacon/internal/domain"
	"github.com/mailbeacon/mailbeacon/pkg/logger"
)

// inboundEmailStore is the part of the inbound email service the handler needs
type inboundEmailStore interface {
	Store(ctx context.Context, email *domain.InboundEmail) error
}

// WebhookHandler handles the public Mailgun webhook endpoints. Both routes
// verify the HMAC signature before touching any state; they differ only in
// the failure status code, because Mailgun retries inbound route errors
// unless it sees 406.
type WebhookHandler struct {
	verifier domain.WebhookVerifier
	tracker  domain.DeliveryTracker
	inbound  inboundEmailStore
	logger   logger.Logger
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(verifier domain.WebhookVerifier, tracker domain.DeliveryTracker, inbound inboundEmailStore, logger logger.Logger) *WebhookHandler {
	return &WebhookHandler{
		verifier: verifier,
		tracker:  tracker,
		inbound:  inbound,
		logger:   logger,
	}
}

// RegisterRoutes registers the public webhook HTTP endpoints
func (h *WebhookHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("/webhooks/mailgun", http.HandlerFunc(h.handleDeliveryWebhook))
	mux.Handle("/webhooks/mailgun/inbound", http.HandlerFunc(h.handleInboundEmail))
}

// handleDeliveryWebhook handles Mailgun delivery event webhooks
func (h *WebhookHandler) handleDeliveryWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to read webhook request body")
		WriteJSONError(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	sig, err := domain.ParseMailgunSignature(body)
	if err != nil {
		h.writeAuthError(w, err, http.StatusUnauthorized)
		return
	}

	var payload domain.MailgunWebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		h.logger.WithField("error", err.Error()).Warn("Failed to parse webhook payload")
		WriteJSONError(w, "Invalid webhook payload", http.StatusBadRequest)
		return
	}

	if err := h.verifier.Verify(r.Context(), sig, payload.EventData.SenderDomain()); err != nil {
		h.writeAuthError(w, err, http.StatusUnauthorized)
		return
	}

	event := payload.ToEmailEvent(string(body))
	if _, err := h.tracker.ApplyEvent(r.Context(), event); err != nil {
		h.logger.WithField("error", err.Error()).
			WithField("event_type", event.Type).
			WithField("message_id", event.MessageID).
			Error("Failed to apply webhook event")
		WriteJSONError(w, "Failed to process webhook", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "success",
	})
}

// handleInboundEmail handles Mailgun inbound email route posts. Auth failures
// return 406 so Mailgun stops retrying the message.
func (h *WebhookHandler) handleInboundEmail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Mailgun posts inbound emails as multipart/form-data, but falls back to
	// urlencoded for routes without attachments
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		if err := r.ParseForm(); err != nil {
			WriteJSONError(w, "Failed to parse form data", http.StatusBadRequest)
			return
		}
	}

	sig, err := domain.SignatureFromForm(r.Form)
	if err != nil {
		h.writeAuthError(w, err, http.StatusNotAcceptable)
		return
	}

	senderDomain := domain.DomainOfAddress(r.Form.Get("sender"))
	if err := h.verifier.Verify(r.Context(), sig, senderDomain); err != nil {
		h.writeAuthError(w, err, http.StatusNotAcceptable)
		return
	}

	email := domain.InboundEmailFromForm(r.Form)
	if err := h.inbound.Store(r.Context(), email); err != nil {
		WriteJSONError(w, "Failed to store inbound email", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "success",
	})
}

// writeAuthError maps verification failures to HTTP responses. A missing
// signing key is a deployment problem and reports as 500; everything else is
// rejected with rejectStatus and a deliberately uniform message.
func (h *WebhookHandler) writeAuthError(w http.ResponseWriter, err error, rejectStatus int) {
	code := domain.AuthErrorCodeOf(err)

	h.logger.WithField("auth_error", string(code)).
		Warn(fmt.Sprintf("Webhook rejected: %v", err))

	if code == domain.AuthErrKeyNotConfigured {
		WriteJSONError(w, "Webhook signing key not configured", http.StatusInternalServerError)
		return
	}

	WriteJSONError(w, "Invalid webhook signature", rejectStatus)
}
