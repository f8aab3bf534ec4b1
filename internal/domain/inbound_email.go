package domain

import (
	"context"
	"net/url"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -destination mocks/mock_inbound_email_repository.go -package mocks github.com/mailbeacon/mailbeacon/internal/domain InboundEmailRepository

// InboundEmail is a message forwarded by a Mailgun receiving route. Mailgun
// posts these as form-encoded requests with the parsed MIME parts as fields.
type InboundEmail struct {
	ID           string    `json:"id"`
	Sender       string    `json:"sender"`
	Recipient    string    `json:"recipient"`
	Subject      string    `json:"subject,omitempty"`
	BodyPlain    string    `json:"body_plain,omitempty"`
	BodyHTML     string    `json:"body_html,omitempty"`
	StrippedText string    `json:"stripped_text,omitempty"`
	MessageID    string    `json:"message_id,omitempty"`
	ReceivedAt   time.Time `json:"received_at"`
	CreatedAt    time.Time `json:"created_at"`
}

// InboundEmailFromForm builds an InboundEmail from Mailgun's form fields
func InboundEmailFromForm(form url.Values) *InboundEmail {
	return &InboundEmail{
		ID:           uuid.New().String(),
		Sender:       form.Get("sender"),
		Recipient:    form.Get("recipient"),
		Subject:      form.Get("subject"),
		BodyPlain:    form.Get("body-plain"),
		BodyHTML:     form.Get("body-html"),
		StrippedText: form.Get("stripped-text"),
		MessageID:    form.Get("Message-Id"),
		ReceivedAt:   time.Now().UTC(),
	}
}

// InboundEmailRepository defines methods for inbound email persistence
type InboundEmailRepository interface {
	// Store persists a received inbound email
	Store(ctx context.Context, email *InboundEmail) error

	// GetByID retrieves an inbound email by ID. Returns ErrNotFound when
	// no record matches.
	GetByID(ctx context.Context, id string) (*InboundEmail, error)

	// ListByRecipient retrieves inbound emails addressed to a recipient
	ListByRecipient(ctx context.Context, recipient string, limit, offset int) ([]*InboundEmail, int, error)
}
