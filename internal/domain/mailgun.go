package domain

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

//go:generate mockgen -destination mocks/mock_webhook_verifier.go -package mocks github.com/mailbeacon/mailbeacon/internal/domain WebhookVerifier

// WebhookVerifier authenticates webhook payloads before any state mutation.
// Verify returns nil on success and an AuthError on every failure path.
type WebhookVerifier interface {
	Verify(ctx context.Context, sig *MailgunSignature, senderDomain string) error
}

// MailgunSignature contains the authentication parameters of a webhook
// request. Mailgun sends them nested under a "signature" object on JSON
// webhooks and as flat form fields on inbound email posts; ParseMailgunSignature
// accepts both encodings.
type MailgunSignature struct {
	Timestamp string `json:"timestamp"`
	Token     string `json:"token"`
	Signature string `json:"signature"`
}

// UnmarshalJSON accepts both wire forms of the "signature" field: the nested
// object and the flat encoding where it is the bare hex digest. In the flat
// case timestamp and token live at the payload's top level and only the
// digest lands here.
func (s *MailgunSignature) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &s.Signature)
	}

	type plain MailgunSignature
	return json.Unmarshal(data, (*plain)(s))
}

// ParseMailgunSignature normalizes the two signature encodings into one
// canonical struct. Returns an AuthError with code missing_parameters when
// any of the three fields is absent.
func ParseMailgunSignature(raw []byte) (*MailgunSignature, error) {
	sig := &MailgunSignature{}

	// Nested encoding: {"signature": {"timestamp": ..., "token": ..., "signature": ...}}
	nested := gjson.GetBytes(raw, "signature")
	if nested.IsObject() {
		sig.Timestamp = nested.Get("timestamp").String()
		sig.Token = nested.Get("token").String()
		sig.Signature = nested.Get("signature").String()
	} else {
		// Flat encoding: {"timestamp": ..., "token": ..., "signature": "..."}
		sig.Timestamp = gjson.GetBytes(raw, "timestamp").String()
		sig.Token = gjson.GetBytes(raw, "token").String()
		sig.Signature = gjson.GetBytes(raw, "signature").String()
	}

	if sig.Timestamp == "" || sig.Token == "" || sig.Signature == "" {
		return nil, NewAuthError(AuthErrMissingParameters, "timestamp, token and signature are required")
	}

	return sig, nil
}

// SignatureFromForm extracts the signature parameters from form-encoded
// values, as posted by Mailgun's inbound email routes.
func SignatureFromForm(form url.Values) (*MailgunSignature, error) {
	sig := &MailgunSignature{
		Timestamp: form.Get("timestamp"),
		Token:     form.Get("token"),
		Signature: form.Get("signature"),
	}

	if sig.Timestamp == "" || sig.Token == "" || sig.Signature == "" {
		return nil, NewAuthError(AuthErrMissingParameters, "timestamp, token and signature are required")
	}

	return sig, nil
}

// MailgunWebhookPayload represents a Mailgun delivery webhook payload
type MailgunWebhookPayload struct {
	Signature MailgunSignature `json:"signature"`
	EventData MailgunEventData `json:"event-data"`
}

// MailgunEventData contains the main event data from Mailgun
type MailgunEventData struct {
	Event       string             `json:"event"`
	Timestamp   float64            `json:"timestamp"`
	ID          string             `json:"id"`
	Recipient   string             `json:"recipient"`
	Domain      string             `json:"domain,omitempty"`
	IP          string             `json:"ip,omitempty"`
	Tags        []string           `json:"tags,omitempty"`
	Message     MailgunMessage     `json:"message"`
	Envelope    MailgunEnvelope    `json:"envelope,omitempty"`
	Delivery    MailgunDelivery    `json:"delivery-status,omitempty"`
	Geolocation MailgunGeolocation `json:"geolocation,omitempty"`
	ClientInfo  MailgunClientInfo  `json:"client-info,omitempty"`
	Reason      string             `json:"reason,omitempty"`
	Severity    string             `json:"severity,omitempty"`
}

// MailgunMessage contains information about the email message
type MailgunMessage struct {
	Headers MailgunHeaders `json:"headers"`
	Size    int            `json:"size,omitempty"`
}

// MailgunHeaders contains email headers
type MailgunHeaders struct {
	To        string `json:"to"`
	MessageID string `json:"message-id"`
	From      string `json:"from"`
	Subject   string `json:"subject"`
}

// MailgunEnvelope contains SMTP envelope information
type MailgunEnvelope struct {
	Sender    string `json:"sender,omitempty"`
	Targets   string `json:"targets,omitempty"`
	Transport string `json:"transport,omitempty"`
}

// MailgunDelivery contains delivery attempt information
type MailgunDelivery struct {
	Code        int    `json:"code,omitempty"`
	Message     string `json:"message,omitempty"`
	AttemptNo   int    `json:"attempt-no,omitempty"`
	Description string `json:"description,omitempty"`
}

// MailgunGeolocation contains the reader's location for engagement events
type MailgunGeolocation struct {
	Country string `json:"country,omitempty"`
	Region  string `json:"region,omitempty"`
	City    string `json:"city,omitempty"`
}

// MailgunClientInfo contains the reader's client details for engagement events
type MailgunClientInfo struct {
	UserAgent  string `json:"user-agent,omitempty"`
	DeviceType string `json:"device-type,omitempty"`
	ClientType string `json:"client-type,omitempty"`
	ClientName string `json:"client-name,omitempty"`
	ClientOS   string `json:"client-os,omitempty"`
}

// SenderDomain returns the domain used to look up a tenant-specific signing
// key, taken from the envelope sender when present and the From header
// otherwise.
func (d *MailgunEventData) SenderDomain() string {
	if d.Envelope.Sender != "" {
		return DomainOfAddress(d.Envelope.Sender)
	}
	return DomainOfAddress(d.Message.Headers.From)
}

// DomainOfAddress extracts the domain portion of an email address, tolerating
// display-name forms like "Name <user@example.com>".
func DomainOfAddress(address string) string {
	address = strings.TrimSpace(address)
	if start := strings.LastIndex(address, "<"); start != -1 {
		if end := strings.Index(address[start:], ">"); end != -1 {
			address = address[start+1 : start+end]
		}
	}
	at := strings.LastIndex(address, "@")
	if at == -1 {
		return ""
	}
	return strings.ToLower(address[at+1:])
}

// ToEmailEvent normalizes the Mailgun event into the tracker's event shape.
// Mailgun reports permanent delivery failures as "failed" with severity
// "permanent"; those map to bounced, transient failures stay failed.
func (p *MailgunWebhookPayload) ToEmailEvent(rawPayload string) *EmailEvent {
	event := &EmailEvent{
		Type:       EmailEventType(p.EventData.Event),
		MessageID:  p.EventData.Message.Headers.MessageID,
		Recipient:  p.EventData.Recipient,
		RawPayload: rawPayload,
	}

	if p.EventData.Event == "failed" && p.EventData.Severity == "permanent" {
		event.Type = EmailEventBounced
	}

	if p.EventData.Timestamp > 0 {
		event.Timestamp = time.Unix(int64(p.EventData.Timestamp), 0).UTC()
	}

	return event
}
