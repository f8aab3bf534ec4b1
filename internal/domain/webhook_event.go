package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/asaskevich/govalidator"
)

//go:generate mockgen -destination mocks/mock_webhook_event_repository.go -package mocks github.com/mailbeacon/mailbeacon/internal/domain WebhookEventRepository
//go:generate mockgen -destination mocks/mock_delivery_tracker.go -package mocks github.com/mailbeacon/mailbeacon/internal/domain DeliveryTracker

// EmailEventType defines the type of delivery lifecycle event reported by the
// provider webhook.
type EmailEventType string

const (
	EmailEventAccepted     EmailEventType = "accepted"
	EmailEventDelivered    EmailEventType = "delivered"
	EmailEventOpened       EmailEventType = "opened"
	EmailEventClicked      EmailEventType = "clicked"
	EmailEventBounced      EmailEventType = "bounced"
	EmailEventComplained   EmailEventType = "complained"
	EmailEventUnsubscribed EmailEventType = "unsubscribed"
	EmailEventFailed       EmailEventType = "failed"
)

// KnownEventTypes lists every event type the tracker maps to a timestamp
// field. Unrecognized types are still logged but never mutate email state.
func KnownEventTypes() []EmailEventType {
	return []EmailEventType{
		EmailEventAccepted,
		EmailEventDelivered,
		EmailEventOpened,
		EmailEventClicked,
		EmailEventBounced,
		EmailEventComplained,
		EmailEventUnsubscribed,
		EmailEventFailed,
	}
}

// EmailEvent is a verified, normalized webhook event handed to the tracker
type EmailEvent struct {
	Type       EmailEventType
	MessageID  string
	Recipient  string
	Timestamp  time.Time
	RawPayload string
}

// WebhookEventLog is the append-only audit record, one row per received
// event. Rows are immutable once written and serve as the only source for
// aggregate statistics.
type WebhookEventLog struct {
	ID         string    `json:"id"`
	EventType  string    `json:"event_type"`
	MessageID  string    `json:"message_id,omitempty"`
	Recipient  string    `json:"recipient,omitempty"`
	RawPayload string    `json:"raw_payload"`
	CreatedAt  time.Time `json:"created_at"`
}

// WebhookEventRepository is the interface for webhook event log operations
type WebhookEventRepository interface {
	// StoreEvent appends a webhook event log row. The append is unconditional
	// and never updates existing rows.
	StoreEvent(ctx context.Context, event *WebhookEventLog) error

	// ListEvents retrieves webhook event log rows with pagination
	ListEvents(ctx context.Context, params WebhookEventListParams) (*WebhookEventListResult, error)

	// CountDistinctByCampaign returns, per event type, the number of distinct
	// messages in the campaign that produced at least one event of that type.
	CountDistinctByCampaign(ctx context.Context, campaignID string) (map[EmailEventType]int, error)

	// CountDistinctByUser is CountDistinctByCampaign scoped by user
	CountDistinctByUser(ctx context.Context, userID string) (map[EmailEventType]int, error)
}

// DeliveryTracker applies verified webhook events to outbound email records
// and serves aggregate statistics.
type DeliveryTracker interface {
	// RecordSend creates the tracking row for a dispatched email with
	// status=sent. Fails with ErrDuplicateMessageID on message ID reuse.
	RecordSend(ctx context.Context, email *OutboundEmail) (*OutboundEmail, error)

	// ApplyEvent logs the event unconditionally, then applies an idempotent
	// state transition to the matching outbound email. Returns (nil, nil)
	// when no email matches the event's message ID.
	ApplyEvent(ctx context.Context, event *EmailEvent) (*OutboundEmail, error)

	// CumulativeCampaignStats computes on-demand funnel statistics for a campaign
	CumulativeCampaignStats(ctx context.Context, campaignID string) (*CampaignStats, error)

	// CumulativeUserStats computes on-demand funnel statistics for a user
	CumulativeUserStats(ctx context.Context, userID string) (*CampaignStats, error)
}

// WebhookEventListParams defines pagination and filters for the event log
type WebhookEventListParams struct {
	Cursor string `json:"cursor,omitempty"`
	Limit  int    `json:"limit,omitempty"`

	EventType EmailEventType `json:"event_type,omitempty"`
	MessageID string         `json:"message_id,omitempty"`
	Recipient string         `json:"recipient,omitempty"`

	CreatedAfter  *time.Time `json:"created_after,omitempty"`
	CreatedBefore *time.Time `json:"created_before,omitempty"`
}

// FromQuery creates WebhookEventListParams from HTTP query parameters
func (p *WebhookEventListParams) FromQuery(query url.Values) error {
	p.Cursor = query.Get("cursor")
	p.EventType = EmailEventType(query.Get("event_type"))
	p.MessageID = query.Get("message_id")
	p.Recipient = query.Get("recipient")

	// Parse limit
	if limitStr := query.Get("limit"); limitStr != "" {
		var limit int
		if err := json.Unmarshal([]byte(limitStr), &limit); err != nil {
			return fmt.Errorf("invalid limit value: %s", limitStr)
		}
		p.Limit = limit
	}

	// Parse time filters if provided
	if err := parseTimeParam(query, "created_after", &p.CreatedAfter); err != nil {
		return err
	}
	if err := parseTimeParam(query, "created_before", &p.CreatedBefore); err != nil {
		return err
	}

	return p.Validate()
}

func (p *WebhookEventListParams) Validate() error {
	// Validate limit
	if p.Limit < 0 {
		return fmt.Errorf("limit cannot be negative")
	}
	if p.Limit > 100 {
		p.Limit = 100 // Cap at maximum 100 items
	}
	if p.Limit == 0 {
		p.Limit = 20 // Default limit
	}

	// Validate event type
	if p.EventType != "" {
		validEventTypes := make([]string, 0, len(KnownEventTypes()))
		for _, t := range KnownEventTypes() {
			validEventTypes = append(validEventTypes, string(t))
		}
		if !govalidator.IsIn(string(p.EventType), validEventTypes...) {
			return fmt.Errorf("invalid event type: %s", p.EventType)
		}
	}

	// Validate recipient email if provided
	if p.Recipient != "" && !govalidator.IsEmail(p.Recipient) {
		return fmt.Errorf("invalid recipient email format")
	}

	// Validate time ranges
	if p.CreatedAfter != nil && p.CreatedBefore != nil {
		if p.CreatedAfter.After(*p.CreatedBefore) {
			return fmt.Errorf("created_after must be before created_before")
		}
	}

	return nil
}

// WebhookEventListResult contains the result of a ListEvents operation
type WebhookEventListResult struct {
	Events     []*WebhookEventLog `json:"events"`
	NextCursor string             `json:"next_cursor,omitempty"`
	HasMore    bool               `json:"has_more"`
}
