package domain

import (
	"bytes"
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/asaskevich/govalidator"
)

//go:generate mockgen -destination mocks/mock_outbound_email_repository.go -package mocks github.com/mailbeacon/mailbeacon/internal/domain OutboundEmailRepository

// EmailStatus represents the current delivery status of an outbound email.
// It always reflects the most recently applied webhook event, while the
// per-event timestamps on OutboundEmail are append-only.
type EmailStatus string

const (
	EmailStatusSent         EmailStatus = "sent"
	EmailStatusDelivered    EmailStatus = "delivered"
	EmailStatusOpened       EmailStatus = "opened"
	EmailStatusClicked      EmailStatus = "clicked"
	EmailStatusBounced      EmailStatus = "bounced"
	EmailStatusComplained   EmailStatus = "complained"
	EmailStatusUnsubscribed EmailStatus = "unsubscribed"
	EmailStatusFailed       EmailStatus = "failed"
)

// Metadata holds optional caller-provided tracking data, stored as JSONB
type Metadata map[string]interface{}

// Value implements the driver.Valuer interface for database storage
func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements the sql.Scanner interface for database retrieval
func (m *Metadata) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	b, ok := value.([]byte)
	if !ok {
		return sql.ErrNoRows
	}

	cloned := bytes.Clone(b)
	return json.Unmarshal(cloned, m)
}

// OutboundEmail is the tracking record for a single sent message. One row per
// message, created at send time and mutated exclusively by webhook events.
type OutboundEmail struct {
	MessageID    string      `json:"message_id"`
	Recipient    string      `json:"recipient"`
	FromAddress  string      `json:"from_address,omitempty"`
	Subject      string      `json:"subject,omitempty"`
	TemplateName string      `json:"template_name,omitempty"`
	CampaignID   string      `json:"campaign_id,omitempty"`
	UserID       string      `json:"user_id,omitempty"`
	Status       EmailStatus `json:"status"`
	Metadata     Metadata    `json:"metadata,omitempty"`

	// Event timestamps, each set at most once on first occurrence of the
	// corresponding event. A later event never erases an earlier timestamp.
	SentAt         time.Time  `json:"sent_at"`
	AcceptedAt     *time.Time `json:"accepted_at,omitempty"`
	DeliveredAt    *time.Time `json:"delivered_at,omitempty"`
	OpenedAt       *time.Time `json:"opened_at,omitempty"`
	ClickedAt      *time.Time `json:"clicked_at,omitempty"`
	BouncedAt      *time.Time `json:"bounced_at,omitempty"`
	ComplainedAt   *time.Time `json:"complained_at,omitempty"`
	UnsubscribedAt *time.Time `json:"unsubscribed_at,omitempty"`
	FailedAt       *time.Time `json:"failed_at,omitempty"`

	// System timestamps
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CampaignStats aggregates delivery outcomes for a campaign. Each per-status
// count is the number of distinct messages that ever reached that status,
// not the raw event count.
type CampaignStats struct {
	TotalSent         int `json:"total_sent"`
	TotalDelivered    int `json:"total_delivered"`
	TotalOpened       int `json:"total_opened"`
	TotalClicked      int `json:"total_clicked"`
	TotalBounced      int `json:"total_bounced"`
	TotalComplained   int `json:"total_complained"`
	TotalUnsubscribed int `json:"total_unsubscribed"`
	TotalFailed       int `json:"total_failed"`
}

// OutboundEmailRepository defines methods for outbound email persistence
type OutboundEmailRepository interface {
	// Create adds a new outbound email record. Returns ErrDuplicateMessageID
	// when the message ID already exists.
	Create(ctx context.Context, email *OutboundEmail) error

	// GetByMessageID retrieves an outbound email by its message ID.
	// Returns ErrNotFound when no record matches.
	GetByMessageID(ctx context.Context, messageID string) (*OutboundEmail, error)

	// SetEventTimestampIfNotSet sets the timestamp column for the given event
	// only when it is still NULL, as a single conditional UPDATE. Concurrent
	// duplicate deliveries therefore cannot overwrite the first occurrence.
	SetEventTimestampIfNotSet(ctx context.Context, messageID string, event EmailEventType, timestamp time.Time) error

	// UpdateStatus unconditionally sets the status column
	UpdateStatus(ctx context.Context, messageID string, status EmailStatus) error

	// ListEmails retrieves outbound emails with cursor-based pagination and filtering
	ListEmails(ctx context.Context, params EmailListParams) ([]*OutboundEmail, string, error)

	// CountByCampaign returns the number of outbound emails in a campaign
	CountByCampaign(ctx context.Context, campaignID string) (int, error)

	// CountByUser returns the number of outbound emails sent for a user
	CountByUser(ctx context.Context, userID string) (int, error)
}

// EmailListParams contains parameters for listing outbound emails
type EmailListParams struct {
	// Cursor-based pagination
	Cursor string `json:"cursor,omitempty"`
	Limit  int    `json:"limit,omitempty"`

	// Filters
	Status       EmailStatus `json:"status,omitempty"`
	Recipient    string      `json:"recipient,omitempty"`
	CampaignID   string      `json:"campaign_id,omitempty"`
	UserID       string      `json:"user_id,omitempty"`
	TemplateName string      `json:"template_name,omitempty"`

	// Time range filters
	SentAfter  *time.Time `json:"sent_after,omitempty"`
	SentBefore *time.Time `json:"sent_before,omitempty"`
}

// FromQuery creates EmailListParams from HTTP query parameters
func (p *EmailListParams) FromQuery(query url.Values) error {
	p.Cursor = query.Get("cursor")
	p.Status = EmailStatus(query.Get("status"))
	p.Recipient = query.Get("recipient")
	p.CampaignID = query.Get("campaign_id")
	p.UserID = query.Get("user_id")
	p.TemplateName = query.Get("template_name")

	// Parse limit
	if limitStr := query.Get("limit"); limitStr != "" {
		var limit int
		if err := json.Unmarshal([]byte(limitStr), &limit); err != nil {
			return fmt.Errorf("invalid limit value: %s", limitStr)
		}
		p.Limit = limit
	}

	// Parse time filters if provided
	if err := parseTimeParam(query, "sent_after", &p.SentAfter); err != nil {
		return err
	}
	if err := parseTimeParam(query, "sent_before", &p.SentBefore); err != nil {
		return err
	}

	return p.Validate()
}

// Helper function to parse time parameters
func parseTimeParam(query url.Values, paramName string, target **time.Time) error {
	if paramStr := query.Get(paramName); paramStr != "" {
		parsedTime, err := time.Parse(time.RFC3339, paramStr)
		if err != nil {
			return fmt.Errorf("invalid %s time format, expected RFC3339: %v", paramName, err)
		}
		*target = &parsedTime
	}
	return nil
}

func (p *EmailListParams) Validate() error {
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

	// Validate status
	if p.Status != "" {
		validStatuses := []string{
			string(EmailStatusSent),
			string(EmailStatusDelivered),
			string(EmailStatusOpened),
			string(EmailStatusClicked),
			string(EmailStatusBounced),
			string(EmailStatusComplained),
			string(EmailStatusUnsubscribed),
			string(EmailStatusFailed),
		}
		if !govalidator.IsIn(string(p.Status), validStatuses...) {
			return fmt.Errorf("invalid email status: %s", p.Status)
		}
	}

	// Validate recipient email if provided
	if p.Recipient != "" && !govalidator.IsEmail(p.Recipient) {
		return fmt.Errorf("invalid recipient email format")
	}

	// Validate time ranges
	if p.SentAfter != nil && p.SentBefore != nil {
		if p.SentAfter.After(*p.SentBefore) {
			return fmt.Errorf("sent_after must be before sent_before")
		}
	}

	return nil
}

// EmailListResult contains the result of a ListEmails operation
type EmailListResult struct {
	Emails     []*OutboundEmail `json:"emails"`
	NextCursor string           `json:"next_cursor,omitempty"`
	HasMore    bool             `json:"has_more"`
}
