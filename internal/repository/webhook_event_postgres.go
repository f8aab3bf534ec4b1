package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/mailbeacon/mailbeacon/internal/domain"
)

type webhookEventRepository struct {
	db *sql.DB
}

// NewWebhookEventRepository creates a new PostgreSQL repository for the
// webhook event log
func NewWebhookEventRepository(db *sql.DB) domain.WebhookEventRepository {
	return &webhookEventRepository{
		db: db,
	}
}

// StoreEvent appends a webhook event log row
func (r *webhookEventRepository) StoreEvent(ctx context.Context, event *domain.WebhookEventLog) error {
	query := `
		INSERT INTO webhook_events (
			id, event_type, message_id, recipient, raw_payload, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		event.ID,
		event.EventType,
		nullable(event.MessageID),
		nullable(event.Recipient),
		event.RawPayload,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to store webhook event: %w", err)
	}

	return nil
}

// scanWebhookEventLog scans a webhook event log row
func scanWebhookEventLog(scanner interface {
	Scan(dest ...interface{}) error
}, event *domain.WebhookEventLog) error {
	var messageID, recipient sql.NullString

	err := scanner.Scan(
		&event.ID,
		&event.EventType,
		&messageID,
		&recipient,
		&event.RawPayload,
		&event.CreatedAt,
	)
	if err != nil {
		return err
	}

	event.MessageID = messageID.String
	event.Recipient = recipient.String

	return nil
}

// ListEvents retrieves webhook event log rows with cursor-based pagination
func (r *webhookEventRepository) ListEvents(ctx context.Context, params domain.WebhookEventListParams) (*domain.WebhookEventListResult, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	queryBuilder := psql.Select(
		"id", "event_type", "message_id", "recipient", "raw_payload", "created_at",
	).From("webhook_events")

	if params.EventType != "" {
		queryBuilder = queryBuilder.Where(sq.Eq{"event_type": params.EventType})
	}

	if params.MessageID != "" {
		queryBuilder = queryBuilder.Where(sq.Eq{"message_id": params.MessageID})
	}

	if params.Recipient != "" {
		queryBuilder = queryBuilder.Where(sq.Eq{"recipient": params.Recipient})
	}

	if params.CreatedAfter != nil {
		queryBuilder = queryBuilder.Where(sq.GtOrEq{"created_at": params.CreatedAfter})
	}

	if params.CreatedBefore != nil {
		queryBuilder = queryBuilder.Where(sq.LtOrEq{"created_at": params.CreatedBefore})
	}

	if params.Cursor != "" {
		cursorTime, cursorID, err := decodeCursor(params.Cursor)
		if err != nil {
			return nil, err
		}

		queryBuilder = queryBuilder.Where(
			sq.Or{
				sq.Lt{"created_at": cursorTime},
				sq.And{
					sq.Eq{"created_at": cursorTime},
					sq.Lt{"id": cursorID},
				},
			},
		)
	}

	queryBuilder = queryBuilder.
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit + 1))

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query webhook events: %w", err)
	}
	defer rows.Close()

	var events []*domain.WebhookEventLog
	for rows.Next() {
		var event domain.WebhookEventLog
		if err := scanWebhookEventLog(rows, &event); err != nil {
			return nil, fmt.Errorf("failed to scan webhook event: %w", err)
		}
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating webhook event rows: %w", err)
	}

	result := &domain.WebhookEventListResult{
		Events: events,
	}

	if len(events) > limit {
		result.Events = events[:limit]
		last := result.Events[len(result.Events)-1]
		result.NextCursor = encodeCursor(last.CreatedAt, last.ID)
		result.HasMore = true
	}

	return result, nil
}

// CountDistinctByCampaign counts, per event type, the distinct messages of a
// campaign that produced at least one event of that type. Distinct message
// counting keeps duplicate deliveries of the same event from inflating
// funnel metrics.
func (r *webhookEventRepository) CountDistinctByCampaign(ctx context.Context, campaignID string) (map[domain.EmailEventType]int, error) {
	query := `
		SELECT we.event_type, COUNT(DISTINCT we.message_id)
		FROM webhook_events we
		JOIN outbound_emails oe ON oe.message_id = we.message_id
		WHERE oe.campaign_id = $1
		GROUP BY we.event_type
	`
	return r.countDistinctByScope(ctx, query, campaignID)
}

// CountDistinctByUser is CountDistinctByCampaign scoped by user
func (r *webhookEventRepository) CountDistinctByUser(ctx context.Context, userID string) (map[domain.EmailEventType]int, error) {
	query := `
		SELECT we.event_type, COUNT(DISTINCT we.message_id)
		FROM webhook_events we
		JOIN outbound_emails oe ON oe.message_id = we.message_id
		WHERE oe.user_id = $1
		GROUP BY we.event_type
	`
	return r.countDistinctByScope(ctx, query, userID)
}

func (r *webhookEventRepository) countDistinctByScope(ctx context.Context, query, scopeID string) (map[domain.EmailEventType]int, error) {
	rows, err := r.db.QueryContext(ctx, query, scopeID)
	if err != nil {
		return nil, fmt.Errorf("failed to count webhook events: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.EmailEventType]int)
	for rows.Next() {
		var eventType string
		var count int
		if err := rows.Scan(&eventType, &count); err != nil {
			return nil, fmt.Errorf("failed to scan event count: %w", err)
		}
		counts[domain.EmailEventType(eventType)] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event count rows: %w", err)
	}

	return counts, nil
}
