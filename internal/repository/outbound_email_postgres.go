package repository

import (
	"context"
	"database/sql"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/mailbeacon/mailbeacon/internal/domain"
)

// OutboundEmailRepository implements domain.OutboundEmailRepository
type OutboundEmailRepository struct {
	db *sql.DB
}

// NewOutboundEmailRepository creates a new outbound email repository
func NewOutboundEmailRepository(db *sql.DB) *OutboundEmailRepository {
	return &OutboundEmailRepository{
		db: db,
	}
}

// outboundEmailSelectFields returns the common SELECT fields for outbound email queries
func outboundEmailSelectFields() string {
	return `message_id, recipient, from_address, subject, template_name, campaign_id, user_id,
			status, metadata, sent_at, accepted_at, delivered_at, opened_at, clicked_at,
			bounced_at, complained_at, unsubscribed_at, failed_at, created_at, updated_at`
}

// scanOutboundEmail scans an outbound email row
func scanOutboundEmail(scanner interface {
	Scan(dest ...interface{}) error
}, email *domain.OutboundEmail) error {
	var fromAddress, subject, templateName, campaignID, userID sql.NullString

	err := scanner.Scan(
		&email.MessageID,
		&email.Recipient,
		&fromAddress,
		&subject,
		&templateName,
		&campaignID,
		&userID,
		&email.Status,
		&email.Metadata,
		&email.SentAt,
		&email.AcceptedAt,
		&email.DeliveredAt,
		&email.OpenedAt,
		&email.ClickedAt,
		&email.BouncedAt,
		&email.ComplainedAt,
		&email.UnsubscribedAt,
		&email.FailedAt,
		&email.CreatedAt,
		&email.UpdatedAt,
	)
	if err != nil {
		return err
	}

	email.FromAddress = fromAddress.String
	email.Subject = subject.String
	email.TemplateName = templateName.String
	email.CampaignID = campaignID.String
	email.UserID = userID.String

	return nil
}

// nullable converts empty strings to NULL for optional columns
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// Create adds a new outbound email record
func (r *OutboundEmailRepository) Create(ctx context.Context, email *domain.OutboundEmail) error {
	query := `
		INSERT INTO outbound_emails (
			message_id, recipient, from_address, subject, template_name, campaign_id, user_id,
			status, metadata, sent_at, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11, $12
		)
	`

	now := time.Now().UTC()
	_, err := r.db.ExecContext(
		ctx,
		query,
		email.MessageID,
		email.Recipient,
		nullable(email.FromAddress),
		nullable(email.Subject),
		nullable(email.TemplateName),
		nullable(email.CampaignID),
		nullable(email.UserID),
		email.Status,
		email.Metadata,
		email.SentAt,
		now,
		now,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return &domain.ErrDuplicateMessageID{MessageID: email.MessageID}
		}
		return fmt.Errorf("failed to create outbound email: %w", err)
	}

	return nil
}

// GetByMessageID retrieves an outbound email by its message ID
func (r *OutboundEmailRepository) GetByMessageID(ctx context.Context, messageID string) (*domain.OutboundEmail, error) {
	query := fmt.Sprintf(`SELECT %s FROM outbound_emails WHERE message_id = $1`, outboundEmailSelectFields())

	var email domain.OutboundEmail
	err := scanOutboundEmail(r.db.QueryRowContext(ctx, query, messageID), &email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &domain.ErrNotFound{Entity: "outbound email", ID: messageID}
		}
		return nil, fmt.Errorf("failed to get outbound email: %w", err)
	}

	return &email, nil
}

// eventTimestampColumn maps an event type to the timestamp column it sets
func eventTimestampColumn(event domain.EmailEventType) (string, error) {
	switch event {
	case domain.EmailEventAccepted:
		return "accepted_at", nil
	case domain.EmailEventDelivered:
		return "delivered_at", nil
	case domain.EmailEventOpened:
		return "opened_at", nil
	case domain.EmailEventClicked:
		return "clicked_at", nil
	case domain.EmailEventBounced:
		return "bounced_at", nil
	case domain.EmailEventComplained:
		return "complained_at", nil
	case domain.EmailEventUnsubscribed:
		return "unsubscribed_at", nil
	case domain.EmailEventFailed:
		return "failed_at", nil
	default:
		return "", fmt.Errorf("no timestamp column for event type: %s", event)
	}
}

// SetEventTimestampIfNotSet sets the event's timestamp column only when it is
// still NULL. The conditional WHERE makes the write a compare-and-swap, so
// two concurrent deliveries of the same event cannot both win.
func (r *OutboundEmailRepository) SetEventTimestampIfNotSet(ctx context.Context, messageID string, event domain.EmailEventType, timestamp time.Time) error {
	column, err := eventTimestampColumn(event)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		UPDATE outbound_emails
		SET %s = $1,
			updated_at = NOW()
		WHERE message_id = $2 AND %s IS NULL
	`, column, column)

	_, err = r.db.ExecContext(ctx, query, timestamp, messageID)
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", column, err)
	}

	return nil
}

// UpdateStatus unconditionally sets the status column
func (r *OutboundEmailRepository) UpdateStatus(ctx context.Context, messageID string, status domain.EmailStatus) error {
	query := `
		UPDATE outbound_emails
		SET status = $1,
			updated_at = NOW()
		WHERE message_id = $2
	`

	_, err := r.db.ExecContext(ctx, query, status, messageID)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	return nil
}

// CountByCampaign returns the number of outbound emails in a campaign
func (r *OutboundEmailRepository) CountByCampaign(ctx context.Context, campaignID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM outbound_emails WHERE campaign_id = $1`,
		campaignID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count emails by campaign: %w", err)
	}
	return count, nil
}

// CountByUser returns the number of outbound emails sent for a user
func (r *OutboundEmailRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM outbound_emails WHERE user_id = $1`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count emails by user: %w", err)
	}
	return count, nil
}

// ListEmails retrieves outbound emails with cursor-based pagination and filtering
func (r *OutboundEmailRepository) ListEmails(ctx context.Context, params domain.EmailListParams) ([]*domain.OutboundEmail, string, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	// Use squirrel to build the query with placeholders
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	queryBuilder := psql.Select(
		"message_id", "recipient", "from_address", "subject", "template_name", "campaign_id", "user_id",
		"status", "metadata", "sent_at", "accepted_at", "delivered_at", "opened_at", "clicked_at",
		"bounced_at", "complained_at", "unsubscribed_at", "failed_at", "created_at", "updated_at",
	).From("outbound_emails")

	if params.Status != "" {
		queryBuilder = queryBuilder.Where(sq.Eq{"status": params.Status})
	}

	if params.Recipient != "" {
		queryBuilder = queryBuilder.Where(sq.Eq{"recipient": params.Recipient})
	}

	if params.CampaignID != "" {
		queryBuilder = queryBuilder.Where(sq.Eq{"campaign_id": params.CampaignID})
	}

	if params.UserID != "" {
		queryBuilder = queryBuilder.Where(sq.Eq{"user_id": params.UserID})
	}

	if params.TemplateName != "" {
		queryBuilder = queryBuilder.Where(sq.Eq{"template_name": params.TemplateName})
	}

	if params.SentAfter != nil {
		queryBuilder = queryBuilder.Where(sq.GtOrEq{"sent_at": params.SentAfter})
	}

	if params.SentBefore != nil {
		queryBuilder = queryBuilder.Where(sq.LtOrEq{"sent_at": params.SentBefore})
	}

	// Handle cursor-based pagination
	if params.Cursor != "" {
		cursorTime, cursorID, err := decodeCursor(params.Cursor)
		if err != nil {
			return nil, "", err
		}

		// Fetch rows strictly older than the cursor position, breaking
		// sent_at ties on message_id
		queryBuilder = queryBuilder.Where(
			sq.Or{
				sq.Lt{"sent_at": cursorTime},
				sq.And{
					sq.Eq{"sent_at": cursorTime},
					sq.Lt{"message_id": cursorID},
				},
			},
		)
	}

	// Fetch one extra row to detect whether there is a next page
	queryBuilder = queryBuilder.
		OrderBy("sent_at DESC", "message_id DESC").
		Limit(uint64(limit + 1))

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, "", fmt.Errorf("failed to build list query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, "", fmt.Errorf("failed to query outbound emails: %w", err)
	}
	defer rows.Close()

	var emails []*domain.OutboundEmail
	for rows.Next() {
		var email domain.OutboundEmail
		if err := scanOutboundEmail(rows, &email); err != nil {
			return nil, "", fmt.Errorf("failed to scan outbound email: %w", err)
		}
		emails = append(emails, &email)
	}

	if err := rows.Err(); err != nil {
		return nil, "", fmt.Errorf("error iterating outbound email rows: %w", err)
	}

	var nextCursor string
	if len(emails) > limit {
		emails = emails[:limit]
		last := emails[len(emails)-1]
		nextCursor = encodeCursor(last.SentAt, last.MessageID)
	}

	return emails, nextCursor, nil
}

// encodeCursor builds the base64 compound cursor (timestamp~id)
func encodeCursor(t time.Time, id string) string {
	raw := fmt.Sprintf("%s~%s", t.UTC().Format(time.RFC3339Nano), id)
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

// decodeCursor parses the base64 compound cursor (timestamp~id)
func decodeCursor(cursor string) (time.Time, string, error) {
	decoded, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid cursor encoding: %w", err)
	}

	parts := strings.SplitN(string(decoded), "~", 2)
	if len(parts) != 2 {
		return time.Time{}, "", fmt.Errorf("invalid cursor format: expected timestamp~id")
	}

	cursorTime, err := time.Parse(time.RFC3339Nano, parts[0])
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid cursor timestamp format: %w", err)
	}

	return cursorTime, parts[1], nil
}
