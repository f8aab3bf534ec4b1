package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mailbeacon/mailbeacon/internal/domain"
)

// InboundEmailRepository implements domain.InboundEmailRepository
type InboundEmailRepository struct {
	db *sql.DB
}

// NewInboundEmailRepository creates a new inbound email repository
func NewInboundEmailRepository(db *sql.DB) *InboundEmailRepository {
	return &InboundEmailRepository{
		db: db,
	}
}

// Store persists a received inbound email
func (r *InboundEmailRepository) Store(ctx context.Context, email *domain.InboundEmail) error {
	query := `
		INSERT INTO inbound_emails (
			id, sender, recipient, subject, body_plain, body_html,
			stripped_text, message_id, received_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		email.ID,
		email.Sender,
		email.Recipient,
		nullable(email.Subject),
		nullable(email.BodyPlain),
		nullable(email.BodyHTML),
		nullable(email.StrippedText),
		nullable(email.MessageID),
		email.ReceivedAt,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to store inbound email: %w", err)
	}

	return nil
}

// scanInboundEmail scans an inbound email row
func scanInboundEmail(scanner interface {
	Scan(dest ...interface{}) error
}, email *domain.InboundEmail) error {
	var subject, bodyPlain, bodyHTML, strippedText, messageID sql.NullString

	err := scanner.Scan(
		&email.ID,
		&email.Sender,
		&email.Recipient,
		&subject,
		&bodyPlain,
		&bodyHTML,
		&strippedText,
		&messageID,
		&email.ReceivedAt,
		&email.CreatedAt,
	)
	if err != nil {
		return err
	}

	email.Subject = subject.String
	email.BodyPlain = bodyPlain.String
	email.BodyHTML = bodyHTML.String
	email.StrippedText = strippedText.String
	email.MessageID = messageID.String

	return nil
}

// GetByID retrieves an inbound email by ID
func (r *InboundEmailRepository) GetByID(ctx context.Context, id string) (*domain.InboundEmail, error) {
	query := `
		SELECT id, sender, recipient, subject, body_plain, body_html,
			stripped_text, message_id, received_at, created_at
		FROM inbound_emails
		WHERE id = $1
	`

	var email domain.InboundEmail
	err := scanInboundEmail(r.db.QueryRowContext(ctx, query, id), &email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &domain.ErrNotFound{Entity: "inbound email", ID: id}
		}
		return nil, fmt.Errorf("failed to get inbound email: %w", err)
	}

	return &email, nil
}

// ListByRecipient retrieves inbound emails addressed to a recipient
func (r *InboundEmailRepository) ListByRecipient(ctx context.Context, recipient string, limit, offset int) ([]*domain.InboundEmail, int, error) {
	countQuery := `SELECT COUNT(*) FROM inbound_emails WHERE recipient = $1`
	var totalCount int
	err := r.db.QueryRowContext(ctx, countQuery, recipient).Scan(&totalCount)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count inbound emails: %w", err)
	}

	if limit <= 0 {
		limit = 50 // Default limit
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT id, sender, recipient, subject, body_plain, body_html,
			stripped_text, message_id, received_at, created_at
		FROM inbound_emails
		WHERE recipient = $1
		ORDER BY received_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, recipient, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query inbound emails: %w", err)
	}
	defer rows.Close()

	var emails []*domain.InboundEmail
	for rows.Next() {
		var email domain.InboundEmail
		if err := scanInboundEmail(rows, &email); err != nil {
			return nil, 0, fmt.Errorf("failed to scan inbound email: %w", err)
		}
		emails = append(emails, &email)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating inbound email rows: %w", err)
	}

	return emails, totalCount, nil
}
