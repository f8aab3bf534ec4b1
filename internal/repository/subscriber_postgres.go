package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/mailbeacon/mailbeacon/internal/domain"
)

// SubscriberRepository implements domain.SubscriberRepository
type SubscriberRepository struct {
	db *sql.DB
}

// NewSubscriberRepository creates a new subscriber repository
func NewSubscriberRepository(db *sql.DB) *SubscriberRepository {
	return &SubscriberRepository{
		db: db,
	}
}

// Upsert creates or updates a subscriber keyed by (list_name, email)
func (r *SubscriberRepository) Upsert(ctx context.Context, subscriber *domain.Subscriber) error {
	if err := subscriber.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO subscribers (list_name, email, name, attributes, subscribed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (list_name, email)
		DO UPDATE SET
			name = EXCLUDED.name,
			attributes = EXCLUDED.attributes,
			subscribed = EXCLUDED.subscribed,
			updated_at = EXCLUDED.updated_at
	`,
		subscriber.ListName,
		strings.ToLower(subscriber.Email),
		nullable(subscriber.Name),
		subscriber.Attributes,
		subscriber.Subscribed,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert subscriber: %w", err)
	}

	return nil
}

// scanSubscriber scans a subscriber row
func scanSubscriber(scanner interface {
	Scan(dest ...interface{}) error
}, subscriber *domain.Subscriber) error {
	var name sql.NullString

	err := scanner.Scan(
		&subscriber.ListName,
		&subscriber.Email,
		&name,
		&subscriber.Attributes,
		&subscriber.Subscribed,
		&subscriber.CreatedAt,
		&subscriber.UpdatedAt,
	)
	if err != nil {
		return err
	}

	subscriber.Name = name.String

	return nil
}

// GetByListAndEmail retrieves a single subscriber
func (r *SubscriberRepository) GetByListAndEmail(ctx context.Context, listName, email string) (*domain.Subscriber, error) {
	query := `
		SELECT list_name, email, name, attributes, subscribed, created_at, updated_at
		FROM subscribers
		WHERE list_name = $1 AND email = $2
	`

	var subscriber domain.Subscriber
	err := scanSubscriber(r.db.QueryRowContext(ctx, query, listName, strings.ToLower(email)), &subscriber)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &domain.ErrNotFound{Entity: "subscriber", ID: email}
		}
		return nil, fmt.Errorf("failed to get subscriber: %w", err)
	}

	return &subscriber, nil
}

// ListByName retrieves every subscriber of a list, ordered by email
func (r *SubscriberRepository) ListByName(ctx context.Context, listName string) ([]*domain.Subscriber, error) {
	query := `
		SELECT list_name, email, name, attributes, subscribed, created_at, updated_at
		FROM subscribers
		WHERE list_name = $1
		ORDER BY email ASC
	`

	rows, err := r.db.QueryContext(ctx, query, listName)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscribers: %w", err)
	}
	defer rows.Close()

	var subscribers []*domain.Subscriber
	for rows.Next() {
		var subscriber domain.Subscriber
		if err := scanSubscriber(rows, &subscriber); err != nil {
			return nil, fmt.Errorf("failed to scan subscriber: %w", err)
		}
		subscribers = append(subscribers, &subscriber)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subscriber rows: %w", err)
	}

	return subscribers, nil
}

// Unsubscribe flips the subscribed flag off for a list member
func (r *SubscriberRepository) Unsubscribe(ctx context.Context, listName, email string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE subscribers
		SET subscribed = FALSE,
			updated_at = NOW()
		WHERE list_name = $1 AND email = $2
	`, listName, strings.ToLower(email))
	if err != nil {
		return fmt.Errorf("failed to unsubscribe: %w", err)
	}

	return nil
}

// CountByList returns the number of subscribed members of a list
func (r *SubscriberRepository) CountByList(ctx context.Context, listName string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM subscribers WHERE list_name = $1 AND subscribed = TRUE`,
		listName,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count subscribers: %w", err)
	}
	return count, nil
}
