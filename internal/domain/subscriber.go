package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/asaskevich/govalidator"
)

//go:generate mockgen -destination mocks/mock_subscriber_repository.go -package mocks github.com/mailbeacon/mailbeacon/internal/domain SubscriberRepository

// Subscriber is a member of a named distribution list
type Subscriber struct {
	Email      string    `json:"email"`
	ListName   string    `json:"list_name"`
	Name       string    `json:"name,omitempty"`
	Attributes Metadata  `json:"attributes,omitempty"`
	Subscribed bool      `json:"subscribed"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (s *Subscriber) Validate() error {
	if s.ListName == "" {
		return fmt.Errorf("list name is required")
	}
	if !govalidator.IsEmail(s.Email) {
		return fmt.Errorf("invalid subscriber email: %s", s.Email)
	}
	return nil
}

// SubscriberRepository defines methods for distribution list persistence
type SubscriberRepository interface {
	// Upsert creates or updates a subscriber keyed by (list_name, email)
	Upsert(ctx context.Context, subscriber *Subscriber) error

	// GetByListAndEmail retrieves a single subscriber. Returns ErrNotFound
	// when no record matches.
	GetByListAndEmail(ctx context.Context, listName, email string) (*Subscriber, error)

	// ListByName retrieves every subscriber of a list, ordered by email
	ListByName(ctx context.Context, listName string) ([]*Subscriber, error)

	// Unsubscribe flips the subscribed flag off for a list member
	Unsubscribe(ctx context.Context, listName, email string) error

	// CountByList returns the number of subscribed members of a list
	CountByList(ctx context.Context, listName string) (int, error)
}
