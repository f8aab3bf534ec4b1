package domain

import (
	"context"
	"fmt"
	"time"
)

//go:generate mockgen -destination mocks/mock_tenant_repository.go -package mocks github.com/mailbeacon/mailbeacon/internal/domain TenantRepository

// Tenant is a registered sending domain with its own Mailgun credentials.
// Its webhook signing key takes precedence over the globally configured key
// when verifying webhooks for events originating from the tenant's domain.
type Tenant struct {
	ID                string    `json:"id"`
	Domain            string    `json:"domain"`
	WebhookSigningKey string    `json:"webhook_signing_key,omitempty"`
	MailgunAPIKey     string    `json:"mailgun_api_key,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (t *Tenant) Validate() error {
	if t.Domain == "" {
		return fmt.Errorf("domain is required for tenant configuration")
	}
	return nil
}

// ErrTenantNotFound is returned when no tenant is registered for a domain
type ErrTenantNotFound struct {
	Domain string
}

func (e *ErrTenantNotFound) Error() string {
	return fmt.Sprintf("tenant not found for domain: %s", e.Domain)
}

// TenantRepository is the registry mapping sending domains to signing secrets
type TenantRepository interface {
	// GetByDomain retrieves the tenant registered for a sending domain.
	// Returns ErrTenantNotFound when no tenant matches.
	GetByDomain(ctx context.Context, domain string) (*Tenant, error)

	// Upsert creates or updates a tenant keyed by its domain
	Upsert(ctx context.Context, tenant *Tenant) error
}
