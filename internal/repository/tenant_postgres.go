package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mailbeacon/mailbeacon/internal/domain"
)

// TenantRepository implements domain.TenantRepository
type TenantRepository struct {
	db *sql.DB
}

// NewTenantRepository creates a new tenant repository
func NewTenantRepository(db *sql.DB) *TenantRepository {
	return &TenantRepository{
		db: db,
	}
}

// GetByDomain retrieves the tenant registered for a sending domain
func (r *TenantRepository) GetByDomain(ctx context.Context, domainName string) (*domain.Tenant, error) {
	var tenant domain.Tenant
	var signingKey, apiKey sql.NullString

	err := r.db.QueryRowContext(ctx, `
		SELECT id, domain, webhook_signing_key, mailgun_api_key, created_at, updated_at
		FROM tenants
		WHERE domain = $1
	`, strings.ToLower(domainName)).Scan(
		&tenant.ID,
		&tenant.Domain,
		&signingKey,
		&apiKey,
		&tenant.CreatedAt,
		&tenant.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &domain.ErrTenantNotFound{Domain: domainName}
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	tenant.WebhookSigningKey = signingKey.String
	tenant.MailgunAPIKey = apiKey.String

	return &tenant, nil
}

// Upsert creates or updates a tenant keyed by its domain
func (r *TenantRepository) Upsert(ctx context.Context, tenant *domain.Tenant) error {
	if err := tenant.Validate(); err != nil {
		return err
	}

	if tenant.ID == "" {
		tenant.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tenants (id, domain, webhook_signing_key, mailgun_api_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (domain)
		DO UPDATE SET
			webhook_signing_key = EXCLUDED.webhook_signing_key,
			mailgun_api_key = EXCLUDED.mailgun_api_key,
			updated_at = EXCLUDED.updated_at
	`,
		tenant.ID,
		strings.ToLower(tenant.Domain),
		nullable(tenant.WebhookSigningKey),
		nullable(tenant.MailgunAPIKey),
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert tenant: %w", err)
	}

	return nil
}
