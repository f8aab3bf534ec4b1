package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailbeacon/mailbeacon/internal/domain"
)

func TestTenantGetByDomain(t *testing.T) {
	columns := []string{"id", "domain", "webhook_signing_key", "mailgun_api_key", "created_at", "updated_at"}

	t.Run("returns the registered tenant", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewTenantRepository(db)
		now := time.Now().UTC()

		mock.ExpectQuery(regexp.QuoteMeta("FROM tenants")).
			WithArgs("mg.tenant.io").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow("t-1", "mg.tenant.io", "tenant-key", nil, now, now))

		tenant, err := repo.GetByDomain(context.Background(), "mg.tenant.io")
		require.NoError(t, err)
		assert.Equal(t, "tenant-key", tenant.WebhookSigningKey)
		assert.Empty(t, tenant.MailgunAPIKey)
	})

	t.Run("lookups are case insensitive on domain", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewTenantRepository(db)
		now := time.Now().UTC()

		mock.ExpectQuery(regexp.QuoteMeta("FROM tenants")).
			WithArgs("mg.tenant.io").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow("t-1", "mg.tenant.io", "tenant-key", nil, now, now))

		_, err = repo.GetByDomain(context.Background(), "MG.Tenant.IO")
		assert.NoError(t, err)
	})

	t.Run("missing tenant maps to ErrTenantNotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewTenantRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("FROM tenants")).
			WithArgs("nobody.io").
			WillReturnRows(sqlmock.NewRows(columns))

		_, err = repo.GetByDomain(context.Background(), "nobody.io")

		var notFound *domain.ErrTenantNotFound
		assert.True(t, errors.As(err, &notFound))
	})
}

func TestTenantUpsert(t *testing.T) {
	t.Run("inserts with a generated ID", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewTenantRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO tenants")).
			WithArgs(sqlmock.AnyArg(), "mg.tenant.io", "tenant-key", nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		tenant := &domain.Tenant{Domain: "MG.Tenant.IO", WebhookSigningKey: "tenant-key"}
		require.NoError(t, repo.Upsert(context.Background(), tenant))
		assert.NotEmpty(t, tenant.ID)
	})

	t.Run("rejects a tenant without a domain", func(t *testing.T) {
		db, _, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewTenantRepository(db)
		assert.Error(t, repo.Upsert(context.Background(), &domain.Tenant{}))
	})
}
