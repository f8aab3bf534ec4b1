package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadWithOptions(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "US", cfg.Mailgun.Region)
	assert.Equal(t, 300, cfg.Mailgun.SignatureTolerance)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("MAILGUN_API_KEY", "key-test")
	t.Setenv("MAILGUN_DOMAIN", "mg.example.com")
	t.Setenv("MAILGUN_WEBHOOK_SIGNING_KEY", "whsec-test")
	t.Setenv("MAILGUN_SIGNATURE_TOLERANCE", "60")
	t.Setenv("MAILGUN_REGION", "EU")
	t.Setenv("ENVIRONMENT", "development")

	cfg, err := LoadWithOptions(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "key-test", cfg.Mailgun.APIKey)
	assert.Equal(t, "mg.example.com", cfg.Mailgun.Domain)
	assert.Equal(t, "whsec-test", cfg.Mailgun.WebhookSigningKey)
	assert.Equal(t, 60, cfg.Mailgun.SignatureTolerance)
	assert.Equal(t, "EU", cfg.Mailgun.Region)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestDatabaseDSN(t *testing.T) {
	dsn := (&DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "mailbeacon",
		Password: "secret",
		DBName:   "mailbeacon",
		SSLMode:  "disable",
	}).DSN()

	assert.Equal(t, "host=db.internal port=5433 user=mailbeacon password=secret dbname=mailbeacon sslmode=disable", dsn)
}
