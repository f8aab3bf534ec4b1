package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/mailbeacon/mailbeacon/internal/domain"
	"github.com/mailbeacon/mailbeacon/pkg/crypto"
	"github.com/mailbeacon/mailbeacon/pkg/logger"
)

// WebhookAuthService implements domain.WebhookVerifier for Mailgun webhooks.
// A webhook signature is valid when HMAC-SHA256(timestamp + token, key) equals
// the provided signature, the comparison runs in constant time, and the
// timestamp is no older than the configured tolerance.
type WebhookAuthService struct {
	tenantRepo domain.TenantRepository
	signingKey string
	tolerance  time.Duration
	logger     logger.Logger

	// now is swappable for tests
	now func() time.Time
}

// NewWebhookAuthService creates a new WebhookAuthService. signingKey is the
// global fallback key; toleranceSeconds bounds the accepted webhook age, with
// zero or negative disabling the age check.
func NewWebhookAuthService(tenantRepo domain.TenantRepository, signingKey string, toleranceSeconds int, logger logger.Logger) *WebhookAuthService {
	return &WebhookAuthService{
		tenantRepo: tenantRepo,
		signingKey: signingKey,
		tolerance:  time.Duration(toleranceSeconds) * time.Second,
		logger:     logger,
		now:        time.Now,
	}
}

// Verify authenticates a webhook signature. senderDomain selects the signing
// key: a tenant registered for that domain with a key of its own wins,
// otherwise the global key applies. Timestamps from the future are accepted;
// only age beyond the tolerance rejects the request.
func (s *WebhookAuthService) Verify(ctx context.Context, sig *domain.MailgunSignature, senderDomain string) error {
	if sig == nil || sig.Timestamp == "" || sig.Token == "" || sig.Signature == "" {
		return domain.NewAuthError(domain.AuthErrMissingParameters, "timestamp, token and signature are required")
	}

	ts, err := strconv.ParseInt(sig.Timestamp, 10, 64)
	if err != nil {
		return domain.NewAuthError(domain.AuthErrStaleTimestamp, fmt.Sprintf("timestamp is not a unix epoch: %s", sig.Timestamp))
	}

	if s.tolerance > 0 {
		age := s.now().UTC().Sub(time.Unix(ts, 0))
		if age > s.tolerance {
			return domain.NewAuthError(domain.AuthErrStaleTimestamp,
				fmt.Sprintf("webhook timestamp is %s old, tolerance is %s", age.Truncate(time.Second), s.tolerance))
		}
	}

	key, err := s.resolveSigningKey(ctx, senderDomain)
	if err != nil {
		return err
	}
	if key == "" {
		return domain.NewAuthError(domain.AuthErrKeyNotConfigured, "no webhook signing key configured")
	}

	if !crypto.VerifyHMAC256([]byte(sig.Timestamp+sig.Token), key, sig.Signature) {
		s.logger.WithField("sender_domain", senderDomain).Warn("Webhook signature mismatch")
		return domain.NewAuthError(domain.AuthErrInvalidSignature, "signature does not match")
	}

	return nil
}

// resolveSigningKey returns the tenant key for senderDomain when one is
// registered, falling back to the global key otherwise.
func (s *WebhookAuthService) resolveSigningKey(ctx context.Context, senderDomain string) (string, error) {
	if senderDomain == "" {
		return s.signingKey, nil
	}

	tenant, err := s.tenantRepo.GetByDomain(ctx, senderDomain)
	if err != nil {
		var notFound *domain.ErrTenantNotFound
		if errors.As(err, &notFound) {
			return s.signingKey, nil
		}
		s.logger.WithField("sender_domain", senderDomain).
			Error(fmt.Sprintf("Failed to look up tenant signing key: %v", err))
		return "", fmt.Errorf("failed to resolve signing key: %w", err)
	}

	if tenant.WebhookSigningKey != "" {
		return tenant.WebhookSigningKey, nil
	}
	return s.signingKey, nil
}
