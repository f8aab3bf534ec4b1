package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/mailbeacon/mailbeacon/config"
	"github.com/mailbeacon/mailbeacon/internal/domain"
	"github.com/mailbeacon/mailbeacon/pkg/logger"
)

// MailgunService implements domain.Mailer against the Mailgun messages API
type MailgunService struct {
	httpClient domain.HTTPClient
	config     config.MailgunConfig
	logger     logger.Logger
}

// NewMailgunService creates a new MailgunService using the global Mailgun
// credentials from config. Per-tenant credentials on the request override
// them.
func NewMailgunService(httpClient domain.HTTPClient, config config.MailgunConfig, logger logger.Logger) *MailgunService {
	return &MailgunService{
		httpClient: httpClient,
		config:     config,
		logger:     logger,
	}
}

// SendEmail sends an email through Mailgun. The caller-generated message ID
// is set as the Message-Id header so later webhook events correlate back to
// the tracking row.
func (s *MailgunService) SendEmail(ctx context.Context, request domain.SendEmailRequest) error {
	if err := request.Validate(); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}

	apiKey := s.config.APIKey
	sendingDomain := s.config.Domain
	if request.Tenant != nil {
		if request.Tenant.MailgunAPIKey != "" {
			apiKey = request.Tenant.MailgunAPIKey
		}
		if request.Tenant.Domain != "" {
			sendingDomain = request.Tenant.Domain
		}
	}
	if apiKey == "" {
		return fmt.Errorf("mailgun API key is not configured")
	}
	if sendingDomain == "" {
		return fmt.Errorf("mailgun sending domain is not configured")
	}

	// Determine endpoint based on region
	endpoint := "https://api.mailgun.net/v3"
	if strings.ToLower(s.config.Region) == "eu" {
		endpoint = "https://api.eu.mailgun.net/v3"
	}
	apiURL := fmt.Sprintf("%s/%s/messages", endpoint, sendingDomain)

	form := url.Values{}
	if request.FromName != "" {
		form.Add("from", fmt.Sprintf("%s <%s>", request.FromName, request.FromAddress))
	} else {
		form.Add("from", request.FromAddress)
	}
	form.Add("to", request.To)
	form.Add("subject", request.Subject)
	form.Add("html", request.HTML)
	form.Add("h:Message-Id", fmt.Sprintf("<%s>", request.MessageID))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		s.logger.Error(fmt.Sprintf("Failed to create request for sending Mailgun email: %v", err))
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.SetBasicAuth("api", apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Error(fmt.Sprintf("Failed to execute request for sending Mailgun email: %v", err))
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		s.logger.Error(fmt.Sprintf("Mailgun API returned non-OK status code %d: %s", resp.StatusCode, string(body)))
		return fmt.Errorf("API returned non-OK status code %d", resp.StatusCode)
	}

	return nil
}
