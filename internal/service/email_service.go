package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/osteele/liquid"

	"github.com/mailbeacon/mailbeacon/internal/domain"
	"github.com/mailbeacon/mailbeacon/pkg/logger"
)

// SendTemplatedEmailRequest is the API-facing request to dispatch one email
// rendered from a stored template.
type SendTemplatedEmailRequest struct {
	To           string                 `json:"to"`
	FromName     string                 `json:"from_name,omitempty"`
	FromAddress  string                 `json:"from_address"`
	TemplateName string                 `json:"template_name"`
	Data         map[string]interface{} `json:"data,omitempty"`
	CampaignID   string                 `json:"campaign_id,omitempty"`
	UserID       string                 `json:"user_id,omitempty"`
	Metadata     domain.Metadata        `json:"metadata,omitempty"`
}

func (r *SendTemplatedEmailRequest) Validate() error {
	if r.To == "" {
		return domain.ValidationError{Message: "to is required"}
	}
	if r.FromAddress == "" {
		return domain.ValidationError{Message: "from_address is required"}
	}
	if r.TemplateName == "" {
		return domain.ValidationError{Message: "template_name is required"}
	}
	return nil
}

// EmailService renders templates, dispatches emails through the Mailer and
// registers each send with the delivery tracker.
type EmailService struct {
	templateRepo  domain.TemplateRepository
	tenantRepo    domain.TenantRepository
	tracker       domain.DeliveryTracker
	mailer        domain.Mailer
	sendingDomain string
	logger        logger.Logger
	engine        *liquid.Engine
}

// NewEmailService creates a new EmailService. sendingDomain becomes the
// domain part of generated message IDs.
func NewEmailService(
	templateRepo domain.TemplateRepository,
	tenantRepo domain.TenantRepository,
	tracker domain.DeliveryTracker,
	mailer domain.Mailer,
	sendingDomain string,
	logger logger.Logger,
) *EmailService {
	return &EmailService{
		templateRepo:  templateRepo,
		tenantRepo:    tenantRepo,
		tracker:       tracker,
		mailer:        mailer,
		sendingDomain: sendingDomain,
		logger:        logger,
		engine:        liquid.NewEngine(),
	}
}

// GenerateMessageID returns a new globally unique message ID scoped to the
// sending domain, in the form local@domain expected by Message-Id headers.
func (s *EmailService) GenerateMessageID() string {
	domainPart := s.sendingDomain
	if domainPart == "" {
		domainPart = "mailbeacon.local"
	}
	return fmt.Sprintf("%s@%s", uuid.New().String(), domainPart)
}

// SendTemplatedEmail renders the named template with the request data, records
// the send with the tracker, then dispatches through the Mailer. The tracking
// row is created before dispatch so a webhook racing the API response still
// finds its message.
func (s *EmailService) SendTemplatedEmail(ctx context.Context, request SendTemplatedEmailRequest) (*domain.OutboundEmail, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	template, err := s.templateRepo.GetByName(ctx, request.TemplateName)
	if err != nil {
		return nil, err
	}

	bindings := map[string]interface{}(request.Data)

	subject, err := s.engine.ParseAndRenderString(template.Subject, bindings)
	if err != nil {
		return nil, fmt.Errorf("failed to render template subject: %w", err)
	}
	html, err := s.engine.ParseAndRenderString(template.Body, bindings)
	if err != nil {
		return nil, fmt.Errorf("failed to render template body: %w", err)
	}

	tenant := s.tenantForSender(ctx, request.FromAddress)

	messageID := s.GenerateMessageID()
	email := &domain.OutboundEmail{
		MessageID:    messageID,
		Recipient:    request.To,
		FromAddress:  request.FromAddress,
		Subject:      subject,
		TemplateName: request.TemplateName,
		CampaignID:   request.CampaignID,
		UserID:       request.UserID,
		Metadata:     request.Metadata,
	}

	email, err = s.tracker.RecordSend(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to record send: %w", err)
	}

	sendReq := domain.SendEmailRequest{
		MessageID:   messageID,
		FromName:    request.FromName,
		FromAddress: request.FromAddress,
		To:          request.To,
		Subject:     subject,
		HTML:        html,
		Tenant:      tenant,
	}
	if err := s.mailer.SendEmail(ctx, sendReq); err != nil {
		s.logger.WithField("message_id", messageID).
			Error(fmt.Sprintf("Failed to dispatch email: %v", err))
		return nil, fmt.Errorf("failed to dispatch email: %w", err)
	}

	return email, nil
}

// tenantForSender resolves the tenant registered for the sender's domain.
// Returns nil when no tenant matches, which makes the Mailer fall back to the
// global credentials.
func (s *EmailService) tenantForSender(ctx context.Context, fromAddress string) *domain.Tenant {
	senderDomain := domain.DomainOfAddress(fromAddress)
	if senderDomain == "" {
		return nil
	}
	tenant, err := s.tenantRepo.GetByDomain(ctx, senderDomain)
	if err != nil {
		return nil
	}
	return tenant
}
