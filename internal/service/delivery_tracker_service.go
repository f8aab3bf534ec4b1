package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mailbeacon/mailbeacon/internal/domain"
	"github.com/mailbeacon/mailbeacon/pkg/logger"
)

// DeliveryTrackerService implements domain.DeliveryTracker. It owns the
// per-message delivery state machine: one tracking row per send, an
// append-only event log, and idempotent first-occurrence timestamps.
type DeliveryTrackerService struct {
	emailRepo domain.OutboundEmailRepository
	eventRepo domain.WebhookEventRepository
	logger    logger.Logger
}

// NewDeliveryTrackerService creates a new DeliveryTrackerService
func NewDeliveryTrackerService(emailRepo domain.OutboundEmailRepository, eventRepo domain.WebhookEventRepository, logger logger.Logger) *DeliveryTrackerService {
	return &DeliveryTrackerService{
		emailRepo: emailRepo,
		eventRepo: eventRepo,
		logger:    logger,
	}
}

// RecordSend creates the tracking row for a dispatched email. Status starts at
// sent and SentAt defaults to now when the caller leaves it zero.
func (s *DeliveryTrackerService) RecordSend(ctx context.Context, email *domain.OutboundEmail) (*domain.OutboundEmail, error) {
	if email.MessageID == "" {
		return nil, domain.ValidationError{Message: "message ID is required"}
	}
	if email.Recipient == "" {
		return nil, domain.ValidationError{Message: "recipient is required"}
	}

	if email.Status == "" {
		email.Status = domain.EmailStatusSent
	}
	if email.SentAt.IsZero() {
		email.SentAt = time.Now().UTC()
	}

	if err := s.emailRepo.Create(ctx, email); err != nil {
		var dup *domain.ErrDuplicateMessageID
		if !errors.As(err, &dup) {
			s.logger.WithField("message_id", email.MessageID).
				Error(fmt.Sprintf("Failed to record send: %v", err))
		}
		return nil, err
	}

	return email, nil
}

// ApplyEvent records a verified webhook event. The event log row is appended
// first and unconditionally, so duplicates and events for unknown messages
// remain auditable. The tracking row is then updated in two steps: the
// per-event timestamp is set only if still unset, and the status column is
// overwritten with the event's status. Replaying the same event is therefore
// a no-op on the timestamp and converges on the same status.
func (s *DeliveryTrackerService) ApplyEvent(ctx context.Context, event *domain.EmailEvent) (*domain.OutboundEmail, error) {
	logEntry := &domain.WebhookEventLog{
		ID:         uuid.New().String(),
		EventType:  string(event.Type),
		MessageID:  event.MessageID,
		Recipient:  event.Recipient,
		RawPayload: event.RawPayload,
	}
	if err := s.eventRepo.StoreEvent(ctx, logEntry); err != nil {
		return nil, fmt.Errorf("failed to store webhook event: %w", err)
	}

	if event.MessageID == "" {
		s.logger.WithField("event_type", event.Type).
			Info("Webhook event carries no message ID, logged without state change")
		return nil, nil
	}

	if _, err := s.emailRepo.GetByMessageID(ctx, event.MessageID); err != nil {
		var notFound *domain.ErrNotFound
		if errors.As(err, &notFound) {
			s.logger.WithField("message_id", event.MessageID).
				WithField("event_type", event.Type).
				Info("Webhook event for unknown message, logged without state change")
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get outbound email: %w", err)
	}

	if !isKnownEventType(event.Type) {
		s.logger.WithField("message_id", event.MessageID).
			WithField("event_type", event.Type).
			Warn("Unrecognized webhook event type, logged without state change")
		return s.emailRepo.GetByMessageID(ctx, event.MessageID)
	}

	occurredAt := event.Timestamp
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	if err := s.emailRepo.SetEventTimestampIfNotSet(ctx, event.MessageID, event.Type, occurredAt); err != nil {
		return nil, fmt.Errorf("failed to set event timestamp: %w", err)
	}

	if status := statusForEvent(event.Type); status != "" {
		if err := s.emailRepo.UpdateStatus(ctx, event.MessageID, status); err != nil {
			return nil, fmt.Errorf("failed to update email status: %w", err)
		}
	}

	email, err := s.emailRepo.GetByMessageID(ctx, event.MessageID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload outbound email: %w", err)
	}

	return email, nil
}

// CumulativeCampaignStats computes the delivery funnel for a campaign. The
// sent total comes from the tracking rows; every other total is the number of
// distinct messages that produced at least one event of that type.
func (s *DeliveryTrackerService) CumulativeCampaignStats(ctx context.Context, campaignID string) (*domain.CampaignStats, error) {
	total, err := s.emailRepo.CountByCampaign(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to count campaign emails: %w", err)
	}

	counts, err := s.eventRepo.CountDistinctByCampaign(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to count campaign events: %w", err)
	}

	return buildStats(total, counts), nil
}

// CumulativeUserStats computes the delivery funnel for a user
func (s *DeliveryTrackerService) CumulativeUserStats(ctx context.Context, userID string) (*domain.CampaignStats, error) {
	total, err := s.emailRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count user emails: %w", err)
	}

	counts, err := s.eventRepo.CountDistinctByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count user events: %w", err)
	}

	return buildStats(total, counts), nil
}

func buildStats(totalSent int, counts map[domain.EmailEventType]int) *domain.CampaignStats {
	return &domain.CampaignStats{
		TotalSent:         totalSent,
		TotalDelivered:    counts[domain.EmailEventDelivered],
		TotalOpened:       counts[domain.EmailEventOpened],
		TotalClicked:      counts[domain.EmailEventClicked],
		TotalBounced:      counts[domain.EmailEventBounced],
		TotalComplained:   counts[domain.EmailEventComplained],
		TotalUnsubscribed: counts[domain.EmailEventUnsubscribed],
		TotalFailed:       counts[domain.EmailEventFailed],
	}
}

func isKnownEventType(t domain.EmailEventType) bool {
	for _, known := range domain.KnownEventTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// statusForEvent maps an event type to the status it moves the email to.
// Accepted records a timestamp but does not change the status.
func statusForEvent(t domain.EmailEventType) domain.EmailStatus {
	switch t {
	case domain.EmailEventDelivered:
		return domain.EmailStatusDelivered
	case domain.EmailEventOpened:
		return domain.EmailStatusOpened
	case domain.EmailEventClicked:
		return domain.EmailStatusClicked
	case domain.EmailEventBounced:
		return domain.EmailStatusBounced
	case domain.EmailEventComplained:
		return domain.EmailStatusComplained
	case domain.EmailEventUnsubscribed:
		return domain.EmailStatusUnsubscribed
	case domain.EmailEventFailed:
		return domain.EmailStatusFailed
	default:
		return ""
	}
}
