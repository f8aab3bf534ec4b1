package service

import (
	"context"
	"fmt"

	"github.com/mailbeacon/mailbeacon/internal/domain"
	"github.com/mailbeacon/mailbeacon/pkg/logger"
)

// InboundEmailService stores emails received through the inbound route
type InboundEmailService struct {
	repo   domain.InboundEmailRepository
	logger logger.Logger
}

// NewInboundEmailService creates a new InboundEmailService
func NewInboundEmailService(repo domain.InboundEmailRepository, logger logger.Logger) *InboundEmailService {
	return &InboundEmailService{
		repo:   repo,
		logger: logger,
	}
}

// Store persists a received inbound email
func (s *InboundEmailService) Store(ctx context.Context, email *domain.InboundEmail) error {
	if err := s.repo.Store(ctx, email); err != nil {
		s.logger.WithField("sender", email.Sender).
			WithField("recipient", email.Recipient).
			Error(fmt.Sprintf("Failed to store inbound email: %v", err))
		return err
	}

	s.logger.WithField("sender", email.Sender).
		WithField("recipient", email.Recipient).
		Info("Stored inbound email")
	return nil
}

// GetByID retrieves an inbound email by ID
func (s *InboundEmailService) GetByID(ctx context.Context, id string) (*domain.InboundEmail, error) {
	return s.repo.GetByID(ctx, id)
}

// ListByRecipient retrieves inbound emails addressed to a recipient
func (s *InboundEmailService) ListByRecipient(ctx context.Context, recipient string, limit, offset int) ([]*domain.InboundEmail, int, error) {
	return s.repo.ListByRecipient(ctx, recipient, limit, offset)
}
