package service

import (
	"context"
	"fmt"

	"github.com/osteele/liquid"

	"github.com/mailbeacon/mailbeacon/internal/domain"
	"github.com/mailbeacon/mailbeacon/pkg/logger"
)

// TemplateService manages stored email templates. Upserts parse the template
// up front so broken Liquid never reaches send time.
type TemplateService struct {
	repo   domain.TemplateRepository
	logger logger.Logger
	engine *liquid.Engine
}

// NewTemplateService creates a new TemplateService
func NewTemplateService(repo domain.TemplateRepository, logger logger.Logger) *TemplateService {
	return &TemplateService{
		repo:   repo,
		logger: logger,
		engine: liquid.NewEngine(),
	}
}

// Upsert validates and stores a template
func (s *TemplateService) Upsert(ctx context.Context, template *domain.Template) error {
	if err := template.Validate(); err != nil {
		return err
	}

	if _, err := s.engine.ParseString(template.Subject); err != nil {
		return domain.ValidationError{Message: fmt.Sprintf("invalid subject template: %v", err)}
	}
	if _, err := s.engine.ParseString(template.Body); err != nil {
		return domain.ValidationError{Message: fmt.Sprintf("invalid body template: %v", err)}
	}

	if err := s.repo.Upsert(ctx, template); err != nil {
		s.logger.WithField("template_name", template.Name).
			Error(fmt.Sprintf("Failed to upsert template: %v", err))
		return err
	}

	return nil
}

// GetByName retrieves a template by name
func (s *TemplateService) GetByName(ctx context.Context, name string) (*domain.Template, error) {
	return s.repo.GetByName(ctx, name)
}

// List retrieves all templates
func (s *TemplateService) List(ctx context.Context) ([]*domain.Template, error) {
	return s.repo.List(ctx)
}
