package domain

import (
	"context"
	"fmt"
	"time"
)

//go:generate mockgen -destination mocks/mock_template_repository.go -package mocks github.com/mailbeacon/mailbeacon/internal/domain TemplateRepository

// Template is a reusable email body with liquid variable placeholders
type Template struct {
	Name      string    `json:"name"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Template) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("template name is required")
	}
	if t.Body == "" {
		return fmt.Errorf("template body is required")
	}
	return nil
}

// TemplateRepository defines methods for template persistence
type TemplateRepository interface {
	// Upsert creates or updates a template keyed by its name
	Upsert(ctx context.Context, template *Template) error

	// GetByName retrieves a template by name. Returns ErrNotFound when no
	// record matches.
	GetByName(ctx context.Context, name string) (*Template, error)

	// List retrieves all templates ordered by name
	List(ctx context.Context) ([]*Template, error)
}
