package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mailbeacon/mailbeacon/internal/domain"
)

// TemplateRepository implements domain.TemplateRepository
type TemplateRepository struct {
	db *sql.DB
}

// NewTemplateRepository creates a new template repository
func NewTemplateRepository(db *sql.DB) *TemplateRepository {
	return &TemplateRepository{
		db: db,
	}
}

// Upsert creates or updates a template keyed by its name
func (r *TemplateRepository) Upsert(ctx context.Context, template *domain.Template) error {
	if err := template.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO templates (name, subject, body, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (name)
		DO UPDATE SET
			subject = EXCLUDED.subject,
			body = EXCLUDED.body,
			updated_at = EXCLUDED.updated_at
	`,
		template.Name,
		template.Subject,
		template.Body,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert template: %w", err)
	}

	return nil
}

// GetByName retrieves a template by name
func (r *TemplateRepository) GetByName(ctx context.Context, name string) (*domain.Template, error) {
	var template domain.Template
	err := r.db.QueryRowContext(ctx, `
		SELECT name, subject, body, created_at, updated_at
		FROM templates
		WHERE name = $1
	`, name).Scan(
		&template.Name,
		&template.Subject,
		&template.Body,
		&template.CreatedAt,
		&template.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &domain.ErrNotFound{Entity: "template", ID: name}
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	return &template, nil
}

// List retrieves all templates ordered by name
func (r *TemplateRepository) List(ctx context.Context) ([]*domain.Template, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name, subject, body, created_at, updated_at
		FROM templates
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query templates: %w", err)
	}
	defer rows.Close()

	var templates []*domain.Template
	for rows.Next() {
		var template domain.Template
		if err := rows.Scan(
			&template.Name,
			&template.Subject,
			&template.Body,
			&template.CreatedAt,
			&template.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		templates = append(templates, &template)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating template rows: %w", err)
	}

	return templates, nil
}
