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

func TestTemplateUpsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewTemplateRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO templates")).
		WithArgs("welcome", "Welcome, {{ name }}!", "<p>Hello {{ name }}</p>", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Upsert(context.Background(), &domain.Template{
		Name:    "welcome",
		Subject: "Welcome, {{ name }}!",
		Body:    "<p>Hello {{ name }}</p>",
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTemplateGetByName(t *testing.T) {
	columns := []string{"name", "subject", "body", "created_at", "updated_at"}

	t.Run("returns the matching template", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewTemplateRepository(db)
		now := time.Now().UTC()

		mock.ExpectQuery(regexp.QuoteMeta("FROM templates")).
			WithArgs("welcome").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow("welcome", "Welcome!", "<p>Hi</p>", now, now))

		template, err := repo.GetByName(context.Background(), "welcome")
		require.NoError(t, err)
		assert.Equal(t, "Welcome!", template.Subject)
	})

	t.Run("missing template maps to ErrNotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewTemplateRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("FROM templates")).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(columns))

		_, err = repo.GetByName(context.Background(), "missing")

		var notFound *domain.ErrNotFound
		assert.True(t, errors.As(err, &notFound))
	})
}

func TestTemplateList(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewTemplateRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY name ASC")).
		WillReturnRows(sqlmock.NewRows([]string{"name", "subject", "body", "created_at", "updated_at"}).
			AddRow("goodbye", "Bye", "<p>Bye</p>", now, now).
			AddRow("welcome", "Hi", "<p>Hi</p>", now, now))

	templates, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, templates, 2)
	assert.Equal(t, "goodbye", templates[0].Name)
}
