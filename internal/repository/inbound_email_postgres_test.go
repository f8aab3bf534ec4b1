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

func inboundEmailColumns() []string {
	return []string{
		"id", "sender", "recipient", "subject", "body_plain", "body_html",
		"stripped_text", "message_id", "received_at", "created_at",
	}
}

func TestInboundEmailStore(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewInboundEmailRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO inbound_emails")).
		WithArgs(
			"in-1", "alice@example.com", "support@mg.example.com", "Help", "broken link", nil,
			nil, nil, sqlmock.AnyArg(), sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Store(context.Background(), &domain.InboundEmail{
		ID:         "in-1",
		Sender:     "alice@example.com",
		Recipient:  "support@mg.example.com",
		Subject:    "Help",
		BodyPlain:  "broken link",
		ReceivedAt: time.Now().UTC(),
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInboundEmailGetByID(t *testing.T) {
	t.Run("returns the matching email", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewInboundEmailRepository(db)
		now := time.Now().UTC()

		mock.ExpectQuery(regexp.QuoteMeta("FROM inbound_emails")).
			WithArgs("in-1").
			WillReturnRows(sqlmock.NewRows(inboundEmailColumns()).
				AddRow("in-1", "alice@example.com", "support@mg.example.com", "Help", "broken link", nil, nil, nil, now, now))

		email, err := repo.GetByID(context.Background(), "in-1")
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", email.Sender)
		assert.Empty(t, email.BodyHTML)
	})

	t.Run("missing email maps to ErrNotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewInboundEmailRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("FROM inbound_emails")).
			WithArgs("in-404").
			WillReturnRows(sqlmock.NewRows(inboundEmailColumns()))

		_, err = repo.GetByID(context.Background(), "in-404")

		var notFound *domain.ErrNotFound
		assert.True(t, errors.As(err, &notFound))
	})
}

func TestInboundEmailListByRecipient(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewInboundEmailRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM inbound_emails")).
		WithArgs("support@mg.example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY received_at DESC")).
		WithArgs("support@mg.example.com", 2, 0).
		WillReturnRows(sqlmock.NewRows(inboundEmailColumns()).
			AddRow("in-2", "b@example.com", "support@mg.example.com", nil, nil, nil, nil, nil, now, now).
			AddRow("in-1", "a@example.com", "support@mg.example.com", nil, nil, nil, nil, nil, now.Add(-time.Hour), now))

	emails, total, err := repo.ListByRecipient(context.Background(), "support@mg.example.com", 2, 0)
	require.NoError(t, err)
	assert.Len(t, emails, 2)
	assert.Equal(t, 5, total)
	assert.Equal(t, "b@example.com", emails[0].Sender)
}
