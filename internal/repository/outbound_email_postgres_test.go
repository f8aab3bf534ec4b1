package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailbeacon/mailbeacon/internal/domain"
)

func outboundEmailColumns() []string {
	return []string{
		"message_id", "recipient", "from_address", "subject", "template_name", "campaign_id", "user_id",
		"status", "metadata", "sent_at", "accepted_at", "delivered_at", "opened_at", "clicked_at",
		"bounced_at", "complained_at", "unsubscribed_at", "failed_at", "created_at", "updated_at",
	}
}

func outboundEmailRow(messageID string, sentAt time.Time) []driver.Value {
	return []driver.Value{
		messageID, "user@example.com", "team@mg.example.com", "Hello", "welcome", "camp-1", "user-1",
		"sent", nil, sentAt, nil, nil, nil, nil,
		nil, nil, nil, nil, sentAt, sentAt,
	}
}

func TestOutboundEmailCreate(t *testing.T) {
	t.Run("inserts a tracking row", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewOutboundEmailRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO outbound_emails")).
			WithArgs(
				"msg-1@example.com", "user@example.com", "team@mg.example.com", "Hello", "welcome",
				"camp-1", "user-1", "sent", nil, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.Create(context.Background(), &domain.OutboundEmail{
			MessageID:    "msg-1@example.com",
			Recipient:    "user@example.com",
			FromAddress:  "team@mg.example.com",
			Subject:      "Hello",
			TemplateName: "welcome",
			CampaignID:   "camp-1",
			UserID:       "user-1",
			Status:       domain.EmailStatusSent,
			SentAt:       time.Now().UTC(),
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation maps to ErrDuplicateMessageID", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewOutboundEmailRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO outbound_emails")).
			WillReturnError(&pq.Error{Code: "23505"})

		err = repo.Create(context.Background(), &domain.OutboundEmail{
			MessageID: "msg-1@example.com",
			Recipient: "user@example.com",
			Status:    domain.EmailStatusSent,
			SentAt:    time.Now().UTC(),
		})

		var dup *domain.ErrDuplicateMessageID
		require.True(t, errors.As(err, &dup))
		assert.Equal(t, "msg-1@example.com", dup.MessageID)
	})
}

func TestOutboundEmailGetByMessageID(t *testing.T) {
	t.Run("returns the matching row", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewOutboundEmailRepository(db)
		sentAt := time.Now().UTC()

		mock.ExpectQuery(regexp.QuoteMeta("FROM outbound_emails WHERE message_id = $1")).
			WithArgs("msg-1@example.com").
			WillReturnRows(sqlmock.NewRows(outboundEmailColumns()).
				AddRow(outboundEmailRow("msg-1@example.com", sentAt)...))

		email, err := repo.GetByMessageID(context.Background(), "msg-1@example.com")
		require.NoError(t, err)
		assert.Equal(t, "msg-1@example.com", email.MessageID)
		assert.Equal(t, "camp-1", email.CampaignID)
		assert.Nil(t, email.DeliveredAt)
	})

	t.Run("missing row maps to ErrNotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewOutboundEmailRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("FROM outbound_emails WHERE message_id = $1")).
			WithArgs("msg-404").
			WillReturnRows(sqlmock.NewRows(outboundEmailColumns()))

		_, err = repo.GetByMessageID(context.Background(), "msg-404")

		var notFound *domain.ErrNotFound
		assert.True(t, errors.As(err, &notFound))
	})
}

func TestSetEventTimestampIfNotSet(t *testing.T) {
	t.Run("updates only when the column is NULL", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewOutboundEmailRepository(db)
		ts := time.Now().UTC()

		mock.ExpectExec(regexp.QuoteMeta("SET delivered_at = $1")).
			WithArgs(ts, "msg-1@example.com").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.SetEventTimestampIfNotSet(context.Background(), "msg-1@example.com", domain.EmailEventDelivered, ts)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query guards with IS NULL", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewOutboundEmailRepository(db)
		ts := time.Now().UTC()

		mock.ExpectExec(regexp.QuoteMeta("WHERE message_id = $2 AND opened_at IS NULL")).
			WithArgs(ts, "msg-1@example.com").
			WillReturnResult(sqlmock.NewResult(0, 0))

		// zero rows affected is success: the timestamp was already set
		err = repo.SetEventTimestampIfNotSet(context.Background(), "msg-1@example.com", domain.EmailEventOpened, ts)
		assert.NoError(t, err)
	})

	t.Run("unknown event type has no column", func(t *testing.T) {
		db, _, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewOutboundEmailRepository(db)
		err = repo.SetEventTimestampIfNotSet(context.Background(), "msg-1@example.com", "mystery", time.Now())
		assert.Error(t, err)
	})
}

func TestUpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOutboundEmailRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("SET status = $1")).
		WithArgs("delivered", "msg-1@example.com").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateStatus(context.Background(), "msg-1@example.com", domain.EmailStatusDelivered))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountByCampaign(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOutboundEmailRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM outbound_emails WHERE campaign_id = $1")).
		WithArgs("camp-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountByCampaign(context.Background(), "camp-1")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestListEmails(t *testing.T) {
	t.Run("returns a next cursor when more rows exist", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewOutboundEmailRepository(db)
		now := time.Now().UTC()

		rows := sqlmock.NewRows(outboundEmailColumns()).
			AddRow(outboundEmailRow("msg-3", now)...).
			AddRow(outboundEmailRow("msg-2", now.Add(-time.Minute))...).
			AddRow(outboundEmailRow("msg-1", now.Add(-2*time.Minute))...)

		mock.ExpectQuery("SELECT .* FROM outbound_emails").WillReturnRows(rows)

		emails, nextCursor, err := repo.ListEmails(context.Background(), domain.EmailListParams{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, emails, 2)
		assert.NotEmpty(t, nextCursor)

		cursorTime, cursorID, err := decodeCursor(nextCursor)
		require.NoError(t, err)
		assert.Equal(t, "msg-2", cursorID)
		assert.WithinDuration(t, now.Add(-time.Minute), cursorTime, time.Second)
	})

	t.Run("no cursor when the page is not full", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewOutboundEmailRepository(db)

		rows := sqlmock.NewRows(outboundEmailColumns()).
			AddRow(outboundEmailRow("msg-1", time.Now().UTC())...)

		mock.ExpectQuery("SELECT .* FROM outbound_emails").WillReturnRows(rows)

		emails, nextCursor, err := repo.ListEmails(context.Background(), domain.EmailListParams{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, emails, 1)
		assert.Empty(t, nextCursor)
	})

	t.Run("rejects a malformed cursor", func(t *testing.T) {
		db, _, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewOutboundEmailRepository(db)

		_, _, err = repo.ListEmails(context.Background(), domain.EmailListParams{Cursor: "%%%not-base64%%%"})
		assert.Error(t, err)
	})
}

func TestCursorRoundTrip(t *testing.T) {
	at := time.Date(2026, 3, 15, 12, 0, 0, 123456789, time.UTC)
	cursor := encodeCursor(at, "msg-1@example.com")

	gotTime, gotID, err := decodeCursor(cursor)
	require.NoError(t, err)
	assert.True(t, at.Equal(gotTime))
	assert.Equal(t, "msg-1@example.com", gotID)
}
