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

func subscriberColumns() []string {
	return []string{"list_name", "email", "name", "attributes", "subscribed", "created_at", "updated_at"}
}

func TestSubscriberUpsert(t *testing.T) {
	t.Run("lowercases the email on insert", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewSubscriberRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO subscribers")).
			WithArgs("newsletter", "ada@example.com", "Ada", nil, true, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.Upsert(context.Background(), &domain.Subscriber{
			ListName:   "newsletter",
			Email:      "Ada@Example.COM",
			Name:       "Ada",
			Subscribed: true,
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects an invalid email before touching the database", func(t *testing.T) {
		db, _, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewSubscriberRepository(db)
		err = repo.Upsert(context.Background(), &domain.Subscriber{
			ListName: "newsletter",
			Email:    "not-an-email",
		})
		assert.Error(t, err)
	})
}

func TestSubscriberGetByListAndEmail(t *testing.T) {
	t.Run("returns the matching subscriber", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewSubscriberRepository(db)
		now := time.Now().UTC()

		mock.ExpectQuery(regexp.QuoteMeta("FROM subscribers")).
			WithArgs("newsletter", "ada@example.com").
			WillReturnRows(sqlmock.NewRows(subscriberColumns()).
				AddRow("newsletter", "ada@example.com", "Ada", nil, true, now, now))

		subscriber, err := repo.GetByListAndEmail(context.Background(), "newsletter", "Ada@Example.com")
		require.NoError(t, err)
		assert.Equal(t, "Ada", subscriber.Name)
		assert.True(t, subscriber.Subscribed)
	})

	t.Run("missing subscriber maps to ErrNotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewSubscriberRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("FROM subscribers")).
			WithArgs("newsletter", "ghost@example.com").
			WillReturnRows(sqlmock.NewRows(subscriberColumns()))

		_, err = repo.GetByListAndEmail(context.Background(), "newsletter", "ghost@example.com")

		var notFound *domain.ErrNotFound
		assert.True(t, errors.As(err, &notFound))
	})
}

func TestSubscriberUnsubscribe(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSubscriberRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("SET subscribed = FALSE")).
		WithArgs("newsletter", "ada@example.com").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Unsubscribe(context.Background(), "newsletter", "Ada@Example.com"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriberCountByList(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSubscriberRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE list_name = $1 AND subscribed = TRUE")).
		WithArgs("newsletter").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	count, err := repo.CountByList(context.Background(), "newsletter")
	require.NoError(t, err)
	assert.Equal(t, 42, count)
}
