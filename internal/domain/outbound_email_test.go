package domain

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailListParamsFromQuery(t *testing.T) {
	t.Run("parses filters and pagination", func(t *testing.T) {
		query := url.Values{}
		query.Set("cursor", "abc")
		query.Set("limit", "50")
		query.Set("status", "delivered")
		query.Set("recipient", "user@example.com")
		query.Set("campaign_id", "camp-1")
		query.Set("sent_after", "2026-01-01T00:00:00Z")

		var params EmailListParams
		require.NoError(t, params.FromQuery(query))
		assert.Equal(t, "abc", params.Cursor)
		assert.Equal(t, 50, params.Limit)
		assert.Equal(t, EmailStatusDelivered, params.Status)
		assert.Equal(t, "camp-1", params.CampaignID)
		require.NotNil(t, params.SentAfter)
	})

	t.Run("applies default limit", func(t *testing.T) {
		var params EmailListParams
		require.NoError(t, params.FromQuery(url.Values{}))
		assert.Equal(t, 20, params.Limit)
	})

	t.Run("caps oversized limit", func(t *testing.T) {
		query := url.Values{}
		query.Set("limit", "5000")

		var params EmailListParams
		require.NoError(t, params.FromQuery(query))
		assert.Equal(t, 100, params.Limit)
	})

	t.Run("rejects invalid status", func(t *testing.T) {
		query := url.Values{}
		query.Set("status", "teleported")

		var params EmailListParams
		assert.Error(t, params.FromQuery(query))
	})

	t.Run("rejects invalid recipient", func(t *testing.T) {
		query := url.Values{}
		query.Set("recipient", "not-an-email")

		var params EmailListParams
		assert.Error(t, params.FromQuery(query))
	})

	t.Run("rejects inverted time range", func(t *testing.T) {
		query := url.Values{}
		query.Set("sent_after", "2026-02-01T00:00:00Z")
		query.Set("sent_before", "2026-01-01T00:00:00Z")

		var params EmailListParams
		assert.Error(t, params.FromQuery(query))
	})
}

func TestWebhookEventListParamsFromQuery(t *testing.T) {
	t.Run("parses event filters", func(t *testing.T) {
		query := url.Values{}
		query.Set("event_type", "opened")
		query.Set("message_id", "msg-1")

		var params WebhookEventListParams
		require.NoError(t, params.FromQuery(query))
		assert.Equal(t, EmailEventOpened, params.EventType)
		assert.Equal(t, "msg-1", params.MessageID)
		assert.Equal(t, 20, params.Limit)
	})

	t.Run("rejects unknown event type", func(t *testing.T) {
		query := url.Values{}
		query.Set("event_type", "vanished")

		var params WebhookEventListParams
		assert.Error(t, params.FromQuery(query))
	})
}

func TestMetadataValueAndScan(t *testing.T) {
	t.Run("nil metadata stores NULL", func(t *testing.T) {
		var m Metadata
		v, err := m.Value()
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("round trips through JSON bytes", func(t *testing.T) {
		m := Metadata{"campaign": "spring", "attempt": float64(2)}
		v, err := m.Value()
		require.NoError(t, err)

		var out Metadata
		require.NoError(t, out.Scan(v))
		assert.Equal(t, m, out)
	})

	t.Run("scanning NULL leaves metadata nil", func(t *testing.T) {
		var out Metadata
		require.NoError(t, out.Scan(nil))
		assert.Nil(t, out)
	})
}
