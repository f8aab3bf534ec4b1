package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailbeacon/mailbeacon/internal/domain"
	"github.com/mailbeacon/mailbeacon/internal/domain/mocks"
	"github.com/mailbeacon/mailbeacon/pkg/logger"
)

func TestEventLogHandleList(t *testing.T) {
	t.Run("returns the event log page", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		eventRepo := mocks.NewMockWebhookEventRepository(ctrl)
		handler := NewEventLogHandler(eventRepo, logger.NewTestLogger(t))

		eventRepo.EXPECT().ListEvents(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params domain.WebhookEventListParams) (*domain.WebhookEventListResult, error) {
				assert.Equal(t, domain.EmailEventOpened, params.EventType)
				return &domain.WebhookEventListResult{
					Events: []*domain.WebhookEventLog{
						{ID: "evt-1", EventType: "opened", MessageID: "msg-1", CreatedAt: time.Now().UTC()},
					},
				}, nil
			})

		req := httptest.NewRequest(http.MethodGet, "/api/webhookEvents.list?event_type=opened", nil)
		rec := httptest.NewRecorder()
		handler.handleList(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var result domain.WebhookEventListResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		require.Len(t, result.Events, 1)
		assert.Equal(t, "evt-1", result.Events[0].ID)
	})

	t.Run("invalid event type returns 400", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		handler := NewEventLogHandler(mocks.NewMockWebhookEventRepository(ctrl), logger.NewTestLogger(t))

		req := httptest.NewRequest(http.MethodGet, "/api/webhookEvents.list?event_type=launched", nil)
		rec := httptest.NewRecorder()
		handler.handleList(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("non-GET is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		handler := NewEventLogHandler(mocks.NewMockWebhookEventRepository(ctrl), logger.NewTestLogger(t))

		req := httptest.NewRequest(http.MethodPost, "/api/webhookEvents.list", nil)
		rec := httptest.NewRecorder()
		handler.handleList(rec, req)

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}
