package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailbeacon/mailbeacon/config"
	"github.com/mailbeacon/mailbeacon/internal/domain"
	"github.com/mailbeacon/mailbeacon/pkg/logger"
)

type capturingHTTPClient struct {
	lastRequest *http.Request
	lastBody    url.Values
	response    *http.Response
	err         error
}

func (c *capturingHTTPClient) Do(req *http.Request) (*http.Response, error) {
	c.lastRequest = req
	if req.Body != nil {
		body, _ := io.ReadAll(req.Body)
		c.lastBody, _ = url.ParseQuery(string(body))
	}
	if c.err != nil {
		return nil, c.err
	}
	if c.response != nil {
		return c.response, nil
	}
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(`{"message":"Queued"}`)),
	}, nil
}

func testSendRequest() domain.SendEmailRequest {
	return domain.SendEmailRequest{
		MessageID:   "msg-1@mg.example.com",
		FromName:    "Example Team",
		FromAddress: "team@mg.example.com",
		To:          "user@example.com",
		Subject:     "Hello",
		HTML:        "<p>Hello</p>",
	}
}

func TestMailgunServiceSendEmail(t *testing.T) {
	cfg := config.MailgunConfig{
		APIKey: "key-global",
		Domain: "mg.example.com",
		Region: "US",
	}

	t.Run("posts a form encoded message", func(t *testing.T) {
		client := &capturingHTTPClient{}
		svc := NewMailgunService(client, cfg, logger.NewTestLogger(t))

		require.NoError(t, svc.SendEmail(context.Background(), testSendRequest()))

		req := client.lastRequest
		require.NotNil(t, req)
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, "https://api.mailgun.net/v3/mg.example.com/messages", req.URL.String())
		assert.Equal(t, "application/x-www-form-urlencoded", req.Header.Get("Content-Type"))

		user, pass, ok := req.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "api", user)
		assert.Equal(t, "key-global", pass)

		assert.Equal(t, "Example Team <team@mg.example.com>", client.lastBody.Get("from"))
		assert.Equal(t, "user@example.com", client.lastBody.Get("to"))
		assert.Equal(t, "Hello", client.lastBody.Get("subject"))
		assert.Equal(t, "<p>Hello</p>", client.lastBody.Get("html"))
		assert.Equal(t, "<msg-1@mg.example.com>", client.lastBody.Get("h:Message-Id"))
	})

	t.Run("uses the EU endpoint for EU region", func(t *testing.T) {
		euCfg := cfg
		euCfg.Region = "EU"

		client := &capturingHTTPClient{}
		svc := NewMailgunService(client, euCfg, logger.NewTestLogger(t))

		require.NoError(t, svc.SendEmail(context.Background(), testSendRequest()))
		assert.Equal(t, "https://api.eu.mailgun.net/v3/mg.example.com/messages", client.lastRequest.URL.String())
	})

	t.Run("tenant credentials override the global ones", func(t *testing.T) {
		client := &capturingHTTPClient{}
		svc := NewMailgunService(client, cfg, logger.NewTestLogger(t))

		request := testSendRequest()
		request.Tenant = &domain.Tenant{Domain: "mg.tenant.io", MailgunAPIKey: "key-tenant"}

		require.NoError(t, svc.SendEmail(context.Background(), request))
		assert.Equal(t, "https://api.mailgun.net/v3/mg.tenant.io/messages", client.lastRequest.URL.String())

		_, pass, _ := client.lastRequest.BasicAuth()
		assert.Equal(t, "key-tenant", pass)
	})

	t.Run("from without a name stays a bare address", func(t *testing.T) {
		client := &capturingHTTPClient{}
		svc := NewMailgunService(client, cfg, logger.NewTestLogger(t))

		request := testSendRequest()
		request.FromName = ""

		require.NoError(t, svc.SendEmail(context.Background(), request))
		assert.Equal(t, "team@mg.example.com", client.lastBody.Get("from"))
	})

	t.Run("non-OK status code fails", func(t *testing.T) {
		client := &capturingHTTPClient{response: &http.Response{
			StatusCode: http.StatusUnauthorized,
			Body:       io.NopCloser(strings.NewReader(`{"message":"Forbidden"}`)),
		}}
		svc := NewMailgunService(client, cfg, logger.NewTestLogger(t))

		err := svc.SendEmail(context.Background(), testSendRequest())
		assert.ErrorContains(t, err, "401")
	})

	t.Run("transport error fails", func(t *testing.T) {
		client := &capturingHTTPClient{err: errors.New("connection reset")}
		svc := NewMailgunService(client, cfg, logger.NewTestLogger(t))

		assert.Error(t, svc.SendEmail(context.Background(), testSendRequest()))
	})

	t.Run("missing API key fails before any request", func(t *testing.T) {
		client := &capturingHTTPClient{}
		svc := NewMailgunService(client, config.MailgunConfig{Domain: "mg.example.com"}, logger.NewTestLogger(t))

		assert.Error(t, svc.SendEmail(context.Background(), testSendRequest()))
		assert.Nil(t, client.lastRequest)
	})

	t.Run("invalid request fails validation", func(t *testing.T) {
		client := &capturingHTTPClient{}
		svc := NewMailgunService(client, cfg, logger.NewTestLogger(t))

		request := testSendRequest()
		request.To = ""

		assert.Error(t, svc.SendEmail(context.Background(), request))
	})
}
