package domain

import (
	"context"
	"net/http"
)

//go:generate mockgen -destination mocks/mock_mailer.go -package mocks github.com/mailbeacon/mailbeacon/internal/domain Mailer

// HTTPClient is the part of http.Client the Mailgun API client depends on
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// SendEmailRequest carries everything needed to dispatch one message
type SendEmailRequest struct {
	MessageID   string
	FromName    string
	FromAddress string
	To          string
	Subject     string
	HTML        string

	// Tenant overrides the global Mailgun credentials when set
	Tenant *Tenant
}

func (r *SendEmailRequest) Validate() error {
	if r.MessageID == "" {
		return ValidationError{Message: "message ID is required"}
	}
	if r.To == "" {
		return ValidationError{Message: "recipient is required"}
	}
	if r.FromAddress == "" {
		return ValidationError{Message: "from address is required"}
	}
	return nil
}

// Mailer dispatches messages through the provider API. Fire-and-forget from
// the tracker's perspective: delivery outcomes arrive later as webhooks.
type Mailer interface {
	SendEmail(ctx context.Context, request SendEmailRequest) error
}
