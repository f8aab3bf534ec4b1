package schema

// TableDefinitions contains the CREATE TABLE statements for all tables,
// executed in order at startup.
var TableDefinitions = []string{
	`CREATE TABLE IF NOT EXISTS outbound_emails (
		message_id VARCHAR(255) PRIMARY KEY,
		recipient VARCHAR(255) NOT NULL,
		from_address VARCHAR(255),
		subject VARCHAR(255),
		template_name VARCHAR(255),
		campaign_id VARCHAR(255),
		user_id VARCHAR(255),
		status VARCHAR(20) NOT NULL DEFAULT 'sent',
		metadata JSONB,
		sent_at TIMESTAMP WITH TIME ZONE NOT NULL,
		accepted_at TIMESTAMP WITH TIME ZONE,
		delivered_at TIMESTAMP WITH TIME ZONE,
		opened_at TIMESTAMP WITH TIME ZONE,
		clicked_at TIMESTAMP WITH TIME ZONE,
		bounced_at TIMESTAMP WITH TIME ZONE,
		complained_at TIMESTAMP WITH TIME ZONE,
		unsubscribed_at TIMESTAMP WITH TIME ZONE,
		failed_at TIMESTAMP WITH TIME ZONE,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_outbound_emails_campaign_id ON outbound_emails(campaign_id)`,
	`CREATE INDEX IF NOT EXISTS idx_outbound_emails_user_id ON outbound_emails(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_outbound_emails_recipient ON outbound_emails(recipient)`,

	`CREATE TABLE IF NOT EXISTS webhook_events (
		id UUID PRIMARY KEY,
		event_type VARCHAR(50) NOT NULL,
		message_id VARCHAR(255),
		recipient VARCHAR(255),
		raw_payload TEXT NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_webhook_events_message_id ON webhook_events(message_id)`,
	`CREATE INDEX IF NOT EXISTS idx_webhook_events_event_type ON webhook_events(event_type)`,

	`CREATE TABLE IF NOT EXISTS tenants (
		id UUID PRIMARY KEY,
		domain VARCHAR(255) NOT NULL UNIQUE,
		webhook_signing_key VARCHAR(255),
		mailgun_api_key VARCHAR(255),
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS inbound_emails (
		id UUID PRIMARY KEY,
		sender VARCHAR(255) NOT NULL,
		recipient VARCHAR(255) NOT NULL,
		subject VARCHAR(998),
		body_plain TEXT,
		body_html TEXT,
		stripped_text TEXT,
		message_id VARCHAR(255),
		received_at TIMESTAMP WITH TIME ZONE NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_inbound_emails_recipient ON inbound_emails(recipient)`,

	`CREATE TABLE IF NOT EXISTS subscribers (
		list_name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		name VARCHAR(255),
		attributes JSONB,
		subscribed BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		PRIMARY KEY (list_name, email)
	)`,

	`CREATE TABLE IF NOT EXISTS templates (
		name VARCHAR(255) PRIMARY KEY,
		subject VARCHAR(998) NOT NULL,
		body TEXT NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	)`,
}
