package email

import "daycare_backend/internal/logger"

// NoopProvider logs outgoing mail instead of sending it. Used when
// SMTP is not configured.
type NoopProvider struct{}

func NewNoopProvider() *NoopProvider {
	return &NoopProvider{}
}

func (p *NoopProvider) Send(email *Email) error {
	logger.Info("email suppressed (smtp not configured)", "to", email.To, "subject", email.Subject)
	return nil
}

func (p *NoopProvider) SendTemplate(to []string, subject string, templateName string, data TemplateData) error {
	logger.Info("email suppressed (smtp not configured)", "to", to, "subject", subject, "template", templateName)
	return nil
}

func (p *NoopProvider) Validate() error { return nil }

func (p *NoopProvider) Close() error { return nil }
