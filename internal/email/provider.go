package email

// Provider sends email messages.
type Provider interface {
	// Send delivers a single message.
	Send(email *Email) error

	// SendTemplate renders the named template and delivers it to the
	// given recipients.
	SendTemplate(to []string, subject string, templateName string, data TemplateData) error

	// Validate checks the provider configuration.
	Validate() error

	// Close releases provider resources.
	Close() error
}

// TemplateRenderer renders named HTML templates.
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
	AddTemplate(name string, template string) error
}
