package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// TemplateManager implements TemplateRenderer over an in-memory set of
// parsed templates.
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

func NewTemplateManager() *TemplateManager {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}
	for name, body := range builtinTemplates {
		_ = tm.AddTemplate(name, body)
	}
	return tm
}

func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}

	return buf.String(), nil
}

func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()

	return nil
}

var builtinTemplates = map[string]string{
	"welcome": `<html><body>
<h2>Welcome, {{.Name}}!</h2>
<p>Your daycare portal account is ready. You can now register your children,
follow their daily reports and manage payments online.</p>
</body></html>`,

	"payment_receipt": `<html><body>
<h2>Payment received</h2>
<p>We received your payment for order <b>{{.OrderID}}</b>.</p>
<p>Amount: <b>{{.Amount}} {{.Currency}}</b></p>
<p>Thank you!</p>
</body></html>`,

	"meeting_approved": `<html><body>
<h2>Meeting confirmed</h2>
<p>Hello {{.Name}}, your meeting request has been approved.</p>
<p>Scheduled for: <b>{{.ScheduledAt}}</b></p>
</body></html>`,

	"announcement": `<html><body>
<h2>{{.Title}}</h2>
<p>{{.Body}}</p>
</body></html>`,
}
