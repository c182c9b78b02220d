// Package mailtemplate renders the waitlist confirmation email. The template is
// data only; the subscribe flow depends on the Renderer interface, not on the
// HTML.
package mailtemplate

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"os"
)

//go:embed confirmation.html
var defaultBody string

// Renderer produces the subject and HTML body for a recipient.
type Renderer interface {
	Render(recipient string) (subject, html string, err error)
}

// Template is an html/template backed Renderer.
type Template struct {
	subject string
	tmpl    *template.Template
}

type data struct {
	Email   string
	Subject string
}

// Default returns the embedded confirmation template.
func Default(subject string) *Template {
	return &Template{subject: subject, tmpl: template.Must(template.New("confirmation").Parse(defaultBody))}
}

// Parse builds a Template from an HTML template body. The body may reference
// {{.Email}} and {{.Subject}}.
func Parse(subject, body string) (*Template, error) {
	t, err := template.New("confirmation").Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse email template: %w", err)
	}
	return &Template{subject: subject, tmpl: t}, nil
}

// Load returns the template at path, or the embedded default when path is empty.
func Load(subject, path string) (*Template, error) {
	if path == "" {
		return Default(subject), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read email template: %w", err)
	}
	return Parse(subject, string(b))
}

func (t *Template) Render(recipient string) (string, string, error) {
	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, data{Email: recipient, Subject: t.subject}); err != nil {
		return "", "", fmt.Errorf("render email template: %w", err)
	}
	return t.subject, buf.String(), nil
}
