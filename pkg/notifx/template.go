package notifx

import (
	"bytes"
	htmltemplate "html/template"
	"io"
	"sync"
	texttemplate "text/template"
)

// EmailTemplate is the source of a named email. Each part is optional, but at
// least one of Text and HTML must be set. Subject and Text are plain text; HTML
// is escaped as html/template does.
type EmailTemplate struct {
	Subject string
	Text    string
	HTML    string
}

// RenderedEmail holds the parts produced by rendering an EmailTemplate. Parts
// the template does not define are empty.
type RenderedEmail struct {
	Subject  string
	TextBody string
	HTMLBody string
}

// Apply copies the rendered parts onto msg. A subject already on msg is kept.
func (r RenderedEmail) Apply(msg EmailMessage) EmailMessage {
	if msg.Subject == "" {
		msg.Subject = r.Subject
	}
	if r.TextBody != "" {
		msg.TextBody = r.TextBody
	}
	if r.HTMLBody != "" {
		msg.HTMLBody = r.HTMLBody
	}
	return msg
}

type compiledTemplate struct {
	subject *texttemplate.Template
	text    *texttemplate.Template
	html    *htmltemplate.Template
}

// TemplateRegistry stores named email templates, rendering the subject, the
// Mailgun text part and the html part from the same data.
type TemplateRegistry struct {
	templates map[string]*compiledTemplate
	mu        sync.RWMutex
}

// NewTemplateRegistry creates an empty registry.
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]*compiledTemplate),
	}
}

// Register parses every part of tmpl and stores it under name, replacing any
// earlier template with that name.
func (r *TemplateRegistry) Register(name string, tmpl EmailTemplate) error {
	if tmpl.Text == "" && tmpl.HTML == "" {
		return notifxErrors.New(ErrTemplateParse).
			WithDetail("template", name).
			WithDetail("reason", "template has neither a text nor an html part")
	}

	var (
		c   compiledTemplate
		err error
	)
	if tmpl.Subject != "" {
		if c.subject, err = texttemplate.New(name + ".subject").Parse(tmpl.Subject); err != nil {
			return parseError(name, "subject", err)
		}
	}
	if tmpl.Text != "" {
		if c.text, err = texttemplate.New(name + ".text").Parse(tmpl.Text); err != nil {
			return parseError(name, "text", err)
		}
	}
	if tmpl.HTML != "" {
		if c.html, err = htmltemplate.New(name + ".html").Parse(tmpl.HTML); err != nil {
			return parseError(name, "html", err)
		}
	}

	r.mu.Lock()
	r.templates[name] = &c
	r.mu.Unlock()

	return nil
}

// Render executes every part of the named template with data.
func (r *TemplateRegistry) Render(name string, data any) (RenderedEmail, error) {
	r.mu.RLock()
	c, ok := r.templates[name]
	r.mu.RUnlock()

	if !ok {
		return RenderedEmail{}, notifxErrors.New(ErrTemplateNotFound).WithDetail("template", name)
	}

	var out RenderedEmail
	var err error
	if c.subject != nil {
		if out.Subject, err = execute(c.subject, data); err != nil {
			return RenderedEmail{}, renderError(name, "subject", err)
		}
	}
	if c.text != nil {
		if out.TextBody, err = execute(c.text, data); err != nil {
			return RenderedEmail{}, renderError(name, "text", err)
		}
	}
	if c.html != nil {
		if out.HTMLBody, err = execute(c.html, data); err != nil {
			return RenderedEmail{}, renderError(name, "html", err)
		}
	}
	return out, nil
}

type executor interface {
	Execute(w io.Writer, data any) error
}

func execute(t executor, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func parseError(name, part string, err error) error {
	return notifxErrors.NewWithCause(ErrTemplateParse, err).
		WithDetail("template", name).
		WithDetail("part", part)
}

func renderError(name, part string, err error) error {
	return notifxErrors.NewWithCause(ErrTemplateRender, err).
		WithDetail("template", name).
		WithDetail("part", part)
}
