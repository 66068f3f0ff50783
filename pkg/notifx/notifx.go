package notifx

import (
	"context"
)

// EmailSender sends a single email.
type EmailSender interface {
	SendEmail(ctx context.Context, msg EmailMessage, opts ...Option) error
}

// BulkEmailSender sends multiple emails in a batch.
type BulkEmailSender interface {
	SendBulkEmail(ctx context.Context, msgs []EmailMessage, opts ...Option) ([]SendResult, error)
}

// Notifier is the high-level notification interface.
type Notifier interface {
	EmailSender
}

// Client is the main entry point for sending notifications.
type Client struct {
	provider  EmailSender
	templates *TemplateRegistry
}

// NewClient creates a new notification client.
func NewClient(provider EmailSender) *Client {
	return &Client{
		provider:  provider,
		templates: NewTemplateRegistry(),
	}
}

// SendEmail sends an email through the configured provider.
func (c *Client) SendEmail(ctx context.Context, msg EmailMessage, opts ...Option) error {
	if c.provider == nil {
		return notifxErrors.New(ErrNoProvider)
	}
	if err := validate(msg); err != nil {
		return err
	}
	return c.provider.SendEmail(ctx, msg, opts...)
}

// SendBulkEmail sends msgs through the provider's batch path when it has one,
// and one at a time otherwise. Invalid messages are reported in their result
// slot and never reach the provider.
func (c *Client) SendBulkEmail(ctx context.Context, msgs []EmailMessage, opts ...Option) ([]SendResult, error) {
	if c.provider == nil {
		return nil, notifxErrors.New(ErrNoProvider)
	}

	results := make([]SendResult, len(msgs))
	valid := make([]EmailMessage, 0, len(msgs))
	slots := make([]int, 0, len(msgs))
	for i, msg := range msgs {
		results[i].To = firstRecipient(msg)
		if err := validate(msg); err != nil {
			results[i].Error = err.Error()
			continue
		}
		valid = append(valid, msg)
		slots = append(slots, i)
	}

	if bulk, ok := c.provider.(BulkEmailSender); ok && len(valid) > 0 {
		sent, err := bulk.SendBulkEmail(ctx, valid, opts...)
		if err != nil {
			return nil, err
		}
		for j, r := range sent {
			results[slots[j]] = r
		}
		return results, nil
	}

	for _, i := range slots {
		err := c.provider.SendEmail(ctx, msgs[i], opts...)
		results[i].Success = err == nil
		if err != nil {
			results[i].Error = err.Error()
		}
	}
	return results, nil
}

// RegisterTemplate parses and stores a named template for later use.
func (c *Client) RegisterTemplate(name string, tmpl EmailTemplate) error {
	return c.templates.Register(name, tmpl)
}

// SendTemplatedEmail renders a template and sends the resulting email. The
// rendered text and html parts replace the message body; the rendered subject
// is used when msg has none.
func (c *Client) SendTemplatedEmail(ctx context.Context, templateName string, data any, msg EmailMessage, opts ...Option) error {
	rendered, err := c.templates.Render(templateName, data)
	if err != nil {
		return err
	}
	return c.SendEmail(ctx, rendered.Apply(msg), opts...)
}

func validate(msg EmailMessage) error {
	if len(msg.To) == 0 {
		return notifxErrors.New(ErrInvalidMessage).WithDetail("reason", "no recipients")
	}
	if msg.Subject == "" {
		return notifxErrors.New(ErrInvalidMessage).WithDetail("reason", "empty subject")
	}
	return nil
}

func firstRecipient(msg EmailMessage) string {
	if len(msg.To) == 0 {
		return ""
	}
	return msg.To[0]
}
