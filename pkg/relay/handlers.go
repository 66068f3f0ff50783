package relay

import (
	"context"
	"encoding/json"
	"path/filepath"

	"github.com/Abraxas-365/mailgun/pkg/logx"
	"github.com/Abraxas-365/mailgun/pkg/mailgun"
	"github.com/Abraxas-365/mailgun/pkg/notifx"
	"github.com/Abraxas-365/mailgun/pkg/outbox"
	"github.com/gofiber/fiber/v2"
)

// MessageSender sends a message synchronously. *mailgun.Client implements it.
type MessageSender interface {
	SendMessage(ctx context.Context, m *mailgun.Message) (*mailgun.SendResponse, error)
}

// Outbox accepts messages for later delivery. *outbox.Client implements it.
type Outbox interface {
	Enqueue(ctx context.Context, m mailgun.Message) (string, error)
	Get(ctx context.Context, id string) (*outbox.Entry, error)
}

// Emailer is the provider-agnostic send path. *notifx.Client implements it.
type Emailer interface {
	SendEmail(ctx context.Context, msg notifx.EmailMessage, opts ...notifx.Option) error
	SendBulkEmail(ctx context.Context, msgs []notifx.EmailMessage, opts ...notifx.Option) ([]notifx.SendResult, error)
}

// Handlers serves the relay API.
type Handlers struct {
	sender  MessageSender
	outbox  Outbox
	emailer Emailer
}

// NewHandlers creates the API handlers. outbox and emailer may be nil, which
// disables their routes' functionality.
func NewHandlers(sender MessageSender, ob Outbox, emailer Emailer) *Handlers {
	return &Handlers{
		sender:  sender,
		outbox:  ob,
		emailer: emailer,
	}
}

// RegisterRoutes mounts the API under /api/v1. Every route runs middleware first.
func (h *Handlers) RegisterRoutes(app fiber.Router, middleware ...fiber.Handler) {
	api := app.Group("/api/v1", middleware...)

	api.Post("/messages", h.SendMessage)
	api.Post("/outbox", h.EnqueueMessage)
	api.Get("/outbox/:id", h.GetOutboxEntry)
	api.Post("/emails", h.SendEmail)
	api.Post("/emails/bulk", h.SendBulkEmail)
}

// SendMessage handles POST /api/v1/messages. It sends a Mailgun message and waits for Mailgun's answer.
func (h *Handlers) SendMessage(c *fiber.Ctx) error {
	m, err := parseMessage(c)
	if err != nil {
		return err
	}

	resp, err := h.sender.SendMessage(c.UserContext(), m)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// EnqueueMessage handles POST /api/v1/outbox.
func (h *Handlers) EnqueueMessage(c *fiber.Ctx) error {
	if h.outbox == nil {
		return relayErrors.New(ErrOutboxDisabled)
	}
	m, err := parseMessage(c)
	if err != nil {
		return err
	}

	id, err := h.outbox.Enqueue(c.UserContext(), *m)
	if err != nil {
		return err
	}

	logx.WithContext(c.UserContext()).WithField("entry_id", id).Info("Message accepted into outbox")
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"id":     id,
		"status": outbox.StatusPending,
	})
}

// GetOutboxEntry handles GET /api/v1/outbox/:id.
func (h *Handlers) GetOutboxEntry(c *fiber.Ctx) error {
	if h.outbox == nil {
		return relayErrors.New(ErrOutboxDisabled)
	}
	entry, err := h.outbox.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(entry)
}

type emailRequest struct {
	notifx.EmailMessage
	Tag       string            `json:"tag,omitempty"`
	Template  string            `json:"template,omitempty"`
	Variables map[string]string `json:"variables,omitempty"`
	TestMode  bool              `json:"test_mode,omitempty"`
}

func (r emailRequest) options() []notifx.Option {
	var opts []notifx.Option
	if r.Tag != "" {
		opts = append(opts, notifx.WithTag(r.Tag))
	}
	if r.Template != "" {
		opts = append(opts, notifx.WithTemplate(r.Template))
	}
	if len(r.Variables) > 0 {
		opts = append(opts, notifx.WithVariables(r.Variables))
	}
	if r.TestMode {
		opts = append(opts, notifx.WithTestMode())
	}
	return opts
}

// SendEmail handles POST /api/v1/emails through the notifx provider.
func (h *Handlers) SendEmail(c *fiber.Ctx) error {
	if h.emailer == nil {
		return relayErrors.NewWithMessage(ErrInvalidRequest, "Email provider is not configured")
	}
	var req emailRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return relayErrors.NewWithCause(ErrInvalidRequest, err)
	}

	if err := checkEmailAttachments(req.EmailMessage); err != nil {
		return err
	}

	if err := h.emailer.SendEmail(c.UserContext(), req.EmailMessage, req.options()...); err != nil {
		return err
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "sent"})
}

type bulkEmailRequest struct {
	Messages []notifx.EmailMessage `json:"messages"`
	Tag      string                `json:"tag,omitempty"`
	TestMode bool                  `json:"test_mode,omitempty"`
}

// SendBulkEmail handles POST /api/v1/emails/bulk and reports one result per message.
func (h *Handlers) SendBulkEmail(c *fiber.Ctx) error {
	if h.emailer == nil {
		return relayErrors.NewWithMessage(ErrInvalidRequest, "Email provider is not configured")
	}
	var req bulkEmailRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return relayErrors.NewWithCause(ErrInvalidRequest, err)
	}
	if len(req.Messages) == 0 {
		return relayErrors.NewWithMessage(ErrInvalidRequest, "No messages given")
	}

	for _, msg := range req.Messages {
		if err := checkEmailAttachments(msg); err != nil {
			return err
		}
	}

	single := emailRequest{Tag: req.Tag, TestMode: req.TestMode}
	results, err := h.emailer.SendBulkEmail(c.UserContext(), req.Messages, single.options()...)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"results": results})
}

func parseMessage(c *fiber.Ctx) (*mailgun.Message, error) {
	var m mailgun.Message
	if err := json.Unmarshal(c.Body(), &m); err != nil {
		return nil, relayErrors.NewWithCause(ErrInvalidRequest, err)
	}
	for _, list := range []mailgun.AttachmentList{m.Attachments, m.Inline} {
		for _, a := range list {
			if err := checkAttachmentPath(a.Path); err != nil {
				return nil, err
			}
		}
	}
	return &m, nil
}

func checkEmailAttachments(msg notifx.EmailMessage) error {
	for _, a := range msg.Attachments {
		if err := checkAttachmentPath(a.Path); err != nil {
			return err
		}
	}
	return nil
}

// checkAttachmentPath accepts only paths relative to the storage root that
// do not climb out of it.
func checkAttachmentPath(p string) error {
	if filepath.IsLocal(p) {
		return nil
	}
	return relayErrors.New(ErrAttachmentPath).WithDetail("path", p)
}
