package notifxmailgun

import (
	"context"
	"fmt"
	"net/mail"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/Abraxas-365/mailgun/pkg/asyncx"
	"github.com/Abraxas-365/mailgun/pkg/fsx"
	"github.com/Abraxas-365/mailgun/pkg/logx"
	"github.com/Abraxas-365/mailgun/pkg/mailgun"
	"github.com/Abraxas-365/mailgun/pkg/notifx"
	"github.com/Abraxas-365/mailgun/pkg/ptrx"
	"github.com/google/uuid"
)

// MessageSender is the part of *mailgun.Client the provider needs.
type MessageSender interface {
	SendMessage(ctx context.Context, m *mailgun.Message) (*mailgun.SendResponse, error)
}

// Provider implements notifx.EmailSender and notifx.BulkEmailSender on top of
// the Mailgun client.
type Provider struct {
	client      MessageSender
	from        mailgun.Address
	staging     fsx.FileSystem
	stagingDir  string
	concurrency int
}

// ProviderOption configures a Provider.
type ProviderOption func(*Provider)

// WithStaging lets the provider send in-memory attachments by writing them
// under dir in fs first. fs must be the file system the Mailgun client reads
// attachments from.
func WithStaging(fs fsx.FileSystem, dir string) ProviderOption {
	return func(p *Provider) {
		p.staging = fs
		p.stagingDir = dir
	}
}

// WithBulkConcurrency bounds how many messages SendBulkEmail sends at once.
func WithBulkConcurrency(n int) ProviderOption {
	return func(p *Provider) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// NewProvider creates a Mailgun email provider. from is used when a message has none.
func NewProvider(client MessageSender, from mailgun.Address, opts ...ProviderOption) *Provider {
	p := &Provider{
		client:      client,
		from:        from,
		stagingDir:  "outgoing",
		concurrency: 4,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SendEmail sends a single email via Mailgun.
func (p *Provider) SendEmail(ctx context.Context, msg notifx.EmailMessage, opts ...notifx.Option) error {
	_, err := p.Send(ctx, msg, opts...)
	return err
}

// Send sends a single email and returns Mailgun's acknowledgement.
func (p *Provider) Send(ctx context.Context, msg notifx.EmailMessage, opts ...notifx.Option) (*mailgun.SendResponse, error) {
	staged, cleanup, err := p.stage(ctx, msg.Attachments)
	defer cleanup()
	if err != nil {
		return nil, err
	}

	m, err := p.buildMessage(msg, staged, notifx.ApplyOptions(opts))
	if err != nil {
		return nil, err
	}

	resp, err := p.client.SendMessage(ctx, m)
	if err != nil {
		return nil, mailgunProviderErrors.NewWithCause(ErrSendFailed, err).
			WithDetail("to", msg.To).
			WithDetail("subject", msg.Subject)
	}
	return resp, nil
}

// SendBulkEmail sends msgs concurrently and reports one result per message.
func (p *Provider) SendBulkEmail(ctx context.Context, msgs []notifx.EmailMessage, opts ...notifx.Option) ([]notifx.SendResult, error) {
	settled := asyncx.PoolSettled(ctx, p.concurrency, msgs, func(ctx context.Context, msg notifx.EmailMessage) (*mailgun.SendResponse, error) {
		return p.Send(ctx, msg, opts...)
	})

	results := make([]notifx.SendResult, len(msgs))
	failed := 0
	for i, r := range settled {
		if len(msgs[i].To) > 0 {
			results[i].To = msgs[i].To[0]
		}
		results[i].Success = r.OK()
		if r.OK() {
			results[i].MessageID = r.Value.ID
			continue
		}
		results[i].Error = r.Err.Error()
		failed++
	}

	logx.WithFields(logx.Fields{
		"total":  len(msgs),
		"failed": failed,
	}).Info("notifx/mailgun: bulk send finished")

	return results, nil
}

func (p *Provider) buildMessage(msg notifx.EmailMessage, attachments []notifx.Attachment, so notifx.SendOptions) (*mailgun.Message, error) {
	from := p.from
	if msg.From != "" {
		a, err := parseAddress(msg.From)
		if err != nil {
			return nil, mailgunProviderErrors.NewWithCause(ErrBuildMessage, err).WithDetail("from", msg.From)
		}
		from = a
	}

	to, err := parseAddresses(msg.To)
	if err != nil {
		return nil, err
	}
	cc, err := parseAddresses(msg.CC)
	if err != nil {
		return nil, err
	}
	bcc, err := parseAddresses(msg.BCC)
	if err != nil {
		return nil, err
	}

	b := mailgun.NewMessageBuilder(msg.Subject, from, to).
		Cc(cc).
		Bcc(bcc).
		Text(ptrx.NonEmpty(msg.TextBody)).
		HTML(ptrx.NonEmpty(msg.HTMLBody))

	var inline []mailgun.Attachment
	for _, a := range attachments {
		if a.Inline {
			inline = append(inline, mailgun.NewAttachment("inline", a.Path))
			continue
		}
		b.Attachment(mailgun.NewAttachment("attachment", a.Path))
	}
	b.Inline(inline)

	if msg.ReplyTo != "" {
		b.CustomHeaders(map[string]string{"Reply-To": msg.ReplyTo})
	}
	if so.Tag != "" {
		b.Tag(ptrx.String(so.Tag))
	}
	if so.TestMode {
		b.TestMode(ptrx.String("yes"))
	}
	if so.Tracking != nil {
		b.Tracking(ptrx.String(yesNo(*so.Tracking)))
		b.TrackingClicks(ptrx.String(yesNo(*so.Tracking)))
		b.TrackingOpens(ptrx.Bool(*so.Tracking))
	}
	if len(so.Variables) > 0 {
		b.CustomData(so.Variables)
	}
	if so.Template != "" {
		b.Template(ptrx.String(so.Template))
		if msg.TextBody == "" && msg.HTMLBody == "" {
			// Mailgun renders the body from the stored template.
			b.Text(ptrx.String(""))
		}
	}
	if !so.DeliveryTime.IsZero() {
		b.DeliveryTime(ptrx.String(so.DeliveryTime.UTC().Format(time.RFC1123Z)))
	}

	return b.Message(), nil
}

// stage writes in-memory attachments to the staging file system. The returned
// cleanup removes them and is always safe to call.
func (p *Provider) stage(ctx context.Context, attachments []notifx.Attachment) ([]notifx.Attachment, func(), error) {
	var written []string
	cleanup := func() {
		if p.staging == nil {
			return
		}
		for _, path := range written {
			if err := p.staging.DeleteFile(context.WithoutCancel(ctx), path); err != nil {
				logx.WithError(err).WithField("path", path).Warn("notifx/mailgun: failed to remove staged attachment")
			}
		}
	}

	out := make([]notifx.Attachment, len(attachments))
	batch := uuid.NewString()
	for i, a := range attachments {
		out[i] = a
		if a.Path != "" {
			continue
		}
		if p.staging == nil {
			return nil, cleanup, mailgunProviderErrors.New(ErrStaging).
				WithDetail("reason", "no staging file system configured").
				WithDetail("filename", a.Filename)
		}

		path := p.staging.Join(p.stagingDir, batch, strconv.Itoa(i), stagedName(a.Filename, i))
		if err := p.staging.WriteFile(ctx, path, a.Data); err != nil {
			return nil, cleanup, mailgunProviderErrors.NewWithCause(ErrStaging, err).WithDetail("filename", a.Filename)
		}
		written = append(written, path)
		out[i].Path = path
	}
	return out, cleanup, nil
}

func stagedName(filename string, i int) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return fmt.Sprintf("attachment-%d", i)
	}
	return name
}

func parseAddress(s string) (mailgun.Address, error) {
	a, err := mail.ParseAddress(s)
	if err != nil {
		return mailgun.Address{}, err
	}
	return mailgun.NewAddress(a.Name, a.Address), nil
}

func parseAddresses(in []string) ([]mailgun.Address, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make([]mailgun.Address, len(in))
	for i, s := range in {
		a, err := parseAddress(s)
		if err != nil {
			return nil, mailgunProviderErrors.NewWithCause(ErrBuildMessage, err).WithDetail("address", s)
		}
		out[i] = a
	}
	return out, nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
