package notifxmailgun_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Abraxas-365/mailgun/pkg/errx"
	"github.com/Abraxas-365/mailgun/pkg/fsx/fsxlocal"
	"github.com/Abraxas-365/mailgun/pkg/mailgun"
	"github.com/Abraxas-365/mailgun/pkg/notifx"
	"github.com/Abraxas-365/mailgun/pkg/notifx/notifxmailgun"
)

type fakeSender struct {
	mu       sync.Mutex
	messages []*mailgun.Message
	onSend   func(m *mailgun.Message) error
}

func (f *fakeSender) SendMessage(_ context.Context, m *mailgun.Message) (*mailgun.SendResponse, error) {
	f.mu.Lock()
	f.messages = append(f.messages, m)
	f.mu.Unlock()
	if f.onSend != nil {
		if err := f.onSend(m); err != nil {
			return nil, err
		}
	}
	return &mailgun.SendResponse{ID: "<id-" + m.To[0].Address + ">", Message: "Queued. Thank you."}, nil
}

var defaultFrom = mailgun.NewAddress("App", "noreply@example.com")

func TestSendEmail_TranslatesMessage(t *testing.T) {
	sender := &fakeSender{}
	p := notifxmailgun.NewProvider(sender, defaultFrom)

	deliverAt := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	err := p.SendEmail(context.Background(), notifx.EmailMessage{
		To:       []string{"Alice <alice@example.com>", "bob@example.com"},
		CC:       []string{"carol@example.com"},
		ReplyTo:  "support@example.com",
		Subject:  "Welcome",
		HTMLBody: "<p>hi</p>",
	},
		notifx.WithTag("onboarding"),
		notifx.WithTestMode(),
		notifx.WithTracking(false),
		notifx.WithVariables(map[string]string{"user_id": "42"}),
		notifx.WithDeliveryTime(deliverAt),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m := sender.messages[0]
	if m.From != defaultFrom {
		t.Errorf("expected default from, got %+v", m.From)
	}
	if m.To.String() != "Alice <alice@example.com>,bob@example.com" {
		t.Errorf("unexpected to %q", m.To.String())
	}
	if m.Cc.String() != "carol@example.com" {
		t.Errorf("unexpected cc %q", m.Cc.String())
	}
	if m.Text != nil || m.HTML == nil || *m.HTML != "<p>hi</p>" {
		t.Errorf("unexpected bodies text=%v html=%v", m.Text, m.HTML)
	}
	if m.CustomHeaders["Reply-To"] != "support@example.com" {
		t.Errorf("expected Reply-To header, got %v", m.CustomHeaders)
	}
	if *m.Tag != "onboarding" || *m.TestMode != "yes" || *m.Tracking != "no" || *m.TrackingClicks != "no" || *m.TrackingOpens {
		t.Errorf("unexpected options tag=%s testmode=%s tracking=%s clicks=%v", *m.Tag, *m.TestMode, *m.Tracking, m.TrackingClicks)
	}
	if m.CustomData["user_id"] != "42" {
		t.Errorf("expected custom data, got %v", m.CustomData)
	}
	if *m.DeliveryTime != "Fri, 01 Mar 2024 10:00:00 +0000" {
		t.Errorf("unexpected delivery time %q", *m.DeliveryTime)
	}
}

func TestSendEmail_InvalidAddress(t *testing.T) {
	p := notifxmailgun.NewProvider(&fakeSender{}, defaultFrom)
	err := p.SendEmail(context.Background(), notifx.EmailMessage{
		To:       []string{"not an address"},
		Subject:  "x",
		TextBody: "x",
	})
	if !errx.IsCode(err, notifxmailgun.ErrBuildMessage) {
		t.Fatalf("expected build message error, got %v", err)
	}
}

func TestSendEmail_StagesByteAttachments(t *testing.T) {
	fs, err := fsxlocal.NewLocalFileSystem(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := fs.WriteFile(context.Background(), "files/existing.txt", []byte("kept")); err != nil {
		t.Fatal(err)
	}

	var stagedPaths []string
	sender := &fakeSender{onSend: func(m *mailgun.Message) error {
		for _, a := range append(m.Attachments, m.Inline...) {
			ok, err := fs.Exists(context.Background(), a.Path)
			if err != nil || !ok {
				t.Errorf("expected %s to be staged", a.Path)
			}
			stagedPaths = append(stagedPaths, a.Path)
		}
		return nil
	}}
	p := notifxmailgun.NewProvider(sender, defaultFrom, notifxmailgun.WithStaging(fs, "outgoing"))

	err = p.SendEmail(context.Background(), notifx.EmailMessage{
		To:       []string{"a@example.com"},
		Subject:  "Invoice",
		TextBody: "attached",
		Attachments: []notifx.Attachment{
			{Filename: "invoice.pdf", Data: []byte("%PDF-1.4")},
			{Filename: "logo.png", Data: []byte("png"), Inline: true},
			{Filename: "existing.txt", Path: "files/existing.txt"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m := sender.messages[0]
	if len(m.Attachments) != 2 || m.Attachments[1].Path != "files/existing.txt" {
		t.Fatalf("unexpected attachments %v", m.Attachments)
	}
	if len(m.Inline) != 1 || m.Inline[0].Name != "inline" {
		t.Fatalf("unexpected inline %v", m.Inline)
	}

	if len(stagedPaths) != 3 {
		t.Fatalf("expected 3 attachment paths, got %d", len(stagedPaths))
	}
	for _, path := range []string{m.Attachments[0].Path, m.Inline[0].Path} {
		ok, _ := fs.Exists(context.Background(), path)
		if ok {
			t.Errorf("expected %s to be removed after send", path)
		}
	}
}

func TestSendEmail_ByteAttachmentWithoutStaging(t *testing.T) {
	sender := &fakeSender{}
	p := notifxmailgun.NewProvider(sender, defaultFrom)
	err := p.SendEmail(context.Background(), notifx.EmailMessage{
		To:          []string{"a@example.com"},
		Subject:     "x",
		TextBody:    "x",
		Attachments: []notifx.Attachment{{Filename: "a.txt", Data: []byte("a")}},
	})
	if !errx.IsCode(err, notifxmailgun.ErrStaging) {
		t.Fatalf("expected staging error, got %v", err)
	}
	if len(sender.messages) != 0 {
		t.Fatal("expected no send")
	}
}

func TestSendEmail_WrapsMailgunError(t *testing.T) {
	rejected := errors.New("rejected")
	p := notifxmailgun.NewProvider(&fakeSender{onSend: func(*mailgun.Message) error { return rejected }}, defaultFrom)
	err := p.SendEmail(context.Background(), notifx.EmailMessage{To: []string{"a@example.com"}, Subject: "x", TextBody: "x"})
	if !errx.IsCode(err, notifxmailgun.ErrSendFailed) || !errors.Is(err, rejected) {
		t.Fatalf("expected wrapped send failure, got %v", err)
	}
}

func TestSendBulkEmail_ReportsPerMessage(t *testing.T) {
	sender := &fakeSender{onSend: func(m *mailgun.Message) error {
		if m.To[0].Address == "bad@example.com" {
			return errors.New("nope")
		}
		return nil
	}}
	p := notifxmailgun.NewProvider(sender, defaultFrom, notifxmailgun.WithBulkConcurrency(2))

	msgs := []notifx.EmailMessage{
		{To: []string{"a@example.com"}, Subject: "x", TextBody: "x"},
		{To: []string{"bad@example.com"}, Subject: "x", TextBody: "x"},
		{To: []string{"c@example.com"}, Subject: "x", TextBody: "x"},
	}
	results, err := p.SendBulkEmail(context.Background(), msgs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !results[0].Success || results[0].MessageID != "<id-a@example.com>" {
		t.Errorf("unexpected result 0: %+v", results[0])
	}
	if results[1].Success || results[1].Error == "" || results[1].To != "bad@example.com" {
		t.Errorf("unexpected result 1: %+v", results[1])
	}
	if !results[2].Success {
		t.Errorf("unexpected result 2: %+v", results[2])
	}
}
