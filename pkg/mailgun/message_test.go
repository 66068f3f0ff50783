package mailgun_test

import (
	"strings"
	"testing"

	"github.com/Abraxas-365/mailgun/pkg/errx"
	"github.com/Abraxas-365/mailgun/pkg/mailgun"
	"github.com/Abraxas-365/mailgun/pkg/ptrx"
)

func TestAddress_String(t *testing.T) {
	tests := []struct {
		name string
		addr mailgun.Address
		want string
	}{
		{"with name", mailgun.NewAddress("Dom Sheldon", "dom@example.com"), "Dom Sheldon <dom@example.com>"},
		{"bare", mailgun.NewAddress("", "dom@example.com"), "dom@example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.addr.String(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestAddressList_String(t *testing.T) {
	list := mailgun.AddressList{
		mailgun.NewAddress("A", "a@x.com"),
		mailgun.NewAddress("", "b@x.com"),
	}
	if got := list.String(); got != "A <a@x.com>,b@x.com" {
		t.Errorf("unexpected rendering %q", got)
	}
	if got := (mailgun.AddressList{}).String(); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestAttachmentList_String(t *testing.T) {
	var list mailgun.AttachmentList
	list.Append(mailgun.NewAttachment("attachment", "./a.pdf"))
	list.Append(mailgun.NewAttachment("inline", "./logo.png"))

	if got := list.String(); got != "@attachment:./a.pdf,@inline:./logo.png" {
		t.Errorf("unexpected rendering %q", got)
	}
}

func TestMessage_Validate(t *testing.T) {
	from := mailgun.NewAddress("", "a@x.com")
	to := []mailgun.Address{mailgun.NewAddress("", "b@x.com")}

	m := mailgun.NewMessage("S", from, to)
	if err := m.Validate(); !errx.IsCode(err, mailgun.ErrInvalidMessage) {
		t.Fatalf("expected invalid message without body, got %v", err)
	}

	m.Text = ptrx.String("")
	if err := m.Validate(); err != nil {
		t.Fatalf("empty text is still a body: %v", err)
	}

	m.To = nil
	if err := m.Validate(); !errx.IsCode(err, mailgun.ErrInvalidMessage) {
		t.Fatalf("expected invalid message without recipients, got %v", err)
	}
}

func TestMessageBuilder_ReadThenMutate(t *testing.T) {
	from := mailgun.NewAddress("", "a@x.com")
	to := []mailgun.Address{mailgun.NewAddress("", "b@x.com")}

	b := mailgun.NewMessageBuilder("S", from, to).Text(ptrx.String("hello"))
	first := b.Message()

	b.Subject("Changed").
		Attachment(mailgun.NewAttachment("attachment", "./one.txt")).
		Attachment(mailgun.NewAttachment("attachment", "./two.txt")).
		CustomData(map[string]string{"k": "v"})
	second := b.Message()

	if first.Subject != "S" || first.HasAttachments() || first.CustomData != nil {
		t.Fatalf("first snapshot changed after builder mutation: %+v", first)
	}
	if second.Subject != "Changed" {
		t.Errorf("expected updated subject, got %q", second.Subject)
	}
	if len(second.Attachments) != 2 || second.Attachments[1].Path != "./two.txt" {
		t.Errorf("expected attachments to accumulate in order, got %v", second.Attachments)
	}

	second.To[0] = mailgun.NewAddress("", "mutated@x.com")
	if b.Message().To[0].Address != "b@x.com" {
		t.Error("mutating a built message must not affect the builder")
	}
}

func TestMessageBuilder_NilClearsField(t *testing.T) {
	b := mailgun.NewMessageBuilder("S", mailgun.NewAddress("", "a@x.com"), nil).
		Tag(ptrx.String("t")).
		Cc([]mailgun.Address{mailgun.NewAddress("", "c@x.com")})

	b.Tag(nil).Cc(nil)
	m := b.Message()
	if m.Tag != nil || m.Cc != nil {
		t.Fatalf("expected tag and cc cleared, got %v %v", m.Tag, m.Cc)
	}
}

func TestWireParams_OrderAndOmission(t *testing.T) {
	m := mailgun.NewMessageBuilder("Hi", mailgun.NewAddress("Me", "me@x.com"), []mailgun.Address{
		mailgun.NewAddress("", "a@x.com"),
		mailgun.NewAddress("B", "b@x.com"),
	}).
		Bcc([]mailgun.Address{mailgun.NewAddress("", "z@x.com")}).
		HTML(ptrx.String("<p>x</p>")).
		TemplateText(ptrx.Bool(false)).
		TrackingOpens(ptrx.Bool(false)).
		RequireTLS(ptrx.Bool(true)).
		CustomHeaders(map[string]string{"X-B": "2", "X-A": "1"}).
		CustomData(map[string]string{"order": "42"}).
		RecipientVariables(map[string]any{"a@x.com": map[string]any{"id": 1}}).
		Message()

	params, err := m.WireParams()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var names []string
	for _, p := range params {
		names = append(names, p.Name+"="+p.Value)
	}
	want := []string{
		"from=Me <me@x.com>",
		"to=a@x.com,B <b@x.com>",
		"bcc=z@x.com",
		"subject=Hi",
		"html=<p>x</p>",
		"o:tracking-opens=no",
		"o:require-tls=yes",
		"h:X-A=1",
		"h:X-B=2",
		"v:order=42",
		`recipient-variables={"a@x.com":{"id":1}}`,
	}
	if strings.Join(names, "\n") != strings.Join(want, "\n") {
		t.Fatalf("unexpected params:\n%s\nwant:\n%s", strings.Join(names, "\n"), strings.Join(want, "\n"))
	}
}

func TestWireParams_TemplateTextTrue(t *testing.T) {
	m := mailgun.NewMessageBuilder("S", mailgun.NewAddress("", "a@x.com"), []mailgun.Address{mailgun.NewAddress("", "b@x.com")}).
		Template(ptrx.String("welcome")).
		TemplateVersion(ptrx.String("v2")).
		TemplateText(ptrx.Bool(true)).
		Message()

	params, err := m.WireParams()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := map[string]string{}
	for _, p := range params {
		got[p.Name] = p.Value
	}
	if got["template"] != "welcome" || got["t:version"] != "v2" || got["t:text"] != "yes" {
		t.Fatalf("unexpected template params: %v", got)
	}
}

func TestWireParams_RecipientVariablesSerializationError(t *testing.T) {
	m := mailgun.NewMessageBuilder("S", mailgun.NewAddress("", "a@x.com"), []mailgun.Address{mailgun.NewAddress("", "b@x.com")}).
		Text(ptrx.String("t")).
		RecipientVariables(map[string]any{"bad": make(chan int)}).
		Message()

	_, err := m.WireParams()
	if !errx.IsCode(err, mailgun.ErrFieldSerialization) {
		t.Fatalf("expected field serialization error, got %v", err)
	}
}

func TestWireParams_OptionsPassedVerbatim(t *testing.T) {
	base := func() *mailgun.MessageBuilder {
		return mailgun.NewMessageBuilder("S", mailgun.NewAddress("", "a@x.com"), []mailgun.Address{mailgun.NewAddress("", "b@x.com")}).
			Text(ptrx.String("t")).
			DKIM(ptrx.String("no")).
			DeliveryTime(ptrx.String("Thu, 13 Oct 2011 18:02:00 +0000")).
			TestMode(ptrx.String("yes")).
			Tracking(ptrx.String("yes")).
			TrackingClicks(ptrx.String("htmlonly"))
	}

	tests := []struct {
		name string
		skip *bool
		want string
	}{
		{"skip verification on", ptrx.Bool(true), "o:skip-verification=yes"},
		{"skip verification off", ptrx.Bool(false), "o:skip-verification=no"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := base().SkipVerification(tt.skip).Message().WireParams()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			var got []string
			for _, p := range params {
				got = append(got, p.Name+"="+p.Value)
			}
			want := []string{
				"from=a@x.com",
				"to=b@x.com",
				"subject=S",
				"text=t",
				"o:dkim=no",
				"o:deliverytime=Thu, 13 Oct 2011 18:02:00 +0000",
				"o:testmode=yes",
				"o:tracking=yes",
				"o:tracking-clicks=htmlonly",
				tt.want,
			}
			if strings.Join(got, "\n") != strings.Join(want, "\n") {
				t.Fatalf("unexpected params:\n%s\nwant:\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
			}
		})
	}
}
