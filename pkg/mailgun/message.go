package mailgun

import (
	"github.com/Abraxas-365/mailgun/pkg/ptrx"
)

// Message is everything Mailgun accepts for one send. Optional fields are nil
// when unset. A Message is a plain value: Clone it before sharing.
type Message struct {
	From    Address     `json:"from"`
	To      AddressList `json:"to"`
	Cc      AddressList `json:"cc,omitempty"`
	Bcc     AddressList `json:"bcc,omitempty"`
	Subject string      `json:"subject"`

	Text    *string `json:"text,omitempty"`
	HTML    *string `json:"html,omitempty"`
	AMPHTML *string `json:"amp_html,omitempty"`

	Attachments AttachmentList `json:"attachments,omitempty"`
	Inline      AttachmentList `json:"inline,omitempty"`

	Template        *string `json:"template,omitempty"`
	TemplateVersion *string `json:"template_version,omitempty"`
	TemplateText    *bool   `json:"template_text,omitempty"`

	Tag              *string `json:"tag,omitempty"`
	DKIM             *string `json:"dkim,omitempty"`
	DeliveryTime     *string `json:"delivery_time,omitempty"`
	TestMode         *string `json:"test_mode,omitempty"`
	Tracking         *string `json:"tracking,omitempty"`
	TrackingClicks   *string `json:"tracking_clicks,omitempty"`
	TrackingOpens    *bool   `json:"tracking_opens,omitempty"`
	RequireTLS       *bool   `json:"require_tls,omitempty"`
	SkipVerification *bool   `json:"skip_verification,omitempty"`

	CustomHeaders map[string]string `json:"custom_headers,omitempty"`
	CustomData    map[string]string `json:"custom_data,omitempty"`

	// RecipientVariables is sent as one JSON document, usually keyed by recipient address.
	RecipientVariables map[string]any `json:"recipient_variables,omitempty"`
}

// NewMessage creates a Message with only the required fields set.
func NewMessage(subject string, from Address, to []Address) Message {
	return Message{
		From:    from,
		To:      AddressList(to).clone(),
		Subject: subject,
	}
}

// HasAttachments reports whether the message needs a multipart body.
func (m *Message) HasAttachments() bool {
	return len(m.Attachments) > 0 || len(m.Inline) > 0
}

// Validate checks the invariants that must hold before a message is encoded:
// a body (text or html, an empty string counts) and at least one recipient.
func (m *Message) Validate() error {
	if m.Text == nil && m.HTML == nil {
		return mailgunErrors.New(ErrInvalidMessage).WithDetail("reason", "no text or html body")
	}
	if len(m.To) == 0 {
		return mailgunErrors.NewWithMessage(ErrInvalidMessage, "Message has no recipients").
			WithDetail("reason", "empty to list")
	}
	return nil
}

// Clone returns a deep copy of m.
func (m Message) Clone() Message {
	c := m
	c.To = m.To.clone()
	c.Cc = m.Cc.clone()
	c.Bcc = m.Bcc.clone()
	c.Text = ptrx.Clone(m.Text)
	c.HTML = ptrx.Clone(m.HTML)
	c.AMPHTML = ptrx.Clone(m.AMPHTML)
	c.Attachments = m.Attachments.clone()
	c.Inline = m.Inline.clone()
	c.Template = ptrx.Clone(m.Template)
	c.TemplateVersion = ptrx.Clone(m.TemplateVersion)
	c.TemplateText = ptrx.Clone(m.TemplateText)
	c.Tag = ptrx.Clone(m.Tag)
	c.DKIM = ptrx.Clone(m.DKIM)
	c.DeliveryTime = ptrx.Clone(m.DeliveryTime)
	c.TestMode = ptrx.Clone(m.TestMode)
	c.Tracking = ptrx.Clone(m.Tracking)
	c.TrackingClicks = ptrx.Clone(m.TrackingClicks)
	c.TrackingOpens = ptrx.Clone(m.TrackingOpens)
	c.RequireTLS = ptrx.Clone(m.RequireTLS)
	c.SkipVerification = ptrx.Clone(m.SkipVerification)
	c.CustomHeaders = cloneStrings(m.CustomHeaders)
	c.CustomData = cloneStrings(m.CustomData)
	if m.RecipientVariables != nil {
		c.RecipientVariables = cloneValue(m.RecipientVariables).(map[string]any)
	}
	return c
}

func cloneStrings(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// cloneValue copies the map and slice shapes produced by encoding/json.
func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = cloneValue(vv)
		}
		return out
	case map[string]string:
		return cloneStrings(t)
	case []any:
		out := make([]any, len(t))
		for i, vv := range t {
			out[i] = cloneValue(vv)
		}
		return out
	default:
		return v
	}
}
