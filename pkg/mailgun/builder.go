package mailgun

// MessageBuilder accumulates a Message. Setters taking a pointer, slice or map
// clear the field when given nil. The builder can be read with Message and then
// mutated again.
type MessageBuilder struct {
	message Message
}

// NewMessageBuilder starts a message with its required fields.
func NewMessageBuilder(subject string, from Address, to []Address) *MessageBuilder {
	return &MessageBuilder{message: NewMessage(subject, from, to)}
}

// Message returns a copy of the message built so far.
func (b *MessageBuilder) Message() *Message {
	m := b.message.Clone()
	return &m
}

func (b *MessageBuilder) From(from Address) *MessageBuilder {
	b.message.From = from
	return b
}

func (b *MessageBuilder) To(to []Address) *MessageBuilder {
	b.message.To = AddressList(to).clone()
	return b
}

func (b *MessageBuilder) Cc(cc []Address) *MessageBuilder {
	b.message.Cc = AddressList(cc).clone()
	return b
}

func (b *MessageBuilder) Bcc(bcc []Address) *MessageBuilder {
	b.message.Bcc = AddressList(bcc).clone()
	return b
}

func (b *MessageBuilder) Subject(subject string) *MessageBuilder {
	b.message.Subject = subject
	return b
}

func (b *MessageBuilder) Text(text *string) *MessageBuilder {
	b.message.Text = text
	return b
}

func (b *MessageBuilder) HTML(html *string) *MessageBuilder {
	b.message.HTML = html
	return b
}

func (b *MessageBuilder) AMPHTML(ampHTML *string) *MessageBuilder {
	b.message.AMPHTML = ampHTML
	return b
}

// Attachment appends a to the attachment list. Unlike the other setters it never replaces.
func (b *MessageBuilder) Attachment(a Attachment) *MessageBuilder {
	b.message.Attachments.Append(a)
	return b
}

// Inline replaces the inline attachment list.
func (b *MessageBuilder) Inline(inline []Attachment) *MessageBuilder {
	b.message.Inline = AttachmentList(inline).clone()
	return b
}

func (b *MessageBuilder) Template(template *string) *MessageBuilder {
	b.message.Template = template
	return b
}

func (b *MessageBuilder) TemplateVersion(version *string) *MessageBuilder {
	b.message.TemplateVersion = version
	return b
}

func (b *MessageBuilder) TemplateText(enabled *bool) *MessageBuilder {
	b.message.TemplateText = enabled
	return b
}

func (b *MessageBuilder) Tag(tag *string) *MessageBuilder {
	b.message.Tag = tag
	return b
}

func (b *MessageBuilder) DKIM(dkim *string) *MessageBuilder {
	b.message.DKIM = dkim
	return b
}

// DeliveryTime schedules the message; Mailgun expects an RFC 2822 date.
func (b *MessageBuilder) DeliveryTime(deliveryTime *string) *MessageBuilder {
	b.message.DeliveryTime = deliveryTime
	return b
}

func (b *MessageBuilder) TestMode(testMode *string) *MessageBuilder {
	b.message.TestMode = testMode
	return b
}

func (b *MessageBuilder) Tracking(tracking *string) *MessageBuilder {
	b.message.Tracking = tracking
	return b
}

// TrackingClicks accepts "yes", "no" or "htmlonly".
func (b *MessageBuilder) TrackingClicks(trackingClicks *string) *MessageBuilder {
	b.message.TrackingClicks = trackingClicks
	return b
}

func (b *MessageBuilder) TrackingOpens(trackingOpens *bool) *MessageBuilder {
	b.message.TrackingOpens = trackingOpens
	return b
}

func (b *MessageBuilder) RequireTLS(requireTLS *bool) *MessageBuilder {
	b.message.RequireTLS = requireTLS
	return b
}

func (b *MessageBuilder) SkipVerification(skip *bool) *MessageBuilder {
	b.message.SkipVerification = skip
	return b
}

func (b *MessageBuilder) CustomHeaders(headers map[string]string) *MessageBuilder {
	b.message.CustomHeaders = cloneStrings(headers)
	return b
}

func (b *MessageBuilder) CustomData(data map[string]string) *MessageBuilder {
	b.message.CustomData = cloneStrings(data)
	return b
}

func (b *MessageBuilder) RecipientVariables(vars map[string]any) *MessageBuilder {
	if vars == nil {
		b.message.RecipientVariables = nil
		return b
	}
	b.message.RecipientVariables = cloneValue(vars).(map[string]any)
	return b
}
