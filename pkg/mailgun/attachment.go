package mailgun

import "strings"

// Attachment pairs the form field name Mailgun receives the file under with the
// path the file is read from. The file is not touched until the message is encoded.
type Attachment struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// NewAttachment creates an Attachment. Mailgun expects name to be "attachment"
// for regular attachments and "inline" for inline ones.
func NewAttachment(name, path string) Attachment {
	return Attachment{Name: name, Path: path}
}

// String renders the attachment as "@name:path".
func (a Attachment) String() string {
	return "@" + a.Name + ":" + a.Path
}

// AttachmentList is an ordered list of attachments.
type AttachmentList []Attachment

// Append adds a to the end of the list.
func (l *AttachmentList) Append(a Attachment) {
	*l = append(*l, a)
}

// String joins the rendered attachments with commas.
func (l AttachmentList) String() string {
	parts := make([]string, len(l))
	for i, a := range l {
		parts[i] = a.String()
	}
	return strings.Join(parts, ",")
}

func (l AttachmentList) clone() AttachmentList {
	if l == nil {
		return nil
	}
	return append(AttachmentList(nil), l...)
}
