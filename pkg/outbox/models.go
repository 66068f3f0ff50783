package outbox

import (
	"time"

	"github.com/Abraxas-365/mailgun/pkg/mailgun"
)

// Status represents the current state of an outbox entry.
type Status string

const (
	StatusPending Status = "pending"
	StatusSending Status = "sending"
	StatusSent    Status = "sent"
	StatusFailed  Status = "failed"
)

// Entry is a message waiting in, or already processed by, the outbox.
type Entry struct {
	ID      string          `json:"id"`
	Message mailgun.Message `json:"message"`
	Status  Status          `json:"status"`

	// MailgunID and ProviderMessage are set once Mailgun accepted the message.
	MailgunID       string `json:"mailgun_id,omitempty"`
	ProviderMessage string `json:"provider_message,omitempty"`

	// ErrorCode is the errx code of the failure, e.g. MAILGUN_FORBIDDEN.
	ErrorCode string `json:"error_code,omitempty"`
	Error     string `json:"error,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewEntry creates a pending entry for m.
func NewEntry(id string, m mailgun.Message) *Entry {
	now := time.Now().UTC()
	return &Entry{
		ID:        id,
		Message:   m.Clone(),
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Done reports whether the entry reached a final status.
func (e *Entry) Done() bool {
	return e.Status == StatusSent || e.Status == StatusFailed
}
