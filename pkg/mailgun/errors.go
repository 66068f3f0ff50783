package mailgun

import (
	"errors"

	"github.com/Abraxas-365/mailgun/pkg/errx"
)

var mailgunErrors = errx.NewRegistry("MAILGUN")

var (
	ErrInvalidMessage     = mailgunErrors.Register("INVALID_MESSAGE", errx.TypeValidation, 400, "Message has no text or html body")
	ErrFieldSerialization = mailgunErrors.Register("FIELD_SERIALIZATION", errx.TypeInternal, 500, "Failed to serialize message field")
	ErrBodyConstruction   = mailgunErrors.Register("BODY_CONSTRUCTION", errx.TypeInternal, 500, "Failed to build multipart message body")
	ErrTransport          = mailgunErrors.Register("TRANSPORT", errx.TypeExternal, 502, "Mailgun request failed")
	ErrForbidden          = mailgunErrors.Register("FORBIDDEN", errx.TypeAuthorization, 401, "Mailgun API forbidden, check the API key")
	ErrSendRejected       = mailgunErrors.Register("SEND_REJECTED", errx.TypeExternal, 502, "Mailgun rejected the message")
	ErrDecode             = mailgunErrors.Register("DECODE", errx.TypeExternal, 502, "Unable to decode Mailgun response")
)

// RejectionMessage returns the message Mailgun gave when it rejected a send.
func RejectionMessage(err error) (string, bool) {
	if !errx.IsCode(err, ErrSendRejected) {
		return "", false
	}
	var e *errx.Error
	if !errors.As(err, &e) {
		return "", false
	}
	msg, ok := e.Details["provider_message"].(string)
	return msg, ok
}
