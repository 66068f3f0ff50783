package mailgun

import (
	"encoding/json"
	"unicode/utf8"
)

// forbiddenBody is the plain-text body Mailgun answers with for a bad API key.
const forbiddenBody = "Forbidden"

// SendResponse is Mailgun's acknowledgement of a queued message.
type SendResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// apiResponse is the shape shared by success and rejection bodies.
type apiResponse struct {
	Message *string `json:"message"`
	ID      *string `json:"id"`
}

// classifyResponse turns a response body into a SendResponse or an error.
// The HTTP status is not consulted.
func classifyResponse(body []byte) (*SendResponse, error) {
	if string(body) == forbiddenBody {
		return nil, mailgunErrors.New(ErrForbidden)
	}

	var r apiResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, mailgunErrors.NewWithCause(ErrDecode, err).WithDetail("body", truncate(body, 512))
	}
	if r.Message == nil {
		return nil, mailgunErrors.New(ErrDecode).
			WithDetail("reason", "missing message").
			WithDetail("body", truncate(body, 512))
	}

	if r.ID == nil {
		return nil, mailgunErrors.NewWithMessage(ErrSendRejected, *r.Message).
			WithDetail("provider_message", *r.Message)
	}

	return &SendResponse{ID: *r.ID, Message: *r.Message}, nil
}

// truncate shortens b to at most n bytes without splitting a UTF-8 sequence.
func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	for n > 0 && !utf8.RuneStart(b[n]) {
		n--
	}
	return string(b[:n]) + "..."
}
