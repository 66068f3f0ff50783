package relay

import "github.com/Abraxas-365/mailgun/pkg/errx"

var relayErrors = errx.NewRegistry("RELAY")

var (
	ErrUnauthorized          = relayErrors.Register("UNAUTHORIZED", errx.TypeAuthorization, 401, "Missing bearer token")
	ErrInvalidToken          = relayErrors.Register("INVALID_TOKEN", errx.TypeAuthorization, 401, "Invalid or expired token")
	ErrTokenGenerationFailed = relayErrors.Register("TOKEN_GENERATION_FAILED", errx.TypeInternal, 500, "Failed to generate token")
	ErrInvalidRequest        = relayErrors.Register("INVALID_REQUEST", errx.TypeValidation, 400, "Invalid request body")
	ErrAttachmentPath        = relayErrors.Register("ATTACHMENT_PATH", errx.TypeValidation, 400, "Attachment path must be relative to the storage root")
	ErrOutboxDisabled        = relayErrors.Register("OUTBOX_DISABLED", errx.TypeBusiness, 422, "Outbox is not configured")
)
