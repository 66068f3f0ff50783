package outbox

import "github.com/Abraxas-365/mailgun/pkg/errx"

var outboxErrors = errx.NewRegistry("OUTBOX")

var (
	ErrEntryNotFound   = outboxErrors.Register("ENTRY_NOT_FOUND", errx.TypeNotFound, 404, "Outbox entry not found")
	ErrEnqueueFailed   = outboxErrors.Register("ENQUEUE_FAILED", errx.TypeExternal, 500, "Failed to enqueue message")
	ErrAlreadyRunning  = outboxErrors.Register("ALREADY_RUNNING", errx.TypeConflict, 409, "Outbox worker is already running")
	ErrShutdownTimeout = outboxErrors.Register("SHUTDOWN_TIMEOUT", errx.TypeInternal, 500, "Graceful shutdown timed out")
)

// NotFound returns the error stores report for an unknown entry id.
func NotFound(id string) error {
	return outboxErrors.New(ErrEntryNotFound).WithDetail("entry_id", id)
}
