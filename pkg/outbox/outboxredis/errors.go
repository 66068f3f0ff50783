package outboxredis

import "github.com/Abraxas-365/mailgun/pkg/errx"

var redisErrors = errx.NewRegistry("OUTBOX_REDIS")

var (
	ErrEnqueue   = redisErrors.Register("ENQUEUE", errx.TypeExternal, 500, "Redis enqueue failed")
	ErrDequeue   = redisErrors.Register("DEQUEUE", errx.TypeExternal, 500, "Redis dequeue failed")
	ErrGetEntry  = redisErrors.Register("GET_ENTRY", errx.TypeExternal, 500, "Redis get entry failed")
	ErrUpdate    = redisErrors.Register("UPDATE", errx.TypeExternal, 500, "Redis entry update failed")
	ErrMarshal   = redisErrors.Register("MARSHAL", errx.TypeInternal, 500, "Failed to marshal outbox entry")
	ErrUnmarshal = redisErrors.Register("UNMARSHAL", errx.TypeInternal, 500, "Failed to unmarshal outbox entry")
)
