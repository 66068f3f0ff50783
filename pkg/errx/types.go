package errx

// Type represents the category of error
type Type string

const (
	// TypeInternal is a failure inside this process, e.g. a body that could not be built
	TypeInternal Type = "INTERNAL"

	// TypeValidation is a caller error detected before any I/O
	TypeValidation Type = "VALIDATION"

	// TypeAuthorization is a rejected credential, ours or the caller's
	TypeAuthorization Type = "AUTHORIZATION"

	// TypeNotFound is a missing resource such as an unknown outbox entry
	TypeNotFound Type = "NOT_FOUND"

	// TypeConflict is a state conflict such as starting a running worker twice
	TypeConflict Type = "CONFLICT"

	// TypeBusiness is a domain rule violation
	TypeBusiness Type = "BUSINESS"

	// TypeExternal is a failure reported by, or while talking to, a remote service
	TypeExternal Type = "EXTERNAL"
)

// String returns the string representation of the error type
func (t Type) String() string {
	return string(t)
}
