package errors

import "errors"

// Sentinel errors shared across the service layer. Services return these
// (usually wrapped with fmt.Errorf and %w) instead of HTTP status codes;
// the API layer maps them to responses with errors.Is. This keeps business
// logic free of transport concerns.

var (
	// ErrNotFound signifies that a requested resource could not be located.
	// Mapped to 404 Not Found.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation signifies that client input failed validation. The
	// wrapped message carries field-level detail and is safe to surface.
	// Mapped to 400 Bad Request.
	ErrValidation = errors.New("validation failed")

	// ErrConflict signifies that an operation conflicts with the current
	// state of a resource, e.g. claiming a slug another tenant owns.
	// Mapped to 409 Conflict.
	ErrConflict = errors.New("resource conflict")

	// ErrPermission signifies that the caller is not allowed to act on the
	// resource, e.g. a message update scoped to a different tenant.
	// Mapped to 403 Forbidden.
	ErrPermission = errors.New("permission denied")

	// ErrUpstream signifies a failure in an external collaborator (the
	// retrieval service or an inference provider). Not recovered here;
	// mapped to 502 by the outer layer.
	ErrUpstream = errors.New("upstream service error")

	// ErrInternal is the generic server-side failure, used where exposing
	// the underlying error would leak implementation detail.
	// Mapped to 500 Internal Server Error.
	ErrInternal = errors.New("internal server error")
)

// ValidationError carries field-level detail for a validation failure. It
// unwraps to ErrValidation so transport mapping stays errors.Is based; the
// API layer surfaces Details alongside the message.
type ValidationError struct {
	Message string
	Details []string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }
