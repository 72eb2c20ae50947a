package rewrite

import (
	"errors"
	"fmt"

	"github.com/tidewater-db/tidewater/internal/ir"
)

// UnsupportedConstructError reports an input shape a rewrite pass cannot
// lower, e.g. a non-literal where a literal is structurally required.
// It is fatal to the whole compilation and carries the offending node's
// provenance for diagnostics; retrying without fixing the input cannot
// succeed.
type UnsupportedConstructError struct {
	Message string
	Prov    ir.Provenance
}

// Error implements the error interface.
func (e *UnsupportedConstructError) Error() string {
	return fmt.Sprintf("UNSUPPORTED_CONSTRUCT: %s (at %s)", e.Message, e.Prov)
}

// IsUnsupportedConstruct reports whether err is an
// UnsupportedConstructError. Uses errors.As to handle wrapped errors.
func IsUnsupportedConstruct(err error) bool {
	var ue *UnsupportedConstructError
	return errors.As(err, &ue)
}

// InternalError reports an engine or pass bug: a missing side-table entry
// after a Stop decision, or a similar structural invariant violation.
// It indicates corrupt pass logic, not bad user input, and aborts the
// compilation before any partial artifact can be emitted.
type InternalError struct {
	Message string
}

// Error implements the error interface.
func (e *InternalError) Error() string {
	return "INTERNAL: " + e.Message
}

// IsInternal reports whether err is an InternalError.
// Uses errors.As to handle wrapped errors.
func IsInternal(err error) bool {
	var ie *InternalError
	return errors.As(err, &ie)
}
