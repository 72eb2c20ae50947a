package ir

import (
	"errors"
	"fmt"
)

// UnsupportedOperationError reports a type-level request that has no
// defined answer, e.g. the multiplicative identity of an interval type.
// It is always fatal to the operation requesting it and never retried.
type UnsupportedOperationError struct {
	// Op names the requested operation ("one", "min", ...).
	Op string

	// Type is the type the operation was requested on.
	Type Type

	// Prov locates the construct that triggered the request, if known.
	Prov Provenance
}

// Error implements the error interface.
func (e *UnsupportedOperationError) Error() string {
	if e.Prov.IsEmpty() {
		return fmt.Sprintf("UNSUPPORTED_OPERATION: %s is not defined for type %s", e.Op, e.Type)
	}
	return fmt.Sprintf("UNSUPPORTED_OPERATION: %s is not defined for type %s (at %s)", e.Op, e.Type, e.Prov)
}

// IsUnsupportedOperation reports whether err is an UnsupportedOperationError.
// Uses errors.As to handle wrapped errors.
func IsUnsupportedOperation(err error) bool {
	var ue *UnsupportedOperationError
	return errors.As(err, &ue)
}

// unsupported builds an UnsupportedOperationError for op on t.
func unsupported(op string, t Type) error {
	return &UnsupportedOperationError{Op: op, Type: t}
}
