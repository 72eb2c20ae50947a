// Package schema validates serialized operator-graph documents against
// the embedded CUE schema. The backend runs the same check before
// consuming a document, so validating at emit time catches contract
// drift inside the compiler instead of across the process boundary.
package schema

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cuejson "cuelang.org/go/encoding/json"
)

//go:embed schema.cue
var source string

// Source returns the CUE schema text, for the CLI's schema command.
func Source() string {
	return source
}

// ValidationError reports a document that does not satisfy the schema.
type ValidationError struct {
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return "SCHEMA_VALIDATION: " + e.Message
}

// Validate checks a serialized graph document (JSON bytes) against the
// embedded schema. A nil return means the document satisfies the
// contract fields of every operator kind.
func Validate(data []byte) error {
	ctx := cuecontext.New()

	schemaVal := ctx.CompileString(source, cue.Filename("schema.cue"))
	if err := schemaVal.Err(); err != nil {
		return fmt.Errorf("internal schema is invalid: %w", err)
	}
	def := schemaVal.LookupPath(cue.ParsePath("#Document"))
	if err := def.Err(); err != nil {
		return fmt.Errorf("internal schema is missing #Document: %w", err)
	}

	expr, err := cuejson.Extract("document.json", data)
	if err != nil {
		return &ValidationError{Message: fmt.Sprintf("document is not valid JSON: %v", err)}
	}
	docVal := ctx.BuildExpr(expr)
	if err := docVal.Err(); err != nil {
		return &ValidationError{Message: fmt.Sprintf("document could not be built: %v", err)}
	}

	unified := def.Unify(docVal)
	if err := unified.Validate(cue.Concrete(true), cue.Final()); err != nil {
		return &ValidationError{Message: formatCUEError(err)}
	}
	return nil
}

// formatCUEError flattens CUE's multi-error into one message with the
// first error's position, matching the single-terminal-error policy.
func formatCUEError(err error) string {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err.Error()
	}
	first := errs[0]
	positions := cueerrors.Positions(first)
	if len(positions) > 0 {
		return fmt.Sprintf("%s (at %s)", first.Error(), positions[0])
	}
	return first.Error()
}
