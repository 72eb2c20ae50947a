package schema

import (
	"fmt"

	"github.com/tidewater-db/tidewater/internal/doc"
)

// CheckOrdering verifies the topological-order contract of a serialized
// document: every inputs id of an operator resolves to an operator that
// appears earlier in the list. Run after Validate, which guarantees the
// field shapes this walk relies on.
func CheckOrdering(data []byte) error {
	v, err := doc.FromJSON(data)
	if err != nil {
		return &ValidationError{Message: fmt.Sprintf("document is not valid JSON: %v", err)}
	}
	root, ok := v.(doc.Object)
	if !ok {
		return &ValidationError{Message: "document is not an object"}
	}
	operators, ok := root["operators"].(doc.Array)
	if !ok {
		return &ValidationError{Message: "document has no operators list"}
	}

	seen := make(map[doc.Int]bool, len(operators))
	for k, elem := range operators {
		op, ok := elem.(doc.Object)
		if !ok {
			return &ValidationError{Message: fmt.Sprintf("operator at position %d is not an object", k)}
		}
		id, ok := op["id"].(doc.Int)
		if !ok {
			return &ValidationError{Message: fmt.Sprintf("operator at position %d has no integer id", k)}
		}
		if seen[id] {
			return &ValidationError{Message: fmt.Sprintf("duplicate operator id %d", id)}
		}
		inputs, ok := op["inputs"].(doc.Array)
		if !ok {
			return &ValidationError{Message: fmt.Sprintf("operator %d has no inputs list", id)}
		}
		for _, in := range inputs {
			ref, ok := in.(doc.Int)
			if !ok {
				return &ValidationError{Message: fmt.Sprintf("operator %d has a non-integer input", id)}
			}
			if !seen[ref] {
				return &ValidationError{
					Message: fmt.Sprintf("operator %d references input %d which is not declared earlier", id, ref),
				}
			}
		}
		seen[id] = true
	}
	return nil
}
