package graph

import (
	"errors"
	"fmt"

	"github.com/tidewater-db/tidewater/internal/doc"
	"github.com/tidewater-db/tidewater/internal/ir"
)

// StructureError reports a graph edge or ordering that violates the
// topological-order precondition. It indicates a lowering bug, not user
// input, and aborts serialization before a corrupt document can be
// emitted.
type StructureError struct {
	OperatorID int64
	Message    string
}

// Error implements the error interface.
func (e *StructureError) Error() string {
	return fmt.Sprintf("GRAPH_STRUCTURE: operator %d: %s", e.OperatorID, e.Message)
}

// IsStructure reports whether err is a StructureError.
// Uses errors.As to handle wrapped errors.
func IsStructure(err error) bool {
	var se *StructureError
	return errors.As(err, &se)
}

// Graph is the DAG of operators produced by lowering, in topological
// order. Immutable once lowering has appended all operators.
type Graph struct {
	operators []Operator
}

// New builds a graph over the given operators, in list order.
func New(operators ...Operator) *Graph {
	return &Graph{operators: operators}
}

// Append adds an operator at the end of the list. The caller is
// responsible for appending in topological order; Validate checks it.
func (g *Graph) Append(op Operator) {
	g.operators = append(g.operators, op)
}

// Operators returns the operator list in topological order.
func (g *Graph) Operators() []Operator {
	return g.operators
}

// Validate checks the graph's structural invariants: ids are
// non-negative and unique, and every input reference resolves to an
// operator earlier in the list.
func (g *Graph) Validate() error {
	seen := make(map[int64]bool, len(g.operators))
	for _, op := range g.operators {
		b := op.Base()
		if b.ID < 0 {
			return &StructureError{OperatorID: b.ID, Message: "negative operator id"}
		}
		if seen[b.ID] {
			return &StructureError{OperatorID: b.ID, Message: "duplicate operator id"}
		}
		for _, in := range b.Inputs {
			if !seen[in] {
				return &StructureError{
					OperatorID: b.ID,
					Message:    fmt.Sprintf("input %d does not resolve to an earlier operator", in),
				}
			}
		}
		seen[b.ID] = true
	}
	return nil
}

// Document projects the graph into the structured document the JIT
// backend consumes: metadata followed by the ordered operator list.
// The projection is pure and side-effect free; it validates first so a
// malformed graph produces no document at all.
func (g *Graph) Document() (doc.Object, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	operators := make(doc.Array, len(g.operators))
	for i, op := range g.operators {
		od, err := operatorDocument(op)
		if err != nil {
			return nil, fmt.Errorf("operator %d: %w", op.Base().ID, err)
		}
		operators[i] = od
	}
	return doc.Object{
		"metadata": doc.Object{
			"ir_version":       doc.String(ir.IRVersion),
			"compiler_version": doc.String(ir.CompilerVersion),
		},
		"operators": operators,
	}, nil
}

// MarshalCanonical serializes the graph document to its stable byte
// form. The same graph always yields byte-identical output.
func (g *Graph) MarshalCanonical() ([]byte, error) {
	document, err := g.Document()
	if err != nil {
		return nil, err
	}
	return doc.MarshalCanonical(document)
}

// operatorDocument projects one operator: the common fields shared by
// all kinds plus the kind-specific payload.
func operatorDocument(op Operator) (doc.Object, error) {
	b := op.Base()
	inputs := make(doc.Array, len(b.Inputs))
	for i, in := range b.Inputs {
		inputs[i] = doc.Int(in)
	}
	payload, err := op.payload()
	if err != nil {
		return nil, err
	}
	o := doc.Object{
		"id":      doc.Int(b.ID),
		"kind":    doc.String(b.Kind),
		"label":   doc.String(b.Label),
		"inputs":  inputs,
		"payload": payload,
	}
	if b.Comment != "" {
		o["comment"] = doc.String(b.Comment)
	}
	return o, nil
}
