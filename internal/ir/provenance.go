package ir

import "fmt"

// Provenance points back at the SQL construct an IR node was compiled from.
// It is carried for diagnostics only and never influences compilation:
// two nodes that differ only in provenance are the same node semantically.
type Provenance struct {
	// Object is a textual rendering of the source construct, may be empty.
	Object string

	// Line and Column locate the construct in the original statement.
	// Zero values mean "unknown position".
	Line   int
	Column int
}

// EmptyProvenance is the provenance of synthesized nodes with no
// corresponding source construct.
var EmptyProvenance = Provenance{}

// IsEmpty reports whether the provenance carries no source information.
func (p Provenance) IsEmpty() bool {
	return p == EmptyProvenance
}

// String renders the provenance for error messages.
func (p Provenance) String() string {
	if p.IsEmpty() {
		return "<synthesized>"
	}
	if p.Object == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	if p.Line == 0 && p.Column == 0 {
		return p.Object
	}
	return fmt.Sprintf("%d:%d: %s", p.Line, p.Column, p.Object)
}
