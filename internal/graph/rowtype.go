package graph

import (
	"github.com/tidewater-db/tidewater/internal/doc"
	"github.com/tidewater-db/tidewater/internal/ir"
)

// RowType is the schema of values flowing on an operator's output edge:
// an ordered list of column types.
type RowType struct {
	Columns []ir.Type
}

// NewRowType builds a row type over the given ordered column types.
func NewRowType(columns ...ir.Type) RowType {
	return RowType{Columns: columns}
}

// SameType reports structural equality of two row types.
func (rt RowType) SameType(other RowType) bool {
	if len(rt.Columns) != len(other.Columns) {
		return false
	}
	for i := range rt.Columns {
		if !rt.Columns[i].SameType(other.Columns[i]) {
			return false
		}
	}
	return true
}

// Description projects the row layout into document form.
func (rt RowType) Description() doc.Value {
	columns := make(doc.Array, len(rt.Columns))
	for i, c := range rt.Columns {
		columns[i] = typeDescription(c)
	}
	return doc.Object{"columns": columns}
}

// typeDescription projects one IR type into document form. Only the
// parameters relevant to the kind are emitted, so the description is as
// stable as the type itself.
func typeDescription(t ir.Type) doc.Value {
	o := doc.Object{
		"kind":     doc.String(t.Kind.String()),
		"nullable": doc.Bool(t.Nullable),
	}
	switch t.Kind {
	case ir.KindInt, ir.KindFloat:
		o["width"] = doc.Int(int64(t.Width))
	case ir.KindDecimal:
		o["precision"] = doc.Int(int64(t.Precision))
		o["scale"] = doc.Int(int64(t.Scale))
	case ir.KindString:
		o["precision"] = doc.Int(int64(t.Precision))
	case ir.KindRow:
		fields := make(doc.Array, len(t.Fields))
		for i, f := range t.Fields {
			fields[i] = typeDescription(f)
		}
		o["fields"] = fields
	}
	return o
}
