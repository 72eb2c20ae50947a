package graph

import (
	"github.com/tidewater-db/tidewater/internal/doc"
	"github.com/tidewater-db/tidewater/internal/ir"
)

// Operator kind tags, the closed set of the serialized contract.
const (
	OpSource = "source"
	OpSink   = "sink"
	OpMap    = "map"
	OpFilter = "filter"
	OpJoin   = "join"
)

// Operator is a sealed interface over the operator node kinds. Only the
// operator types in this package implement it.
//
// Operators are constructed by the lowering step that turns planner
// output into graph form and are immutable thereafter.
type Operator interface {
	operatorNode() // Sealed

	// Base returns the fields common to every operator kind.
	Base() *OperatorBase

	// payload projects the kind-specific fields into document form.
	payload() (doc.Object, error)
}

// OperatorBase carries the fields shared by all operator kinds.
type OperatorBase struct {
	// ID is unique within a graph and is the only cross-reference
	// mechanism between operators.
	ID int64

	// Kind is the operator kind tag.
	Kind string

	// Label is an operator-specific label, e.g. an aggregate name.
	// May be empty.
	Label string

	// Rows is the schema of values flowing on the output edge.
	Rows RowType

	// Inputs are the ids of predecessor operators, in edge order.
	// Each must resolve to an operator earlier in the graph's list.
	Inputs []int64

	// Function is the operator's per-row computation, when it has one.
	Function ir.Expression

	// Comment is free text for human debugging; the consumer ignores it.
	Comment string
}

func (*OperatorBase) operatorNode() {}

// Base returns b itself; embedding OperatorBase satisfies Operator's
// common-field accessor for every concrete kind.
func (b *OperatorBase) Base() *OperatorBase { return b }

// SourceOperator introduces the rows of one input table into the
// circuit. It has no inputs and no per-row function.
type SourceOperator struct {
	OperatorBase

	// Table is the name of the source table.
	Table string
}

// NewSource builds a source operator for the named table.
func NewSource(id int64, rows RowType, table, comment string) *SourceOperator {
	return &SourceOperator{
		OperatorBase: OperatorBase{ID: id, Kind: OpSource, Rows: rows, Comment: comment},
		Table:        table,
	}
}

func (o *SourceOperator) payload() (doc.Object, error) {
	return doc.Object{
		"table":  doc.String(o.Table),
		"layout": o.Rows.Description(),
	}, nil
}

// SinkOperator materializes its input rows into a named view. Its row
// type describes the rows arriving on the input edge.
type SinkOperator struct {
	OperatorBase

	// View is the name of the view the sink materializes.
	View string
}

// NewSink builds a sink operator materializing the named view.
func NewSink(id int64, rows RowType, inputs []int64, view, comment string) *SinkOperator {
	return &SinkOperator{
		OperatorBase: OperatorBase{ID: id, Kind: OpSink, Rows: rows, Inputs: inputs, Comment: comment},
		View:         view,
	}
}

func (o *SinkOperator) payload() (doc.Object, error) {
	return doc.Object{
		"view":         doc.String(o.View),
		"input_layout": o.Rows.Description(),
	}, nil
}

// MapOperator applies a per-row computation to its input rows.
type MapOperator struct {
	OperatorBase
}

// NewMap builds a map operator applying function to each input row.
func NewMap(id int64, rows RowType, input int64, function ir.Expression, comment string) *MapOperator {
	return &MapOperator{
		OperatorBase: OperatorBase{ID: id, Kind: OpMap, Rows: rows, Inputs: []int64{input}, Function: function, Comment: comment},
	}
}

func (o *MapOperator) payload() (doc.Object, error) {
	fn, err := functionDocument(o.Function)
	if err != nil {
		return nil, err
	}
	return doc.Object{
		"function": fn,
		"layout":   o.Rows.Description(),
	}, nil
}

// FilterOperator keeps the input rows its predicate accepts.
type FilterOperator struct {
	OperatorBase
}

// NewFilter builds a filter operator keeping rows accepted by predicate.
func NewFilter(id int64, rows RowType, input int64, predicate ir.Expression, comment string) *FilterOperator {
	return &FilterOperator{
		OperatorBase: OperatorBase{ID: id, Kind: OpFilter, Rows: rows, Inputs: []int64{input}, Function: predicate, Comment: comment},
	}
}

func (o *FilterOperator) payload() (doc.Object, error) {
	fn, err := functionDocument(o.Function)
	if err != nil {
		return nil, err
	}
	return doc.Object{
		"function": fn,
		"layout":   o.Rows.Description(),
	}, nil
}

// JoinOperator joins its two input edges on a key computation.
type JoinOperator struct {
	OperatorBase
}

// NewJoin builds a join operator over two inputs with the given key
// computation.
func NewJoin(id int64, rows RowType, left, right int64, key ir.Expression, comment string) *JoinOperator {
	return &JoinOperator{
		OperatorBase: OperatorBase{ID: id, Kind: OpJoin, Rows: rows, Inputs: []int64{left, right}, Function: key, Comment: comment},
	}
}

func (o *JoinOperator) payload() (doc.Object, error) {
	fn, err := functionDocument(o.Function)
	if err != nil {
		return nil, err
	}
	return doc.Object{
		"function": fn,
		"layout":   o.Rows.Description(),
	}, nil
}

// functionDocument projects an optional per-row function; operators
// without one serialize an explicit null.
func functionDocument(e ir.Expression) (doc.Value, error) {
	if e == nil {
		return doc.Null{}, nil
	}
	return expressionDocument(e)
}
