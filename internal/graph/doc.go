// Package graph models a compiled dataflow circuit as a DAG of typed
// operator nodes and serializes it to the structured document the JIT
// backend consumes.
//
// Operators reference each other only by integer id, never by pointer,
// which keeps the graph trivially serializable and rules out ownership
// cycles. The operator list is topologically ordered: an operator's
// inputs must appear earlier in the list. That ordering is a
// precondition established by the lowering step; this layer verifies it
// but never re-derives it.
//
// Serialization is a pure projection of the in-memory graph into a
// doc.Object and is byte-stable, so the backend can golden-test the
// wire form.
package graph
