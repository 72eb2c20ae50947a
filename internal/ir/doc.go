// Package ir provides the typed intermediate representation for Tidewater.
//
// The IR is the tree form of compiled query logic between the SQL planner
// and the JIT backend. It has three layers:
//   - Type: a closed set of value types with nullability
//   - Expression/Statement: immutable node trees built over the types
//   - Literal values: per-primitive constants carried by Literal nodes
//
// All other internal packages import ir; ir imports nothing internal.
// This ensures the IR remains the foundational layer with no circular
// dependencies.
//
// Key design constraints:
//   - Nodes are immutable values; transformation produces new trees
//   - Trees may share subtrees by reference but carry no back-pointers,
//     so they are always acyclic
//   - Every expression carries its static type and a provenance handle
//     pointing at the originating SQL construct (diagnostics only)
package ir
