// Package rewrite provides the generic traversal and rewrite engine that
// every compiler pass builds on.
//
// A pass implements Pass and only handles the node kinds it cares about;
// the Rewriter supplies the rest of the protocol: recursive descent in a
// fixed child order (arguments, then callee, then type), an ancestor
// context stack for diagnostics, and an identity-keyed side table that
// maps each visited node to its replacement. The side table doubles as a
// shared-subtree memo: a node reachable through two parents is rewritten
// once and both occurrences receive the same replacement, which preserves
// sharing and avoids exponential blow-up.
//
// The engine never mutates an input tree. Traversal is single-threaded
// and strictly nested; an unbalanced context stack is a programming
// error and panics rather than producing a corrupt tree. Multiple
// independent compilations may run concurrently as long as each owns its
// own Rewriter.
package rewrite
