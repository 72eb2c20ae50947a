// Package doc provides the structured-document model the compiler hands
// to the JIT backend, together with its canonical serialization.
//
// A document is a tree of sealed Value variants mirroring JSON. The
// canonical encoding is the ONLY byte form the backend's golden tests
// compare against, so serializing the same document twice must produce
// byte-identical output:
//   - Object keys sorted by UTF-16 code units (RFC 8785 ordering)
//   - Strings NFC normalized, no HTML escaping (RFC 8785 escaping rules)
//   - Floats use Go's shortest round-trip rendering, not RFC 8785's
//     ECMAScript number form (0.000001 renders as 1e-06); the encoding is
//     deterministic either way. NaN and infinities rejected
//
// Operator-graph documents legitimately contain null (an operator
// without a per-row function) and floats (SQL floating-point literals),
// so both are representable here.
package doc
