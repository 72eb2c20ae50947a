package doc

import (
	"unicode/utf16"

	"golang.org/x/text/unicode/norm"
)

// Value is a sealed interface over document node types. Only Null,
// String, Int, Float, Bool, Array, and Object implement it.
type Value interface {
	docValue() // Sealed - only these types implement it
}

// Null represents an explicit null field, e.g. an operator with no
// per-row function.
type Null struct{}

func (Null) docValue() {}

// String represents a text field.
type String string

func (String) docValue() {}

// Int represents an integer field. Always int64, never float64.
type Int int64

func (Int) docValue() {}

// Float represents a floating-point field.
type Float float64

func (Float) docValue() {}

// Bool represents a boolean field.
type Bool bool

func (Bool) docValue() {}

// Array represents an ordered list of values.
type Array []Value

func (Array) docValue() {}

// Object represents a map of string keys to values.
// Use SortedKeys for deterministic iteration.
type Object map[string]Value

func (Object) docValue() {}

// SortedKeys returns keys in RFC 8785 canonical order (UTF-16 code
// units). Go's sort.Strings compares UTF-8 bytes, which produces a
// different order for strings containing supplementary-plane runes.
func (obj Object) SortedKeys() []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sortKeysRFC8785(keys)
	return keys
}

func sortKeysRFC8785(keys []string) {
	// Insertion sort: key sets are small and nearly sorted already.
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && compareKeysRFC8785(keys[j-1], keys[j]) > 0; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
}

// compareKeysRFC8785 compares strings by UTF-16 code units as required
// by RFC 8785. Keys are NFC normalized before comparison so ordering
// matches the normalized serialized form.
func compareKeysRFC8785(a, b string) int {
	a16 := utf16.Encode([]rune(norm.NFC.String(a)))
	b16 := utf16.Encode([]rune(norm.NFC.String(b)))

	minLen := len(a16)
	if len(b16) < minLen {
		minLen = len(b16)
	}
	for i := 0; i < minLen; i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a16) < len(b16):
		return -1
	case len(a16) > len(b16):
		return 1
	default:
		return 0
	}
}
