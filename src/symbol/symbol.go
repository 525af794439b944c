// Package symbol implements the lexically scoped symbol environment:
// per-scope identifier tables, the symbol type model, and the unique-name
// minting scheme used to keep emitted IR names collision-free.
//
// Grounded in the enum-plus-String() idiom of the teacher module's
// ir/lir/types package, and in the per-scope map storage of the sibling
// mna-nenuphar example, which backs its interpreter environment with
// github.com/dolthub/swiss's generic Map.
package symbol

import "fmt"

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Kind is the symbol type model from the data model: plain integers,
// compile-time integer constants, the two function shapes, and arrays
// (ordinary or constant).
type Kind int

const (
	Int Kind = iota
	IntConst
	FuncInt
	FuncVoid
	Array
	ArrayConst
)

var kindNames = [...]string{
	Int:        "INT",
	IntConst:   "INT_CONST",
	FuncInt:    "FUNC_INT",
	FuncVoid:   "FUNC_VOID",
	Array:      "ARRAY",
	ArrayConst: "ARRAY_CONST",
}

// String returns a print-friendly name for the Kind.
func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// IsFunc reports whether k is one of the two function kinds.
func (k Kind) IsFunc() bool {
	return k == FuncInt || k == FuncVoid
}

// IsArray reports whether k is one of the two array kinds.
func (k Kind) IsArray() bool {
	return k == Array || k == ArrayConst
}

// Symbol is a single entry in the environment: the source identifier, its
// emitted name, its type kind, and kind-specific payload.
//
// Dims is modeled as a plain slice, not a hand-built linked list -- there is
// no analogue here of a structure that could be torn down with a partial,
// non-recursive walk. A leading entry of -1 marks an array-parameter symbol
// (storage is a pointer to the element array, decaying through getptr on
// the first index).
type Symbol struct {
	Ident   string // Source identifier.
	Emitted string // Emitted IR name: "@ident_k", "@ident" for functions, or "" for INT_CONST.
	Kind    Kind
	Value   int   // Valid when Kind == IntConst.
	Dims    []int // Valid when Kind is Array or ArrayConst.
}

// IsArrayParam reports whether s is an array symbol whose first dimension
// is the unspecified (-1) array-parameter marker.
func (s *Symbol) IsArrayParam() bool {
	return s.Kind.IsArray() && len(s.Dims) > 0 && s.Dims[0] == -1
}
