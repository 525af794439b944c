package ir

import "sysyc/src/backend/xtoa"

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Operand is anything usable as an instruction operand: an integer literal
// or a reference to a previously defined value (a global, a local alloc
// slot, or a temporary).
type Operand interface {
	// Text renders the operand the way it appears in an instruction line:
	// a decimal literal, "@name" or "%name".
	Text() string
	// Type returns the operand's static type.
	Type() *Type
}

// IntLit is an integer-literal operand.
type IntLit struct {
	V int
}

// Text implements Operand.
func (l IntLit) Text() string { return xtoa.ItoA(l.V) }

// Type implements Operand. Integer literals are always i32.
func (l IntLit) Type() *Type { return TypeI32 }

// Ref is a reference to a named, previously defined value: a global
// ("@name"), a local alloc or function parameter slot ("@name" or
// "%name"), or an instruction result ("%name"). Its Typ is the static type
// assigned when the defining instruction was built.
type Ref struct {
	Name string
	Typ  *Type
}

// Text implements Operand.
func (r Ref) Text() string { return r.Name }

// Type implements Operand.
func (r Ref) Type() *Type { return r.Typ }
