package ir

import (
	"fmt"
	"strings"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Instr is a single IR instruction. Every concrete instruction kind below
// implements Instr directly -- this is a tagged union realized as a set of
// distinct Go types (one per kind), matched with a type switch in the
// backend, rather than a class hierarchy with virtual dispatch.
type Instr interface {
	// Text renders the instruction's line(s) of IR text, including the
	// two-space indent used inside function bodies. Global-scope forms
	// (AllocInstr used for a global) render without indent; see their
	// doc comments.
	Text() string
	// Def returns the value this instruction defines and true, or
	// (Ref{}, false) if the instruction does not produce a usable result
	// (Store, Branch, Jump, Ret, and a Call of a void function).
	Def() (Ref, bool)
}

// AllocInstr allocates storage of type Elem, either as a local stack slot
// ("@name = alloc TYPE") or, when Global is true, as a module-level
// variable ("global @name = alloc TYPE, INIT").
type AllocInstr struct {
	Name string
	Elem *Type
	// Global marks this as a module-scope allocation.
	Global bool
	// Init is the global initializer text, already rendered (either
	// "zeroinit" or a nested brace literal from InitList). Empty for
	// local allocs, which are never pre-initialized by alloc itself.
	Init string
}

func (a *AllocInstr) Text() string {
	if a.Global {
		return fmt.Sprintf("global %s = alloc %s, %s\n", a.Name, a.Elem.String(), a.Init)
	}
	return fmt.Sprintf("  %s = alloc %s\n", a.Name, a.Elem.String())
}

// Def implements Instr. The defined value's operand type is a pointer to
// Elem (matching the textual IR's own alloc semantics: "@a_0" denotes a
// pointer to the allocated type). Frame planning asks about Elem's size
// directly rather than through Def, which is how it charges full array
// size only for array allocs while every other instruction's result slot
// is always 4 bytes regardless of nominal type.
func (a *AllocInstr) Def() (Ref, bool) {
	return Ref{Name: a.Name, Typ: PointerTo(a.Elem)}, true
}

// LoadInstr loads the value pointed to by Src into a fresh temporary.
type LoadInstr struct {
	Dst string
	Src Operand
	Typ *Type // result type: the pointee type of Src.
}

func (l *LoadInstr) Text() string {
	return fmt.Sprintf("  %s = load %s\n", l.Dst, l.Src.Text())
}

func (l *LoadInstr) Def() (Ref, bool) {
	return Ref{Name: l.Dst, Typ: l.Typ}, true
}

// StoreInstr stores Val into the location Dst points to.
type StoreInstr struct {
	Val Operand
	Dst Operand
}

func (s *StoreInstr) Text() string {
	return fmt.Sprintf("  store %s, %s\n", s.Val.Text(), s.Dst.Text())
}

func (s *StoreInstr) Def() (Ref, bool) { return Ref{}, false }

// BinaryOp is one of the arithmetic/relational operator names used by
// BinaryInstr and understood by the backend's binary-op mapping table.
type BinaryOp string

const (
	Add BinaryOp = "add"
	Sub BinaryOp = "sub"
	Mul BinaryOp = "mul"
	Div BinaryOp = "div"
	Mod BinaryOp = "mod"
	Lt  BinaryOp = "lt"
	Gt  BinaryOp = "gt"
	Le  BinaryOp = "le"
	Ge  BinaryOp = "ge"
	Eq  BinaryOp = "eq"
	Ne  BinaryOp = "ne"
)

// BinaryInstr computes Op(L, R) into a fresh temporary. Always i32-typed:
// the source language has no operators producing any other static type.
type BinaryInstr struct {
	Dst  string
	Op   BinaryOp
	L, R Operand
}

func (b *BinaryInstr) Text() string {
	return fmt.Sprintf("  %s = %s %s, %s\n", b.Dst, b.Op, b.L.Text(), b.R.Text())
}

func (b *BinaryInstr) Def() (Ref, bool) {
	return Ref{Name: b.Dst, Typ: TypeI32}, true
}

// BranchInstr is a conditional terminator.
type BranchInstr struct {
	Cond       Operand
	Then, Else string
}

func (br *BranchInstr) Text() string {
	return fmt.Sprintf("  br %s, %s, %s\n", br.Cond.Text(), br.Then, br.Else)
}

func (br *BranchInstr) Def() (Ref, bool) { return Ref{}, false }

// JumpInstr is an unconditional terminator.
type JumpInstr struct {
	Target string
}

func (j *JumpInstr) Text() string {
	return fmt.Sprintf("  jump %s\n", j.Target)
}

func (j *JumpInstr) Def() (Ref, bool) { return Ref{}, false }

// RetInstr is a return terminator. Val is nil for a void return.
type RetInstr struct {
	Val Operand
}

func (r *RetInstr) Text() string {
	if r.Val == nil {
		return "  ret\n"
	}
	return fmt.Sprintf("  ret %s\n", r.Val.Text())
}

func (r *RetInstr) Def() (Ref, bool) { return Ref{}, false }

// CallInstr calls Func with Args. Dst is "" for a void call.
type CallInstr struct {
	Dst  string
	Func string
	Args []Operand
	Ret  *Type // Ret.Kind == Unit for a void call.
}

func (c *CallInstr) Text() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.Text()
	}
	call := fmt.Sprintf("call %s(%s)", c.Func, strings.Join(parts, ", "))
	if c.Dst == "" {
		return "  " + call + "\n"
	}
	return fmt.Sprintf("  %s = %s\n", c.Dst, call)
}

func (c *CallInstr) Def() (Ref, bool) {
	if c.Dst == "" {
		return Ref{}, false
	}
	return Ref{Name: c.Dst, Typ: c.Ret}, true
}

// GetElemPtrInstr indexes into an array-typed pointer: Ptr's static type
// must be a pointer to an array (invariant 2).
type GetElemPtrInstr struct {
	Dst string
	Ptr Operand
	Idx Operand
	Typ *Type // result type: pointer to the array's element type.
}

func (g *GetElemPtrInstr) Text() string {
	return fmt.Sprintf("  %s = getelemptr %s, %s\n", g.Dst, g.Ptr.Text(), g.Idx.Text())
}

func (g *GetElemPtrInstr) Def() (Ref, bool) {
	return Ref{Name: g.Dst, Typ: g.Typ}, true
}

// GetPtrInstr indexes off a decayed pointer (the array-parameter decay
// case): Ptr's static type must be a pointer, whose pointee (a scalar
// element or a whole row) is strided over without being unwrapped.
type GetPtrInstr struct {
	Dst string
	Ptr Operand
	Idx Operand
	Typ *Type // result type: same pointer type as Ptr (no unwrapping).
}

func (g *GetPtrInstr) Text() string {
	return fmt.Sprintf("  %s = getptr %s, %s\n", g.Dst, g.Ptr.Text(), g.Idx.Text())
}

func (g *GetPtrInstr) Def() (Ref, bool) {
	return Ref{Name: g.Dst, Typ: g.Typ}, true
}
