package ir

import "strings"

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Decl is a declaration of an externally defined (library) function: only
// its name and signature are known, no body.
type Decl struct {
	Name   string
	Params []*Type
	Ret    *Type
}

// Text renders the declaration line, e.g. "decl @getarray(*i32): i32".
func (d Decl) Text() string {
	parts := make([]string, len(d.Params))
	for i, p := range d.Params {
		parts[i] = p.String()
	}
	s := "decl " + d.Name + "(" + strings.Join(parts, ", ") + ")"
	if d.Ret.Kind != Unit {
		s += ": " + d.Ret.String()
	}
	return s + "\n"
}

// Module is a whole compiled program: the library declarations, global
// variables, and function definitions.
type Module struct {
	Decls     []Decl
	Globals   []*AllocInstr
	Functions []*Function
}

// ---------------------
// ----- Constants -----
// ---------------------

// LibraryDecls returns the fixed set of implicitly declared library
// functions, in the order they appear in the external textual grammar.
func LibraryDecls() []Decl {
	return []Decl{
		{Name: "@getint", Ret: TypeI32},
		{Name: "@getch", Ret: TypeI32},
		{Name: "@getarray", Params: []*Type{PointerTo(TypeI32)}, Ret: TypeI32},
		{Name: "@putint", Params: []*Type{TypeI32}, Ret: TypeUnit},
		{Name: "@putch", Params: []*Type{TypeI32}, Ret: TypeUnit},
		{Name: "@putarray", Params: []*Type{TypeI32, PointerTo(TypeI32)}, Ret: TypeUnit},
		{Name: "@starttime", Ret: TypeUnit},
		{Name: "@stoptime", Ret: TypeUnit},
	}
}

// ---------------------
// ----- Functions -----
// ---------------------

// NewModule returns an empty module pre-populated with the library
// declarations.
func NewModule() *Module {
	return &Module{Decls: LibraryDecls()}
}

// AddGlobal appends a global allocation.
func (m *Module) AddGlobal(g *AllocInstr) {
	m.Globals = append(m.Globals, g)
}

// AddFunction appends a function definition.
func (m *Module) AddFunction(f *Function) {
	m.Functions = append(m.Functions, f)
}

// Text renders the whole module in the external textual grammar: library
// decls first, then globals, then function definitions -- the ordering
// named explicitly by the grammar example, which this module follows even
// though the original implementation this was distilled from emits globals
// before decls.
func (m *Module) Text() string {
	sb := strings.Builder{}
	for _, d := range m.Decls {
		sb.WriteString(d.Text())
	}
	if len(m.Decls) > 0 {
		sb.WriteRune('\n')
	}
	for _, g := range m.Globals {
		sb.WriteString(g.Text())
	}
	if len(m.Globals) > 0 {
		sb.WriteRune('\n')
	}
	for i, f := range m.Functions {
		sb.WriteString(f.Text())
		if i != len(m.Functions)-1 {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}
