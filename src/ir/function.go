package ir

import (
	"fmt"
	"strings"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Param is one function parameter: its pseudo-register name as it appears
// in the function header, and its static type (pointer for an
// array-parameter, i32 otherwise).
type Param struct {
	Name string
	Typ  *Type
}

// Function is a function definition: a name, its parameters, return type,
// and an ordered list of basic blocks, entry first.
type Function struct {
	Name    string
	Params  []Param
	Ret     *Type
	Blocks  []*Block
	builder *builder
}

// ---------------------
// ----- Functions -----
// ---------------------

// NewFunction creates an empty function and resets the per-function
// temporary-name counter, matching the lifecycle note that temp names are
// per-function and reset at function entry.
func NewFunction(name string, params []Param, ret *Type) *Function {
	return &Function{Name: name, Params: params, Ret: ret, builder: &builder{}}
}

// Entry creates and returns the function's entry block. Must be called
// exactly once, before any other block.
func (f *Function) Entry() *Block {
	f.builder.reset()
	b := newBlock("%entry", f.builder)
	f.Blocks = append(f.Blocks, b)
	return b
}

// NewBlock creates and appends a new, non-entry block under the given
// (already minted) label name.
func (f *Function) NewBlock(name string) *Block {
	b := newBlock(name, f.builder)
	f.Blocks = append(f.Blocks, b)
	return b
}

// Text renders the function's full definition, including its header and
// every block. The entry block's "%entry:" label is printed here, unlike
// in the RISC-V backend's output where the function's own assembly label
// stands in for it.
func (f *Function) Text() string {
	sb := strings.Builder{}
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = fmt.Sprintf("%s: %s", p.Name, p.Typ.String())
	}
	sb.WriteString(fmt.Sprintf("fun %s(%s)", f.Name, strings.Join(parts, ", ")))
	if f.Ret.Kind != Unit {
		sb.WriteString(": " + f.Ret.String())
	}
	sb.WriteString(" {\n")
	for _, blk := range f.Blocks {
		sb.WriteString(blk.Name + ":\n")
		for _, instr := range blk.Instrs {
			sb.WriteString(instr.Text())
		}
	}
	sb.WriteString("}\n")
	return sb.String()
}
