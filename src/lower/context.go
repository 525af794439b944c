// Package lower walks the AST and emits IR through the ir package's
// builders, threading a single Context object instead of touching any
// package-level mutable state.
//
// Grounded in original_source/AST.cpp's lowering, re-architected per the
// "reachability flag as shared state" design note: the context carries the
// IR module/function/block under construction, the symbol environment, the
// loop-label stack, and the alive flag that original_source kept as
// process-wide globals (ks/st/bc/wst).
package lower

import (
	"fmt"

	"sysyc/src/ir"
	"sysyc/src/symbol"
	"sysyc/src/util"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// loopLabels is the entry/body/end label triple pushed around a while
// statement, used to resolve break/continue.
type loopLabels struct {
	entry, body, end string
}

// Context threads every piece of mutable lowering state through the
// traversal. No lowering function may reach outside of its Context.
type Context struct {
	Module *ir.Module
	Env    *symbol.Env

	Func  *ir.Function
	Block *ir.Block

	// Alive is the reachability flag: true from the most recent label
	// emission until the next terminator. Statement-list lowering checks
	// this before lowering each further statement and stops silently
	// once it goes false -- this is the only mechanism that suppresses
	// dead-code emission; there is no post-pass cleanup.
	Alive bool

	loops *util.Stack[loopLabels]

	// locs maps a declared symbol to the IR operand that holds its
	// address (for INT/ARRAY/ARRAY_CONST symbols) -- the alloc or global
	// this symbol was bound to. INT_CONST symbols never appear here: they
	// have no storage and are resolved from Symbol.Value alone.
	locs map[*symbol.Symbol]ir.Operand
}

// ---------------------
// ----- Functions -----
// ---------------------

// NewContext returns a Context over a fresh module and a fresh top-level
// symbol scope.
func NewContext() *Context {
	env := symbol.NewEnv()
	env.OpenScope() // the single top-level scope holding every function.
	return &Context{
		Module: ir.NewModule(),
		Env:    env,
		loops:  util.NewStack[loopLabels](),
		locs:   make(map[*symbol.Symbol]ir.Operand, 32),
	}
}

// bindLoc records the IR operand holding sym's address.
func (c *Context) bindLoc(sym *symbol.Symbol, op ir.Operand) {
	c.locs[sym] = op
}

// loc returns the IR operand holding sym's address. Panics if sym was
// never bound -- every INT/ARRAY symbol is bound at the point it is
// declared and allocated, in the same lowering step.
func (c *Context) loc(sym *symbol.Symbol) ir.Operand {
	op, ok := c.locs[sym]
	if !ok {
		panic(fmt.Sprintf("lower: symbol %q has no bound storage location", sym.Ident))
	}
	return op
}

// pushLoop pushes a loop's label triple.
func (c *Context) pushLoop(entry, body, end string) {
	c.loops.Push(loopLabels{entry: entry, body: body, end: end})
}

// popLoop pops the innermost loop's label triple.
func (c *Context) popLoop() {
	c.loops.Pop()
}

// loopEnd returns the innermost loop's end label, for break. Panics if no
// loop is open -- the grammar is assumed to reject break outside a loop.
func (c *Context) loopEnd() string {
	l, ok := c.loops.Peek()
	if !ok {
		panic("lower: break outside of loop")
	}
	return l.end
}

// loopEntry returns the innermost loop's entry label, for continue.
func (c *Context) loopEntry() string {
	l, ok := c.loops.Peek()
	if !ok {
		panic("lower: continue outside of loop")
	}
	return l.entry
}

// mintLabel mints a fresh label name for tag without opening a block --
// used when a branch target must be known before that block exists.
func (c *Context) mintLabel(tag string) string {
	return c.Env.Names.Label(tag)
}

// openBlock starts a new block under the given, already-minted name,
// making it the current block and resetting Alive to true -- every fresh
// label resets reachability, per the lifecycle rule.
func (c *Context) openBlock(name string) *ir.Block {
	b := c.Func.NewBlock(name)
	c.Block = b
	c.Alive = true
	return b
}

// label mints a fresh label for tag and immediately opens it as the
// current block.
func (c *Context) label(tag string) *ir.Block {
	return c.openBlock(c.mintLabel(tag))
}
