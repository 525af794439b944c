package lower

import (
	"testing"

	"github.com/stretchr/testify/require"

	"sysyc/src/ir"
)

func TestContextLocPanicsOnUnboundSymbol(t *testing.T) {
	ctx := NewFuncScopedContext()
	sym := ctx.Env.DeclareInt("x")

	require.Panics(t, func() { ctx.loc(sym) })
}

func TestContextBindLocThenLocRoundTrips(t *testing.T) {
	ctx := NewFuncScopedContext()
	sym := ctx.Env.DeclareInt("x")
	slot := ctx.Block.CreateAlloc(sym.Emitted, ir.TypeI32)

	ctx.bindLoc(sym, slot)
	require.Equal(t, ir.Operand(slot), ctx.loc(sym))
}

func TestContextLoopEndPanicsOutsideLoop(t *testing.T) {
	ctx := NewFuncScopedContext()
	require.Panics(t, func() { ctx.loopEnd() })
}

func TestContextLoopEntryPanicsOutsideLoop(t *testing.T) {
	ctx := NewFuncScopedContext()
	require.Panics(t, func() { ctx.loopEntry() })
}

func TestContextPushPopLoopResolvesLabels(t *testing.T) {
	ctx := NewFuncScopedContext()
	ctx.pushLoop("%entry_0", "%body_0", "%end_0")

	require.Equal(t, "%entry_0", ctx.loopEntry())
	require.Equal(t, "%end_0", ctx.loopEnd())

	ctx.popLoop()
	require.Panics(t, func() { ctx.loopEntry() })
}

func TestContextMintLabelDoesNotOpenBlock(t *testing.T) {
	ctx := NewFuncScopedContext()
	before := len(ctx.Func.Blocks)

	name := ctx.mintLabel("then")
	require.NotEmpty(t, name)
	require.Len(t, ctx.Func.Blocks, before)
}

func TestContextLabelOpensAndSwitchesCurrentBlock(t *testing.T) {
	ctx := NewFuncScopedContext()
	before := len(ctx.Func.Blocks)
	ctx.Alive = false

	b := ctx.label("then")
	require.Len(t, ctx.Func.Blocks, before+1)
	require.Same(t, b, ctx.Block)
	require.True(t, ctx.Alive)
}
