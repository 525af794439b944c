package lower

import (
	"testing"

	"github.com/stretchr/testify/require"

	"sysyc/src/ir"
	"sysyc/src/symbol"
)

func TestLowerLValReadIntConstFoldsWithNoIR(t *testing.T) {
	ctx := NewFuncScopedContext()
	ctx.Env.DeclareIntConst("n", 9)

	op := lowerLValRead(ctx, lval("n"), false)
	lit, ok := op.(ir.IntLit)
	require.True(t, ok)
	require.Equal(t, 9, lit.V)
	require.Empty(t, ctx.Func.Blocks[0].Instrs)
}

func TestLowerLValReadScalarEmitsLoad(t *testing.T) {
	ctx := NewFuncScopedContext()
	sym := ctx.Env.DeclareInt("x")
	slot := ctx.Block.CreateAlloc(sym.Emitted, ir.TypeI32)
	ctx.bindLoc(sym, slot)

	lowerLValRead(ctx, lval("x"), false)
	require.Contains(t, ctx.Func.Text(), "= load @x")
}

func TestLowerLValReadFullyIndexedArrayLoads(t *testing.T) {
	ctx := NewFuncScopedContext()
	sym := ctx.Env.DeclareArray("a", []int{3}, symbol.Array)
	slot := ctx.Block.CreateAlloc(sym.Emitted, ir.ArrayType([]int{3}))
	ctx.bindLoc(sym, slot)

	op := lowerLValRead(ctx, lval("a", num(1)), false)
	require.Contains(t, ctx.Func.Text(), "getelemptr")
	_, isLit := op.(ir.IntLit)
	require.False(t, isLit)
}

func TestLowerLValReadPartiallyIndexedArrayDecaysToPointer(t *testing.T) {
	ctx := NewFuncScopedContext()
	sym := ctx.Env.DeclareArray("a", []int{2, 3}, symbol.Array)
	slot := ctx.Block.CreateAlloc(sym.Emitted, ir.ArrayType([]int{2, 3}))
	ctx.bindLoc(sym, slot)

	lowerLValRead(ctx, lval("a", num(1)), false)
	text := ctx.Func.Text()
	require.Contains(t, text, "getelemptr")
	require.NotContains(t, text, "= load")
}

func TestLowerLValAddrRejectsIntConst(t *testing.T) {
	ctx := NewFuncScopedContext()
	ctx.Env.DeclareIntConst("n", 1)
	require.Panics(t, func() { lowerLValAddr(ctx, lval("n")) })
}

func TestLowerArrayAddrParamFirstIndexUsesGetPtr(t *testing.T) {
	ctx := NewFuncScopedContext()
	sym := ctx.Env.DeclareArray("a", []int{-1, 3}, symbol.Array)
	slot := ctx.Block.CreateAlloc(sym.Emitted, ir.PointerTo(ir.ArrayType([]int{3})))
	ctx.bindLoc(sym, slot)

	lowerLValAddr(ctx, lval("a", num(0), num(1)))
	text := ctx.Func.Text()
	require.Contains(t, text, "getptr")
	require.Contains(t, text, "getelemptr")
}

func TestLowerArrayAddrOutOfRangeIndexCountPanics(t *testing.T) {
	ctx := NewFuncScopedContext()
	sym := ctx.Env.DeclareArray("a", []int{3}, symbol.Array)
	slot := ctx.Block.CreateAlloc(sym.Emitted, ir.ArrayType([]int{3}))
	ctx.bindLoc(sym, slot)

	require.Panics(t, func() { lowerLValAddr(ctx, lval("a", num(0), num(0))) })
}
