package lower

import (
	"testing"

	"github.com/stretchr/testify/require"

	"sysyc/src/ast"
	"sysyc/src/ir"
)

func TestEvalFoldsArithmetic(t *testing.T) {
	ctx := NewContext()
	// 1 + 2 * 3 - 4 / 2 == 1 + 6 - 2 == 5
	n := bin("-", bin("+", num(1), bin("*", num(2), num(3))), bin("/", num(4), num(2)))
	require.Equal(t, 5, Eval(ctx, n))
}

func TestEvalFoldsRelationalAndLogical(t *testing.T) {
	ctx := NewContext()
	require.Equal(t, 1, Eval(ctx, bin("<", num(1), num(2))))
	require.Equal(t, 0, Eval(ctx, bin(">=", num(1), num(2))))
	require.Equal(t, 1, Eval(ctx, bin("&&", num(1), num(2))))
	require.Equal(t, 0, Eval(ctx, bin("&&", num(0), num(2))))
	require.Equal(t, 1, Eval(ctx, bin("||", num(0), num(3))))
}

func TestEvalFoldsUnary(t *testing.T) {
	ctx := NewContext()
	require.Equal(t, -5, Eval(ctx, unary("-", num(5))))
	require.Equal(t, 1, Eval(ctx, unary("!", num(0))))
	require.Equal(t, 0, Eval(ctx, unary("!", num(7))))
}

func TestEvalPanicsOnNonConstant(t *testing.T) {
	ctx := NewContext()
	ctx.Env.OpenScope()
	ctx.Env.DeclareInt("x")
	require.Panics(t, func() { Eval(ctx, lval("x")) })
}

func TestEvalPanicsOnCall(t *testing.T) {
	ctx := NewContext()
	require.Panics(t, func() { Eval(ctx, call("f")) })
}

// buildFunc lowers a minimal function body through lowerBlockItems and
// returns its rendered IR text, for tests that want to inspect emitted
// instructions rather than just Eval's folded result.
func buildFunc(t *testing.T, ret ast.TypeKind, items ...*ast.Node) string {
	t.Helper()
	ctx := NewContext()
	retType := ir.TypeUnit
	if ret == ast.Int {
		retType = ir.TypeI32
	}
	fn := ir.NewFunction("@f", nil, retType)
	ctx.Module.AddFunction(fn)
	ctx.Func = fn
	ctx.Block = fn.Entry()
	ctx.Alive = true
	ctx.Env.OpenScope()
	lowerBlockItems(ctx, items)
	if ctx.Alive {
		if retType.Kind == ir.Unit {
			ctx.Block.CreateRet(nil)
		} else {
			ctx.Block.CreateRet(ir.IntLit{V: 0})
		}
	}
	ctx.Env.CloseScope()
	return fn.Text()
}

func TestLowerExpOpportunisticallyFoldsAtRuntime(t *testing.T) {
	text := buildFunc(t, ast.Int, stmtReturn(bin("+", num(1), bin("*", num(2), num(3)))))
	require.Contains(t, text, "ret 7\n")
	require.NotContains(t, text, "= add")
	require.NotContains(t, text, "= mul")
}

func TestLowerExpEmitsRuntimeBinaryWhenNotFoldable(t *testing.T) {
	ctx := NewContext()
	fn := ir.NewFunction("@f", []ir.Param{{Name: "%x", Typ: ir.TypeI32}}, ir.TypeI32)
	ctx.Module.AddFunction(fn)
	ctx.Func = fn
	ctx.Block = fn.Entry()
	ctx.Alive = true
	ctx.Env.OpenScope()
	sym := ctx.Env.DeclareInt("x")
	slot := ctx.Block.CreateAlloc(sym.Emitted, ir.TypeI32)
	ctx.bindLoc(sym, slot)
	ctx.Block.CreateStore(ir.Ref{Name: "%x", Typ: ir.TypeI32}, slot)

	lowerBlockItems(ctx, []*ast.Node{stmtReturn(bin("+", lval("x"), num(1)))})
	ctx.Env.CloseScope()

	require.Contains(t, fn.Text(), "= add")
}
