package lower

import (
	"testing"

	"github.com/stretchr/testify/require"

	"sysyc/src/symbol"
)

func TestLowerConstDeclScalarHasNoStorage(t *testing.T) {
	ctx := NewContext()
	ctx.Env.OpenScope()
	lowerConstDecl(ctx, constDecl(constDef("n", dimList(), initExp(num(42)))), true)

	sym, ok := ctx.Env.Lookup("n")
	require.True(t, ok)
	require.Equal(t, symbol.IntConst, sym.Kind)
	require.Equal(t, 42, sym.Value)
	require.Empty(t, ctx.Module.Globals)
}

func TestLowerConstDeclArrayStillAllocates(t *testing.T) {
	ctx := NewContext()
	ctx.Env.OpenScope()
	lowerConstDecl(ctx, constDecl(constDef("a", dimList(num(3)),
		initList(initExp(num(1)), initExp(num(2)), initExp(num(3))))), true)

	sym, ok := ctx.Env.Lookup("a")
	require.True(t, ok)
	require.Equal(t, symbol.ArrayConst, sym.Kind)
	require.Len(t, ctx.Module.Globals, 1)
	require.Equal(t, "{1, 2, 3}", ctx.Module.Globals[0].Init)
}

func TestLowerVarDeclGlobalScalarZeroinit(t *testing.T) {
	ctx := NewContext()
	ctx.Env.OpenScope()
	lowerVarDecl(ctx, varDecl(varDef("g", dimList(), nil)), true)

	require.Len(t, ctx.Module.Globals, 1)
	require.Equal(t, "zeroinit", ctx.Module.Globals[0].Init)
}

func TestLowerVarDeclGlobalScalarWithInit(t *testing.T) {
	ctx := NewContext()
	ctx.Env.OpenScope()
	lowerVarDecl(ctx, varDecl(varDef("g", dimList(), initExp(num(7)))), true)

	require.Equal(t, "7", ctx.Module.Globals[0].Init)
}

func TestLowerVarDeclGlobalArraySparseInit(t *testing.T) {
	ctx := NewContext()
	ctx.Env.OpenScope()
	lowerVarDecl(ctx, varDecl(varDef("g", dimList(num(4)),
		initList(initExp(num(1))))), true)

	require.Equal(t, "{1, 0, 0, 0}", ctx.Module.Globals[0].Init)
}

func TestLowerVarDeclGlobalAllZeroUsesZeroinit(t *testing.T) {
	ctx := NewContext()
	ctx.Env.OpenScope()
	lowerVarDecl(ctx, varDecl(varDef("g", dimList(num(2)),
		initList(initExp(num(0)), initExp(num(0))))), true)

	require.Equal(t, "zeroinit", ctx.Module.Globals[0].Init)
}

func TestLowerVarDeclLocalArrayDefaultsToZeroBuffer(t *testing.T) {
	ctx := NewFuncScopedContext()
	lowerVarDecl(ctx, varDecl(varDef("a", dimList(num(2)), nil)), false)

	sym, ok := ctx.Env.Lookup("a")
	require.True(t, ok)
	require.Equal(t, symbol.Array, sym.Kind)
	text := ctx.Func.Text()
	require.Contains(t, text, "= alloc [i32, 2]")
	require.Contains(t, text, "store 0,")
}

func TestLowerNestedBraceInitializerAlignment(t *testing.T) {
	ctx := NewContext()
	ctx.Env.OpenScope()
	// int a[2][2] = {{1}, {2, 3}};
	lowerVarDecl(ctx, varDecl(varDef("a", dimList(num(2), num(2)),
		initList(
			initList(initExp(num(1))),
			initList(initExp(num(2)), initExp(num(3))),
		))), true)

	require.Equal(t, "{{1, 0}, {2, 3}}", ctx.Module.Globals[0].Init)
}

// NewFuncScopedContext returns a Context with an open function and scope,
// ready to lower local declarations/statements into, for tests that need
// function-local (not global) storage.
func NewFuncScopedContext() *Context {
	ctx := NewContext()
	fn := newTestFunc()
	ctx.Module.AddFunction(fn)
	ctx.Func = fn
	ctx.Block = fn.Entry()
	ctx.Alive = true
	ctx.Env.OpenScope()
	return ctx
}
