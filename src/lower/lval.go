package lower

import (
	"fmt"

	"sysyc/src/ast"
	"sysyc/src/ir"
	"sysyc/src/symbol"
)

// ----------------------------
// ----- Functions -----
// ----------------------------

// lowerLValRead lowers an LVal in rvalue mode. INT_CONST returns its
// literal value directly with no IR emitted, in both constant and ordinary
// contexts -- it is the only LVal shape Eval ever accepts, per the "LVal
// eval is defined only when the referenced symbol is INT_CONST" rule: even
// indexing into a fully constant-indexed ARRAY_CONST is not itself
// foldable and requires a runtime load.
func lowerLValRead(ctx *Context, n *ast.Node, constOnly bool) ir.Operand {
	ident := n.Data.(string)
	sym := ctx.Env.MustLookup(ident)

	if sym.Kind == symbol.IntConst {
		return ir.IntLit{V: sym.Value}
	}
	if constOnly {
		panic(fmt.Sprintf("lower: %q is not a compile-time constant", ident))
	}

	switch {
	case sym.Kind == symbol.Int:
		return ctx.Block.CreateLoad(ctx.loc(sym), ir.TypeI32)

	case sym.Kind.IsArray():
		addr := lowerArrayAddr(ctx, sym, n.Children)
		if len(n.Children) == len(sym.Dims) {
			// Fully indexed: scalar rvalue, load it.
			return ctx.Block.CreateLoad(addr, ir.TypeI32)
		}
		// Partially indexed: the decayed pointer itself is the rvalue
		// (e.g. passing a sub-array as a function argument).
		return addr

	default:
		panic(fmt.Sprintf("lower: %q is not a readable value (kind %s)", ident, sym.Kind))
	}
}

// lowerLValAddr lowers an LVal in address mode: the returned operand is a
// pointer suitable for store, or for further indexing. Used for assignment
// targets, which are always array-or-scalar, never INT_CONST (the grammar
// rejects assigning into a constant).
func lowerLValAddr(ctx *Context, n *ast.Node) ir.Operand {
	ident := n.Data.(string)
	sym := ctx.Env.MustLookup(ident)

	switch {
	case sym.Kind == symbol.Int:
		return ctx.loc(sym)
	case sym.Kind.IsArray():
		return lowerArrayAddr(ctx, sym, n.Children)
	default:
		panic(fmt.Sprintf("lower: %q is not an assignable location (kind %s)", ident, sym.Kind))
	}
}

// lowerArrayAddr implements the LVal address computation with array decay:
// array-parameter symbols hold a pointer in memory and use getptr for
// their first index (no unwrapping: the pointee is the decayed element, a
// scalar or a whole row); ordinary array symbols use getelemptr
// throughout, since their storage is itself array-typed. Partial indexing
// (fewer index expressions than declared dimensions) emits one extra
// "getelemptr _, 0" to decay the remainder to a pointer-to-first-element,
// except for an array parameter used with no index at all, whose loaded
// pointer is returned as is.
func lowerArrayAddr(ctx *Context, sym *symbol.Symbol, indexNodes []*ast.Node) ir.Operand {
	dims := sym.Dims
	k := len(indexNodes)
	if k > len(dims) {
		panic(fmt.Sprintf("lower: %q indexed with %d indices but only has %d dimensions", sym.Ident, k, len(dims)))
	}

	var cur ir.Operand
	start := 0
	if sym.IsArrayParam() {
		pointeeType := ir.ArrayType(dims[1:])
		slot := ctx.loc(sym)
		p := ctx.Block.CreateLoad(slot, ir.PointerTo(pointeeType))
		if k == 0 {
			return p
		}
		idx0 := lowerExp(ctx, indexNodes[0], false)
		cur = ctx.Block.CreateGetPtr(p, idx0)
		start = 1
	} else {
		cur = ctx.loc(sym)
	}

	for i := start; i < k; i++ {
		idx := lowerExp(ctx, indexNodes[i], false)
		cur = ctx.Block.CreateGetElemPtr(cur, idx)
	}

	if k < len(dims) {
		cur = ctx.Block.CreateGetElemPtr(cur, ir.IntLit{V: 0})
	}
	return cur
}
