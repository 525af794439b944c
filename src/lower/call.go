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

// lowerCall lowers a function call. A void callee's CreateCall yields no
// usable result; lowerCall returns ir.Operand(nil) in that case -- callers
// that discard the expression statement's value never look at it, and the
// grammar is assumed to reject using a void call's result as a value.
func lowerCall(ctx *Context, n *ast.Node) ir.Operand {
	ident := n.Data.(string)
	sym := ctx.Env.MustLookup(ident)
	if !sym.Kind.IsFunc() {
		panic(fmt.Sprintf("lower: %q is not callable (kind %s)", ident, sym.Kind))
	}

	args := make([]ir.Operand, len(n.Children))
	for i, a := range n.Children {
		args[i] = lowerExp(ctx, a, false)
	}

	ret := ir.TypeUnit
	if sym.Kind == symbol.FuncInt {
		ret = ir.TypeI32
	}
	result, ok := ctx.Block.CreateCall(sym.Emitted, args, ret)
	if !ok {
		return nil
	}
	return result
}
