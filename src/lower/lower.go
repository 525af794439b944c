// Package lower implements the AST-to-IR pass: symbol binding, constant
// folding, short-circuit control flow, array decay and initializer
// flattening, all built on top of the ir package's builders.
package lower

import (
	"strings"

	"sysyc/src/ast"
	"sysyc/src/ir"
	"sysyc/src/symbol"
)

// ----------------------------
// ----- Functions -----
// ----------------------------

// CompUnit lowers a whole compilation unit into a complete module: the
// library functions are pre-declared into the top scope so that ordinary
// calls to getint/putint/... resolve through the same Env.Lookup path as
// any user-defined function, then every top-level declaration is lowered
// in source order.
func CompUnit(root *ast.Node) *Context {
	ctx := NewContext()
	declareLibraryFuncs(ctx)

	for _, n := range root.Children {
		switch n.Kind {
		case ast.ConstDecl:
			lowerConstDecl(ctx, n, true)
		case ast.VarDecl:
			lowerVarDecl(ctx, n, true)
		case ast.FuncDef:
			lowerFuncDef(ctx, n)
		}
	}
	return ctx
}

func declareLibraryFuncs(ctx *Context) {
	for _, d := range ctx.Module.Decls {
		ident := strings.TrimPrefix(d.Name, "@")
		kind := symbol.FuncVoid
		if d.Ret.Kind != ir.Unit {
			kind = symbol.FuncInt
		}
		ctx.Env.DeclareFunc(ident, kind)
	}
}
