package lower

import (
	"strconv"

	"sysyc/src/ast"
	"sysyc/src/ir"
	"sysyc/src/symbol"
)

// ----------------------------
// ----- Functions -----
// ----------------------------

// lowerConstDecl lowers every binding in a ConstDecl. global selects
// whether each symbol is given module-scope or function-local storage.
func lowerConstDecl(ctx *Context, n *ast.Node, global bool) {
	for _, def := range n.Children {
		lowerConstDef(ctx, def, global)
	}
}

// lowerConstDef binds one compile-time constant. Scalars carry no storage
// at all (INT_CONST); arrays still need storage, since a runtime index
// into an all-constant array is never itself foldable -- only the values
// used to populate that storage are required to be constant.
func lowerConstDef(ctx *Context, n *ast.Node, global bool) {
	ident := n.Data.(string)
	dimList := n.Children[0]
	initNode := n.Children[1]

	dims := evalDims(ctx, dimList)
	if len(dims) == 0 {
		v := Eval(ctx, initNode.Children[0])
		ctx.Env.DeclareIntConst(ident, v)
		return
	}

	sym := ctx.Env.DeclareArray(ident, dims, symbol.ArrayConst)
	buf := buildInitBuffer(dims, initSiblings(initNode))
	allocArray(ctx, sym, dims, buf, global, true)
}

// lowerVarDecl lowers every binding in a VarDecl.
func lowerVarDecl(ctx *Context, n *ast.Node, global bool) {
	for _, def := range n.Children {
		lowerVarDef(ctx, def, global)
	}
}

// lowerVarDef binds one ordinary (mutable) variable. A global's initializer
// must itself fold to a compile-time constant -- an added restriction this
// source language's original did not need to state explicitly, since a
// global by construction has no enclosing function to supply a runtime
// value at. A local's initializer may be any expression.
func lowerVarDef(ctx *Context, n *ast.Node, global bool) {
	ident := n.Data.(string)
	dimList := n.Children[0]
	var initNode *ast.Node
	if len(n.Children) == 2 {
		initNode = n.Children[1]
	}

	dims := evalDims(ctx, dimList)
	if len(dims) == 0 {
		lowerScalarVar(ctx, ident, initNode, global)
		return
	}

	sym := ctx.Env.DeclareArray(ident, dims, symbol.Array)
	var buf []*ast.Node
	if initNode != nil {
		buf = buildInitBuffer(dims, initSiblings(initNode))
	} else {
		buf = make([]*ast.Node, product(dims))
	}
	allocArray(ctx, sym, dims, buf, global, false)
}

func lowerScalarVar(ctx *Context, ident string, initNode *ast.Node, global bool) {
	sym := ctx.Env.DeclareInt(ident)
	if global {
		init := "zeroinit"
		if initNode != nil {
			init = strconv.Itoa(Eval(ctx, initNode.Children[0]))
		}
		g := &ir.AllocInstr{Name: sym.Emitted, Elem: ir.TypeI32, Global: true, Init: init}
		ctx.Module.AddGlobal(g)
		ref, _ := g.Def()
		ctx.bindLoc(sym, ref)
		return
	}

	slot := ctx.Block.CreateAlloc(sym.Emitted, ir.TypeI32)
	ctx.bindLoc(sym, slot)
	if initNode != nil {
		v := lowerExp(ctx, initNode.Children[0], false)
		ctx.Block.CreateStore(v, slot)
	}
}

// allocArray emits storage for an array symbol (global or local) and its
// initializer, from a flattened, row-major, zero-padded buffer of *ast.Node
// leaves (nil entries are implicit zeros). constOnly additionally requires
// every populated entry to fold (ARRAY_CONST bindings, which are
// constant-valued regardless of scope).
func allocArray(ctx *Context, sym *symbol.Symbol, dims []int, buf []*ast.Node, global, constOnly bool) {
	typ := ir.ArrayType(dims)

	if global {
		strs := make([]string, len(buf))
		for i, e := range buf {
			if e == nil {
				strs[i] = "0"
				continue
			}
			strs[i] = strconv.Itoa(Eval(ctx, e))
		}
		init := "zeroinit"
		if anyNonZero(strs) {
			init = ir.InitList(strs, dims)
		}
		g := &ir.AllocInstr{Name: sym.Emitted, Elem: typ, Global: true, Init: init}
		ctx.Module.AddGlobal(g)
		ref, _ := g.Def()
		ctx.bindLoc(sym, ref)
		return
	}

	slot := ctx.Block.CreateAlloc(sym.Emitted, typ)
	ctx.bindLoc(sym, slot)
	for i, e := range buf {
		var val ir.Operand
		if e == nil {
			val = ir.IntLit{V: 0}
		} else if constOnly {
			val = ir.IntLit{V: Eval(ctx, e)}
		} else {
			val = lowerExp(ctx, e, false)
		}
		coords := unravel(i, dims)
		cur := ir.Operand(slot)
		for _, c := range coords {
			cur = ctx.Block.CreateGetElemPtr(cur, ir.IntLit{V: c})
		}
		ctx.Block.CreateStore(val, cur)
	}
}

func anyNonZero(strs []string) bool {
	for _, s := range strs {
		if s != "0" {
			return true
		}
	}
	return false
}

// evalDims folds a DimList's dimension expressions to compile-time
// constants; an empty DimList (a plain scalar declaration) yields an empty
// slice.
func evalDims(ctx *Context, dimList *ast.Node) []int {
	exps := dimList.Dims()
	dims := make([]int, len(exps))
	for i, e := range exps {
		dims[i] = Eval(ctx, e)
	}
	return dims
}

// initSiblings returns the top-level sibling list of an initializer node,
// whether it is a single leaf expression (a scalar target's initializer) or
// a brace-nested InitValList.
func initSiblings(n *ast.Node) []*ast.Node {
	if n.Kind == ast.InitValList {
		return n.Children
	}
	return []*ast.Node{n}
}
