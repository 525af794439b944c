package lower

import (
	"sysyc/src/ast"
	"sysyc/src/ir"
	"sysyc/src/symbol"
)

// ----------------------------
// ----- Functions -----
// ----------------------------

// lowerFuncDef lowers one function definition: its signature, its
// parameters' stack slots, and its body. The function owns exactly one
// OpenScope/CloseScope pair spanning both its parameters and its body --
// the body's own Block is lowered in place, through lowerBlockItems, without
// pushing a second scope of its own.
func lowerFuncDef(ctx *Context, n *ast.Node) {
	data := n.Data.(ast.FuncDefData)
	paramList := n.Children[0]
	body := n.Children[1]

	retSymKind := symbol.FuncVoid
	retType := ir.TypeUnit
	if data.Ret == ast.Int {
		retSymKind = symbol.FuncInt
		retType = ir.TypeI32
	}
	// Declared in the already-open top-level scope, ahead of the body, so
	// recursive and forward calls resolve normally.
	ctx.Env.DeclareFunc(data.Ident, retSymKind)

	type paramInfo struct {
		ident   string
		isArray bool
		dims    []int // full dims, leading -1 included, for array params
	}
	infos := make([]paramInfo, len(paramList.Children))
	irParams := make([]ir.Param, len(paramList.Children))
	for i, p := range paramList.Children {
		pd := p.Data.(ast.FuncFParamData)
		if pd.IsArray {
			rest := evalDims(ctx, p.Children[0])
			infos[i] = paramInfo{ident: pd.Ident, isArray: true, dims: append([]int{-1}, rest...)}
			irParams[i] = ir.Param{Name: "%" + pd.Ident, Typ: ir.PointerTo(ir.ArrayType(rest))}
		} else {
			infos[i] = paramInfo{ident: pd.Ident}
			irParams[i] = ir.Param{Name: "%" + pd.Ident, Typ: ir.TypeI32}
		}
	}

	fn := ir.NewFunction("@"+data.Ident, irParams, retType)
	ctx.Module.AddFunction(fn)
	ctx.Env.Names.Reset()
	ctx.Func = fn
	ctx.Block = fn.Entry()
	ctx.Alive = true

	ctx.Env.OpenScope()
	for i, info := range infos {
		if info.isArray {
			sym := ctx.Env.DeclareArray(info.ident, info.dims, symbol.Array)
			slot := ctx.Block.CreateAlloc(sym.Emitted, irParams[i].Typ)
			ctx.bindLoc(sym, slot)
			ctx.Block.CreateStore(ir.Ref{Name: irParams[i].Name, Typ: irParams[i].Typ}, slot)
		} else {
			sym := ctx.Env.DeclareInt(info.ident)
			slot := ctx.Block.CreateAlloc(sym.Emitted, ir.TypeI32)
			ctx.bindLoc(sym, slot)
			ctx.Block.CreateStore(ir.Ref{Name: irParams[i].Name, Typ: ir.TypeI32}, slot)
		}
	}

	lowerBlockItems(ctx, body.Children)

	if ctx.Alive {
		if retType.Kind == ir.Unit {
			ctx.Block.CreateRet(nil)
		} else {
			ctx.Block.CreateRet(ir.IntLit{V: 0})
		}
		ctx.Alive = false
	}

	ctx.Env.CloseScope()
	ctx.Func = nil
	ctx.Block = nil
}

// lowerBlockItems lowers a Block's items in order -- ConstDecl/VarDecl bind
// into the current (innermost) scope, everything else is a statement.
// Lowering stops silently, emitting nothing further, the moment Alive goes
// false: this is the sole mechanism for suppressing dead code.
func lowerBlockItems(ctx *Context, items []*ast.Node) {
	for _, item := range items {
		if !ctx.Alive {
			return
		}
		switch item.Kind {
		case ast.ConstDecl:
			lowerConstDecl(ctx, item, false)
		case ast.VarDecl:
			lowerVarDecl(ctx, item, false)
		default:
			lowerStmt(ctx, item)
		}
	}
}
