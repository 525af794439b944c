package lower

import (
	"sysyc/src/ast"
	"sysyc/src/ir"
)

// newTestFunc returns a bare void function with no parameters, for tests
// that need an open Func/Block but don't care about its signature.
func newTestFunc() *ir.Function {
	return ir.NewFunction("@f", nil, ir.TypeUnit)
}

// Small AST-builder helpers used only by this package's tests, standing in
// for the out-of-scope parser: every test builds the exact tree shape the
// parser would have produced for the source it's named after.

func num(v int) *ast.Node { return ast.New(ast.ExpNumber, v) }

func lval(ident string, idx ...*ast.Node) *ast.Node {
	return ast.New(ast.LVal, ident, idx...)
}

func bin(op string, l, r *ast.Node) *ast.Node {
	return ast.New(ast.ExpBinary, op, l, r)
}

func unary(op string, operand *ast.Node) *ast.Node {
	return ast.New(ast.ExpUnary, op, operand)
}

func call(ident string, args ...*ast.Node) *ast.Node {
	return ast.New(ast.ExpCall, ident, args...)
}

func dimList(dims ...*ast.Node) *ast.Node {
	return ast.New(ast.DimList, nil, dims...)
}

func initExp(e *ast.Node) *ast.Node {
	return ast.New(ast.InitValExp, nil, e)
}

func initList(items ...*ast.Node) *ast.Node {
	return ast.New(ast.InitValList, nil, items...)
}

func constDecl(defs ...*ast.Node) *ast.Node {
	return ast.New(ast.ConstDecl, nil, defs...)
}

func constDef(ident string, dims *ast.Node, init *ast.Node) *ast.Node {
	return ast.New(ast.ConstDef, ident, dims, init)
}

func varDecl(defs ...*ast.Node) *ast.Node {
	return ast.New(ast.VarDecl, nil, defs...)
}

// varDef builds a VarDef node. Pass nil for init to omit the initializer.
func varDef(ident string, dims *ast.Node, init *ast.Node) *ast.Node {
	if init == nil {
		return ast.New(ast.VarDef, ident, dims)
	}
	return ast.New(ast.VarDef, ident, dims, init)
}

func stmtReturn(v *ast.Node) *ast.Node {
	if v == nil {
		return ast.New(ast.StmtReturn, nil)
	}
	return ast.New(ast.StmtReturn, nil, v)
}

func stmtAssign(target, val *ast.Node) *ast.Node {
	return ast.New(ast.StmtAssign, nil, target, val)
}

func stmtExp(e *ast.Node) *ast.Node {
	if e == nil {
		return ast.New(ast.StmtExp, nil)
	}
	return ast.New(ast.StmtExp, nil, e)
}

func block(items ...*ast.Node) *ast.Node {
	return ast.New(ast.Block, nil, items...)
}

func stmtBlock(b *ast.Node) *ast.Node {
	return ast.New(ast.StmtBlock, nil, b)
}

func stmtWhile(cond, body *ast.Node) *ast.Node {
	return ast.New(ast.StmtWhile, nil, cond, body)
}

func stmtBreak() *ast.Node    { return ast.New(ast.StmtBreak, nil) }
func stmtContinue() *ast.Node { return ast.New(ast.StmtContinue, nil) }

func stmtIf(cond, then, els *ast.Node) *ast.Node {
	if els == nil {
		return ast.New(ast.StmtIf, nil, cond, then)
	}
	return ast.New(ast.StmtIf, nil, cond, then, els)
}

func funcFParamList(params ...*ast.Node) *ast.Node {
	return ast.New(ast.FuncFParamList, nil, params...)
}

func funcFParam(ident string, isArray bool, dims *ast.Node) *ast.Node {
	data := ast.FuncFParamData{Ident: ident, IsArray: isArray}
	if !isArray {
		return ast.New(ast.FuncFParam, data)
	}
	return ast.New(ast.FuncFParam, data, dims)
}

func funcDef(ident string, ret ast.TypeKind, params, body *ast.Node) *ast.Node {
	return ast.New(ast.FuncDef, ast.FuncDefData{Ident: ident, Ret: ret}, params, body)
}

func compUnit(items ...*ast.Node) *ast.Node {
	return ast.New(ast.CompUnit, nil, items...)
}
