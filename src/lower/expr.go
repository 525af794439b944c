package lower

import (
	"fmt"

	"sysyc/src/ast"
	"sysyc/src/ir"
)

// ----------------------------
// ----- Functions -----
// ----------------------------

// Eval evaluates n as a compile-time constant, panicking (an
// Assertion-class failure) if any part of it is not foldable -- an
// undeclared identifier, a non-constant LVal, or a function call. Used for
// array dimensions, const initializers, and global initializers.
func Eval(ctx *Context, n *ast.Node) int {
	op := lowerExp(ctx, n, true)
	lit, ok := op.(ir.IntLit)
	if !ok {
		panic("lower: expected a compile-time constant expression")
	}
	return lit.V
}

// lowerExp lowers expression n to an operand. In constOnly mode no IR is
// ever emitted; every sub-expression must fold to a literal or lowering
// panics. In ordinary mode, unary and arithmetic/relational binary
// expressions still opportunistically fold to a literal when every operand
// does (scenario: "return 1 + 2 * 3" folds to "ret 7" with no arithmetic
// instructions emitted at all), falling back to runtime IR only when some
// operand is not foldable. && and || are not folded in ordinary mode: they
// always lower through their staging slot and branches.
//
// This is the single entry point mentioned in the "unify the lower/eval
// duality" design note: Eval above is just lowerExp with constOnly=true,
// asserting the result came back as a literal.
func lowerExp(ctx *Context, n *ast.Node, constOnly bool) ir.Operand {
	switch n.Kind {
	case ast.ExpNumber:
		return ir.IntLit{V: n.Data.(int)}

	case ast.LVal:
		return lowerLValRead(ctx, n, constOnly)

	case ast.ExpUnary:
		return lowerUnary(ctx, n, constOnly)

	case ast.ExpBinary:
		return lowerBinary(ctx, n, constOnly)

	case ast.ExpCall:
		if constOnly {
			panic(fmt.Sprintf("lower: function call %q is not a compile-time constant", n.Data.(string)))
		}
		return lowerCall(ctx, n)

	default:
		panic(fmt.Sprintf("lower: unexpected expression node %s", n.Kind))
	}
}

func lowerUnary(ctx *Context, n *ast.Node, constOnly bool) ir.Operand {
	op := n.Data.(string)
	v := lowerExp(ctx, n.Children[0], constOnly)

	if lit, ok := v.(ir.IntLit); ok {
		return ir.IntLit{V: evalUnary(op, lit.V)}
	}
	if constOnly {
		panic("lower: non-constant operand in constant unary expression")
	}

	switch op {
	case "+":
		return v
	case "-":
		return ctx.Block.CreateBinary(ir.Sub, ir.IntLit{V: 0}, v)
	case "!":
		r := ctx.Block.CreateBinary(ir.Eq, v, ir.IntLit{V: 0})
		return r
	default:
		panic(fmt.Sprintf("lower: unknown unary operator %q", op))
	}
}

func evalUnary(op string, v int) int {
	switch op {
	case "+":
		return v
	case "-":
		return -v
	case "!":
		if v == 0 {
			return 1
		}
		return 0
	default:
		panic(fmt.Sprintf("lower: unknown unary operator %q", op))
	}
}

func lowerBinary(ctx *Context, n *ast.Node, constOnly bool) ir.Operand {
	op := n.Data.(string)
	lhsNode, rhsNode := n.Children[0], n.Children[1]

	if op == "&&" || op == "||" {
		return lowerShortCircuit(ctx, op, lhsNode, rhsNode, constOnly)
	}

	l := lowerExp(ctx, lhsNode, constOnly)
	r := lowerExp(ctx, rhsNode, constOnly)

	litL, okL := l.(ir.IntLit)
	litR, okR := r.(ir.IntLit)
	if okL && okR {
		return ir.IntLit{V: evalBinary(op, litL.V, litR.V)}
	}
	if constOnly {
		panic("lower: non-constant operand in constant binary expression")
	}

	return ctx.Block.CreateBinary(irOp(op), l, r)
}

// irOp maps a source operator spelling to the IR's binary-op name.
func irOp(op string) ir.BinaryOp {
	switch op {
	case "+":
		return ir.Add
	case "-":
		return ir.Sub
	case "*":
		return ir.Mul
	case "/":
		return ir.Div
	case "%":
		return ir.Mod
	case "<":
		return ir.Lt
	case ">":
		return ir.Gt
	case "<=":
		return ir.Le
	case ">=":
		return ir.Ge
	case "==":
		return ir.Eq
	case "!=":
		return ir.Ne
	default:
		panic(fmt.Sprintf("lower: unknown binary operator %q", op))
	}
}

// evalBinary evaluates op over integer literals using standard C-style
// integer semantics: / and % are signed truncated division.
func evalBinary(op string, l, r int) int {
	switch op {
	case "+":
		return l + r
	case "-":
		return l - r
	case "*":
		return l * r
	case "/":
		return l / r
	case "%":
		return l % r
	case "<":
		return boolInt(l < r)
	case ">":
		return boolInt(l > r)
	case "<=":
		return boolInt(l <= r)
	case ">=":
		return boolInt(l >= r)
	case "==":
		return boolInt(l == r)
	case "!=":
		return boolInt(l != r)
	default:
		panic(fmt.Sprintf("lower: unknown binary operator %q", op))
	}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// lowerShortCircuit lowers && and || via an in-memory staging slot. && uses
// default value 0 and branches to "then" (where the RHS is evaluated) when
// the LHS is truthy; || is symmetric with default value 1 and inverted
// branch polarity -- it branches straight to "end" when the LHS is already
// truthy, evaluating the RHS only when it was not.
func lowerShortCircuit(ctx *Context, op string, lhsNode, rhsNode *ast.Node, constOnly bool) ir.Operand {
	if constOnly {
		l := Eval(ctx, lhsNode)
		if op == "&&" {
			if l == 0 {
				return ir.IntLit{V: 0}
			}
			return ir.IntLit{V: boolInt(Eval(ctx, rhsNode) != 0)}
		}
		if l != 0 {
			return ir.IntLit{V: 1}
		}
		return ir.IntLit{V: boolInt(Eval(ctx, rhsNode) != 0)}
	}

	var tag string
	var defaultVal int
	if op == "&&" {
		tag, defaultVal = "and_rhs", 0
	} else {
		tag, defaultVal = "or_rhs", 1
	}

	slot := ctx.Block.CreateAlloc(ctx.Env.Names.Var(tag), ir.TypeI32)
	ctx.Block.CreateStore(ir.IntLit{V: defaultVal}, slot)

	l := lowerExp(ctx, lhsNode, false)
	rhsLabel := ctx.mintLabel(tag)
	endLabel := ctx.mintLabel(tag + "_end")
	if op == "&&" {
		ctx.Block.CreateBranch(l, rhsLabel, endLabel)
	} else {
		ctx.Block.CreateBranch(l, endLabel, rhsLabel)
	}
	ctx.Alive = false

	ctx.openBlock(rhsLabel)
	r := lowerExp(ctx, rhsNode, false)
	norm := ctx.Block.CreateBinary(ir.Ne, r, ir.IntLit{V: 0})
	ctx.Block.CreateStore(norm, slot)
	ctx.Block.CreateJump(endLabel)
	ctx.Alive = false

	ctx.openBlock(endLabel)
	return ctx.Block.CreateLoad(slot, ir.TypeI32)
}
