package lower

import (
	"fmt"

	"sysyc/src/ast"
)

// ----------------------------
// ----- Functions -----
// ----------------------------

// lowerStmt lowers a single statement. Callers (lowerBlockItems, and the
// branch/loop bodies below) are responsible for checking ctx.Alive before
// calling this for a further statement in the same list.
func lowerStmt(ctx *Context, n *ast.Node) {
	switch n.Kind {
	case ast.StmtReturn:
		lowerReturn(ctx, n)
	case ast.StmtAssign:
		lowerAssign(ctx, n)
	case ast.StmtExp:
		if len(n.Children) == 1 {
			lowerExp(ctx, n.Children[0], false)
		}
	case ast.StmtBlock:
		lowerNestedBlock(ctx, n.Children[0])
	case ast.StmtWhile:
		lowerWhile(ctx, n)
	case ast.StmtBreak:
		ctx.Block.CreateJump(ctx.loopEnd())
		ctx.Alive = false
	case ast.StmtContinue:
		ctx.Block.CreateJump(ctx.loopEntry())
		ctx.Alive = false
	case ast.StmtIf:
		lowerIf(ctx, n)
	default:
		panic(fmt.Sprintf("lower: unexpected statement node %s", n.Kind))
	}
}

func lowerReturn(ctx *Context, n *ast.Node) {
	if len(n.Children) == 1 {
		ctx.Block.CreateRet(lowerExp(ctx, n.Children[0], false))
	} else {
		ctx.Block.CreateRet(nil)
	}
	ctx.Alive = false
}

func lowerAssign(ctx *Context, n *ast.Node) {
	addr := lowerLValAddr(ctx, n.Children[0])
	val := lowerExp(ctx, n.Children[1], false)
	ctx.Block.CreateStore(val, addr)
}

// lowerNestedBlock lowers a brace-delimited nested block in its own child
// scope, distinct from a function body's own Block, which shares the
// function's single scope instead.
func lowerNestedBlock(ctx *Context, block *ast.Node) {
	ctx.Env.OpenScope()
	lowerBlockItems(ctx, block.Children)
	ctx.Env.CloseScope()
}

func lowerWhile(ctx *Context, n *ast.Node) {
	condNode := n.Children[0]
	bodyNode := n.Children[1]

	entryLabel := ctx.mintLabel("while_entry")
	bodyLabel := ctx.mintLabel("while_body")
	endLabel := ctx.mintLabel("while_end")

	ctx.Block.CreateJump(entryLabel)
	ctx.Alive = false

	ctx.openBlock(entryLabel)
	cond := lowerExp(ctx, condNode, false)
	ctx.Block.CreateBranch(cond, bodyLabel, endLabel)
	ctx.Alive = false

	ctx.pushLoop(entryLabel, bodyLabel, endLabel)
	ctx.openBlock(bodyLabel)
	lowerStmt(ctx, bodyNode)
	if ctx.Alive {
		ctx.Block.CreateJump(entryLabel)
		ctx.Alive = false
	}
	ctx.popLoop()

	ctx.openBlock(endLabel)
}

func lowerIf(ctx *Context, n *ast.Node) {
	condNode := n.Children[0]
	thenNode := n.Children[1]
	var elseNode *ast.Node
	if len(n.Children) == 3 {
		elseNode = n.Children[2]
	}

	cond := lowerExp(ctx, condNode, false)
	thenLabel := ctx.mintLabel("then")
	endLabel := ctx.mintLabel("end")

	if elseNode == nil {
		ctx.Block.CreateBranch(cond, thenLabel, endLabel)
		ctx.Alive = false

		ctx.openBlock(thenLabel)
		lowerStmt(ctx, thenNode)
		if ctx.Alive {
			ctx.Block.CreateJump(endLabel)
			ctx.Alive = false
		}

		ctx.openBlock(endLabel)
		return
	}

	elseLabel := ctx.mintLabel("else")
	ctx.Block.CreateBranch(cond, thenLabel, elseLabel)
	ctx.Alive = false

	ctx.openBlock(thenLabel)
	lowerStmt(ctx, thenNode)
	if ctx.Alive {
		ctx.Block.CreateJump(endLabel)
		ctx.Alive = false
	}

	ctx.openBlock(elseLabel)
	lowerStmt(ctx, elseNode)
	if ctx.Alive {
		ctx.Block.CreateJump(endLabel)
		ctx.Alive = false
	}

	ctx.openBlock(endLabel)
}
