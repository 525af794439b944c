package riscv

import (
	"fmt"
	"strings"

	"sysyc/src/ir"
	"sysyc/src/util"
)

// ----------------------------
// ----- Functions -----
// ----------------------------

// labelAsm turns an IR label name ("%while_entry_0", "%entry") into a valid
// assembly label (".Lwhile_entry_0").
func labelAsm(name string) string {
	return ".L" + strings.TrimPrefix(name, "%")
}

// symAsm turns an IR global name ("@getint", "@x_0") into a bare assembly
// symbol ("getint", "x_0").
func symAsm(name string) string {
	return strings.TrimPrefix(name, "@")
}

// emitAddImm computes dst = src + imm, falling back to li+add when imm
// overflows the 12-bit signed immediate addi can take directly. Every call
// site adds an sp-relative offset, so the fallback's scratch is t3.
func emitAddImm(wr *util.Writer, dst, src string, imm int) {
	if imm >= minImm && imm <= maxImm {
		wr.Ins2imm("addi", dst, src, imm)
		return
	}
	wr.Write("\tli\t%s, %d\n", t3, imm)
	wr.Ins3("add", dst, src, t3)
}

// emitMulImm computes dst = src * imm. RV32M has no immediate-operand
// multiply, so this always goes through li into t2.
func emitMulImm(wr *util.Writer, dst, src string, imm int) {
	wr.Write("\tli\t%s, %d\n", t2, imm)
	wr.Ins3("mul", dst, src, t2)
}

func emitStoreSpOffset(wr *util.Writer, srcReg string, off int) {
	if off >= minImm && off <= maxImm {
		wr.LoadStore("sw", srcReg, off, sp)
		return
	}
	emitAddImm(wr, t3, sp, off)
	wr.LoadStore("sw", srcReg, 0, t3)
}

func emitLoadSpOffset(wr *util.Writer, dstReg string, off int) {
	if off >= minImm && off <= maxImm {
		wr.LoadStore("lw", dstReg, off, sp)
		return
	}
	emitAddImm(wr, t3, sp, off)
	wr.LoadStore("lw", dstReg, 0, t3)
}

// loadValue materializes the scalar value an operand denotes into destReg:
// a literal, a function parameter (register- or overflow-stack-resident),
// or a previously computed result sitting in its own frame slot.
func loadValue(wr *util.Writer, destReg string, op ir.Operand, fr *frame) {
	switch o := op.(type) {
	case ir.IntLit:
		wr.Write("\tli\t%s, %d\n", destReg, o.V)
	case ir.Ref:
		if src, ok := fr.params[o.Name]; ok {
			if src.reg != "" {
				if destReg != src.reg {
					wr.Ins2("mv", destReg, src.reg)
				}
				return
			}
			emitLoadSpOffset(wr, destReg, fr.size+src.overflow)
			return
		}
		off, ok := fr.slots[o.Name]
		if !ok {
			panic(fmt.Sprintf("riscv: %q has no frame slot", o.Name))
		}
		emitLoadSpOffset(wr, destReg, off)
	default:
		panic(fmt.Sprintf("riscv: unexpected operand %#v", op))
	}
}

// materializePointer computes, into destReg, the address an operand
// denotes when used as a pointer: a global's label address, a local
// alloc's own slot address (the slot's bytes are its pointee, not a
// pointer to it), or -- for anything else -- the already-computed pointer
// value sitting in that operand's own result slot.
func materializePointer(wr *util.Writer, destReg string, op ir.Operand, fr *frame, globals map[string]bool) {
	ref, ok := op.(ir.Ref)
	if !ok {
		panic(fmt.Sprintf("riscv: %#v used as a pointer operand", op))
	}
	if globals[ref.Name] {
		wr.Write("\tla\t%s, %s\n", destReg, symAsm(ref.Name))
		return
	}
	if fr.allocNames[ref.Name] {
		emitAddImm(wr, destReg, sp, fr.slots[ref.Name])
		return
	}
	loadValue(wr, destReg, op, fr)
}

// storeResult stores srcReg into name's own frame slot -- every
// value-producing instruction but AllocInstr keeps its result this way.
func storeResult(wr *util.Writer, srcReg string, name string, fr *frame) {
	off, ok := fr.slots[name]
	if !ok {
		panic(fmt.Sprintf("riscv: %q has no frame slot", name))
	}
	scratch := t0
	if srcReg == t0 {
		scratch = t1
	}
	emitAddImm(wr, scratch, sp, off)
	wr.LoadStore("sw", srcReg, 0, scratch)
}

// emitFunction emits one function's prologue, every block in order (the
// entry block's label is folded into the function's own, per
// ir.Function.Text's doc note), and a single shared epilogue that every
// RetInstr jumps to.
func emitFunction(wr *util.Writer, fn *ir.Function, globals map[string]bool, gen *util.LabelGen, comments bool) {
	name := symAsm(fn.Name)
	fr := planFrame(fn)
	epilogue := ".L" + name + "_epilogue"

	if comments {
		wr.Comment("function %s", name)
	}
	wr.WriteString(fmt.Sprintf(".globl %s\n%s:\n", name, name))
	emitAddImm(wr, sp, sp, -fr.size)
	emitStoreSpOffset(wr, ra, fr.raOffset)

	for _, blk := range fn.Blocks {
		emitBlock(wr, blk, fr, globals, epilogue, gen, comments)
	}

	wr.Label(epilogue)
	emitLoadSpOffset(wr, ra, fr.raOffset)
	emitAddImm(wr, sp, sp, fr.size)
	wr.WriteString("\tret\n")
}

// emitBlock emits every instruction of one block in order.
func emitBlock(wr *util.Writer, blk *ir.Block, fr *frame, globals map[string]bool, epilogue string, gen *util.LabelGen, comments bool) {
	if comments {
		wr.Comment("block %s", blk.Name)
	}
	if blk.Name != "%entry" {
		wr.Label(labelAsm(blk.Name))
	}
	for _, instr := range blk.Instrs {
		emitInstr(wr, instr, fr, globals, epilogue, gen)
	}
}

func emitInstr(wr *util.Writer, instr ir.Instr, fr *frame, globals map[string]bool, epilogue string, gen *util.LabelGen) {
	switch ins := instr.(type) {
	case *ir.AllocInstr:
		// Storage only; no code. Global allocs are handled at module scope.

	case *ir.LoadInstr:
		materializePointer(wr, t0, ins.Src, fr, globals)
		wr.LoadStore("lw", t1, 0, t0)
		ref, _ := ins.Def()
		storeResult(wr, t1, ref.Name, fr)

	case *ir.StoreInstr:
		loadValue(wr, t0, ins.Val, fr)
		materializePointer(wr, t1, ins.Dst, fr, globals)
		wr.LoadStore("sw", t0, 0, t1)

	case *ir.BinaryInstr:
		loadValue(wr, t0, ins.L, fr)
		loadValue(wr, t1, ins.R, fr)
		emitBinaryOp(wr, ins.Op, t0, t0, t1)
		ref, _ := ins.Def()
		storeResult(wr, t0, ref.Name, fr)

	case *ir.BranchInstr:
		emitBranch(wr, ins, fr, globals, gen)

	case *ir.JumpInstr:
		wr.Write("\tj\t%s\n", labelAsm(ins.Target))

	case *ir.RetInstr:
		if ins.Val != nil {
			loadValue(wr, a0, ins.Val, fr)
		}
		wr.Write("\tj\t%s\n", epilogue)

	case *ir.CallInstr:
		emitCall(wr, ins, fr, globals)

	case *ir.GetElemPtrInstr:
		elemSize := ins.Typ.Elem.Size()
		materializePointer(wr, t0, ins.Ptr, fr, globals)
		loadValue(wr, t1, ins.Idx, fr)
		emitMulImm(wr, t1, t1, elemSize)
		wr.Ins3("add", t0, t0, t1)
		ref, _ := ins.Def()
		storeResult(wr, t0, ref.Name, fr)

	case *ir.GetPtrInstr:
		elemSize := ins.Typ.Elem.Size()
		materializePointer(wr, t0, ins.Ptr, fr, globals)
		loadValue(wr, t1, ins.Idx, fr)
		emitMulImm(wr, t1, t1, elemSize)
		wr.Ins3("add", t0, t0, t1)
		ref, _ := ins.Def()
		storeResult(wr, t0, ref.Name, fr)

	default:
		panic(fmt.Sprintf("riscv: unhandled instruction %T", instr))
	}
}

// emitBinaryOp computes dst = op(l, r). Relational operators that RISC-V
// has no single instruction for are built from slt/xor plus seqz/snez.
func emitBinaryOp(wr *util.Writer, op ir.BinaryOp, dst, l, r string) {
	switch op {
	case ir.Add:
		wr.Ins3("add", dst, l, r)
	case ir.Sub:
		wr.Ins3("sub", dst, l, r)
	case ir.Mul:
		wr.Ins3("mul", dst, l, r)
	case ir.Div:
		wr.Ins3("div", dst, l, r)
	case ir.Mod:
		wr.Ins3("rem", dst, l, r)
	case ir.Lt:
		wr.Ins3("slt", dst, l, r)
	case ir.Gt:
		wr.Ins3("slt", dst, r, l)
	case ir.Le:
		wr.Ins3("slt", dst, r, l)
		wr.Ins2imm("xori", dst, dst, 1)
	case ir.Ge:
		wr.Ins3("slt", dst, l, r)
		wr.Ins2imm("xori", dst, dst, 1)
	case ir.Eq:
		wr.Ins3("xor", dst, l, r)
		wr.Ins2("seqz", dst, dst)
	case ir.Ne:
		wr.Ins3("xor", dst, l, r)
		wr.Ins2("snez", dst, dst)
	default:
		panic(fmt.Sprintf("riscv: unknown binary op %q", op))
	}
}

// emitBranch lowers a conditional terminator to a trampoline: the only
// actual conditional instruction (bnez) has a tiny, fixed-size offset to a
// trampoline sitting right after it, which then reaches the true target --
// possibly far away -- through an unconditional j. This sidesteps the
// 12-bit range limit branch instructions have but j does not need to share.
func emitBranch(wr *util.Writer, br *ir.BranchInstr, fr *frame, globals map[string]bool, gen *util.LabelGen) {
	loadValue(wr, t0, br.Cond, fr)
	trampoline := gen.New(util.LabelBranchTrampoline)
	wr.Write("\tbnez\t%s, %s\n", t0, trampoline)
	wr.Write("\tj\t%s\n", labelAsm(br.Else))
	wr.Label(trampoline)
	wr.Write("\tj\t%s\n", labelAsm(br.Then))
}

// emitCall places up to 8 arguments in a0-a7 and spills the rest to this
// function's outgoing overflow area before the call, per the standard
// RISC-V integer calling convention.
func emitCall(wr *util.Writer, call *ir.CallInstr, fr *frame, globals map[string]bool) {
	for i, arg := range call.Args {
		if i < len(argRegs) {
			loadValue(wr, argRegs[i], arg, fr)
			continue
		}
		loadValue(wr, t0, arg, fr)
		emitStoreSpOffset(wr, t0, fr.overflow+wordSize*(i-len(argRegs)))
	}
	wr.Write("\tcall\t%s\n", symAsm(call.Func))
	if call.Dst != "" {
		storeResult(wr, a0, call.Dst, fr)
	}
}
