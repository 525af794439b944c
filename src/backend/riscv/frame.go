package riscv

import "sysyc/src/ir"

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// paramSource describes where an incoming parameter's value is found on
// function entry: one of the first 8 argument registers, or a word on the
// caller's outgoing overflow area, read at a positive offset from the
// callee's own (post-prologue) stack pointer.
type paramSource struct {
	reg      string // "" if this parameter arrived on the stack.
	overflow int     // byte offset above the frame, valid when reg == "".
}

// frame is one function's stack layout: every SSA-defined value and every
// alloc gets a slot, sized to 4 bytes except for array allocs, which get
// their full byte size; an outgoing overflow area sized to the widest call
// made from this function; and a fixed word for the saved return address.
type frame struct {
	slots      map[string]int
	allocNames map[string]bool // names defined by an AllocInstr -- the slot itself IS their address.
	params     map[string]paramSource
	size       int
	overflow   int // byte offset of this function's own outgoing overflow area.
	raOffset   int
}

// ---------------------
// ----- Functions -----
// ---------------------

// align16 rounds n up to the next multiple of 16, RISC-V's required stack
// alignment.
func align16(n int) int {
	if rem := n % stackAlign; rem != 0 {
		n += stackAlign - rem
	}
	return n
}

// planFrame computes fn's stack layout in two passes over its
// instructions: the outgoing-overflow area (A) sits at the bottom of the
// frame, at offset 0 from sp, so that a caller's argument writes and a
// callee's incoming-parameter reads agree on the same absolute address;
// every SSA/alloc slot (S) starts right above it, per the frame layout;
// the saved return address takes the top word of the 16-byte-aligned frame.
func planFrame(fn *ir.Function) *frame {
	maxOutgoing := 0
	for _, blk := range fn.Blocks {
		for _, instr := range blk.Instrs {
			if c, ok := instr.(*ir.CallInstr); ok && len(c.Args) > 8 {
				if n := len(c.Args) - 8; n > maxOutgoing {
					maxOutgoing = n
				}
			}
		}
	}

	overflowBase := 0
	offset := overflowBase + maxOutgoing*wordSize

	slots := make(map[string]int, 16)
	allocNames := make(map[string]bool, 8)
	for _, blk := range fn.Blocks {
		for _, instr := range blk.Instrs {
			if a, ok := instr.(*ir.AllocInstr); ok {
				size := a.Elem.Size()
				if size < wordSize {
					size = wordSize
				}
				slots[a.Name] = offset
				allocNames[a.Name] = true
				offset += size
				continue
			}
			if ref, ok := instr.Def(); ok {
				slots[ref.Name] = offset
				offset += wordSize
			}
		}
	}

	size := align16(offset + wordSize)
	raOffset := size - wordSize

	params := make(map[string]paramSource, len(fn.Params))
	for i, p := range fn.Params {
		if i < len(argRegs) {
			params[p.Name] = paramSource{reg: argRegs[i]}
		} else {
			params[p.Name] = paramSource{overflow: wordSize * (i - len(argRegs))}
		}
	}

	return &frame{
		slots:      slots,
		allocNames: allocNames,
		params:     params,
		size:       size,
		overflow:   overflowBase,
		raOffset:   raOffset,
	}
}
