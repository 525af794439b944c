// RISC-V has a downward growing stack that must stay 16-byte aligned.
//
// This backend does no register allocation: every IR value gets its own
// stack slot (frame.go), and every instruction loads its operands into the
// scratch temporaries t0/t1 immediately before use and stores its result
// back out immediately after, in the spirit of the teacher module's own
// register-file bookkeeping but without keeping any value resident across
// instructions.

package riscv

import (
	"fmt"
	"os"
	"strings"

	"sysyc/src/ir"
	"sysyc/src/util"
)

// ----------------------------
// ----- Constants -----
// ----------------------------

// Integer register aliases, grounded in the teacher module's own riscv.go
// constant block. Fixed discipline, no allocation: t0 holds a result or the
// first operand, t1 the second operand, t2 holds constants/stride (see
// emitMulImm), and t3 is reserved for sp-relative offset-overflow patching
// (see emitAddImm) -- t0/t1 never go dead mid-instruction by being reused
// for that role.
const (
	zero = "zero"
	ra   = "ra"
	sp   = "sp"
	a0   = "a0"
	t0   = "t0"
	t1   = "t1"
	t2   = "t2"
	t3   = "t3"
)

var argRegs = [...]string{"a0", "a1", "a2", "a3", "a4", "a5", "a6", "a7"}

// maxImm/minImm bound the 12-bit signed immediate that addi/lw/sw/slti can
// take directly; outside that range an li+add fallback is required.
const maxImm = 2047
const minImm = -2048

const stackAlign = 16
const wordSize = 4

// ---------------------
// ----- Functions -----
// ---------------------

// Generate lowers a whole module to RISC-V assembly text.
func Generate(m *ir.Module) string {
	wr := util.NewWriter()
	emitGlobals(wr, m)

	globals := make(map[string]bool, len(m.Globals))
	for _, g := range m.Globals {
		globals[g.Name] = true
	}

	// One label generator for the whole module: trampoline labels must be
	// unique across every function's assembly, not just within one.
	gen := util.NewLabelGen()
	// SYSYC_EMIT_ASM_COMMENTS=1 turns on a trace comment above each basic
	// block, read once here rather than per-instruction.
	comments := os.Getenv("SYSYC_EMIT_ASM_COMMENTS") == "1"
	for i, fn := range m.Functions {
		emitFunction(wr, fn, globals, gen, comments)
		if i != len(m.Functions)-1 {
			wr.WriteString("\n")
		}
	}
	return wr.String()
}

// emitGlobals writes the ".data" section holding every global variable.
// Globals carrying no explicit nonzero values are emitted via ".zero N" for
// compactness; everything else falls back to one ".word" per element.
func emitGlobals(wr *util.Writer, m *ir.Module) {
	if len(m.Globals) == 0 {
		return
	}
	wr.WriteString(".data\n")
	for _, g := range m.Globals {
		name := strings.TrimPrefix(g.Name, "@")
		size := g.Elem.Size()
		wr.WriteString(fmt.Sprintf(".globl %s\n%s:\n", name, name))
		if g.Init == "zeroinit" || g.Init == "" {
			wr.WriteString(fmt.Sprintf("  .zero %d\n", size))
			continue
		}
		for _, word := range flattenGlobalInit(g.Init) {
			wr.WriteString(fmt.Sprintf("  .word %s\n", word))
		}
	}
	wr.WriteString(".text\n")
}

// flattenGlobalInit extracts the leaf integer literals out of a nested
// brace initializer string (e.g. "{{1, 2}, {3, 0}}") in row-major order,
// for ".word"-per-element emission. The braces carry no further structural
// meaning once flattened: .data is linear memory.
func flattenGlobalInit(init string) []string {
	var words []string
	var cur strings.Builder
	flush := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			words = append(words, s)
		}
		cur.Reset()
	}
	for _, r := range init {
		switch r {
		case '{', '}':
			flush()
		case ',':
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return words
}
