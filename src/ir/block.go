package ir

import "fmt"

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Block is a single basic block: a label and an ordered instruction list.
//
// Block itself enforces nothing about reachability or single-terminator
// shape -- per the writer's "dumb buffer" contract, those invariants are
// the lowering context's responsibility (see the lower package's alive
// flag). Block only refuses a second terminator on the same block, since
// that would silently corrupt the instruction list's one-terminator
// invariant with no caller left to blame.
type Block struct {
	Name    string
	Instrs  []Instr
	sealed  bool
	builder *builder
}

// newBlock creates a named block.
func newBlock(name string, b *builder) *Block {
	return &Block{Name: name, builder: b}
}

// Terminated reports whether a terminator has already been appended.
func (b *Block) Terminated() bool {
	return b.sealed
}

// append adds instr to the block, panicking if the block was already
// sealed by a terminator.
func (b *Block) append(instr Instr, seal bool) {
	if b.sealed {
		panic(fmt.Sprintf("ir: append to block %q after terminator", b.Name))
	}
	b.Instrs = append(b.Instrs, instr)
	if seal {
		b.sealed = true
	}
}

// builder mints unique SSA temporary names for the function currently
// being built. The block never mints variable/label names itself --
// those come from the symbol environment, per the name-minting contract.
type builder struct {
	seq int
}

func (b *builder) temp() string {
	n := b.seq
	b.seq++
	return fmt.Sprintf("%%%d", n)
}

// reset restarts the per-function temporary counter. Called at every
// function entry by Function.Entry.
func (b *builder) reset() {
	b.seq = 0
}

// ---------------------
// ----- Functions -----
// ---------------------

// CreateAlloc appends a local alloc of type elem and returns a reference to
// the allocated slot under its (already-minted) emitted name.
func (b *Block) CreateAlloc(name string, elem *Type) Ref {
	a := &AllocInstr{Name: name, Elem: elem}
	b.append(a, false)
	ref, _ := a.Def()
	return ref
}

// CreateLoad appends a load of src (the pointee type must be elem) into a
// fresh temporary and returns a reference to it.
func (b *Block) CreateLoad(src Operand, elem *Type) Ref {
	l := &LoadInstr{Dst: b.builder.temp(), Src: src, Typ: elem}
	b.append(l, false)
	ref, _ := l.Def()
	return ref
}

// CreateStore appends a store of val into the location dst points to.
func (b *Block) CreateStore(val, dst Operand) {
	b.append(&StoreInstr{Val: val, Dst: dst}, false)
}

// CreateBinary appends a binary op into a fresh temporary and returns a
// reference to it.
func (b *Block) CreateBinary(op BinaryOp, l, r Operand) Ref {
	instr := &BinaryInstr{Dst: b.builder.temp(), Op: op, L: l, R: r}
	b.append(instr, false)
	ref, _ := instr.Def()
	return ref
}

// CreateBranch appends a conditional terminator.
func (b *Block) CreateBranch(cond Operand, then, els string) {
	b.append(&BranchInstr{Cond: cond, Then: then, Else: els}, true)
}

// CreateJump appends an unconditional terminator.
func (b *Block) CreateJump(target string) {
	b.append(&JumpInstr{Target: target}, true)
}

// CreateRet appends a return terminator. val is nil for a void return.
func (b *Block) CreateRet(val Operand) {
	b.append(&RetInstr{Val: val}, true)
}

// CreateCall appends a call. dst is "" for a void call; ret describes the
// called function's return type.
func (b *Block) CreateCall(fn string, args []Operand, ret *Type) (Ref, bool) {
	dst := ""
	hasResult := ret.Kind != Unit
	if hasResult {
		dst = b.builder.temp()
	}
	instr := &CallInstr{Dst: dst, Func: fn, Args: args, Ret: ret}
	b.append(instr, false)
	return instr.Def()
}

// CreateGetElemPtr appends a getelemptr, which strides by one unwrapped
// array layer: ptr's static type must be a pointer to an array. The
// result's pointee type is computed from ptr itself: the array's element
// type.
func (b *Block) CreateGetElemPtr(ptr, idx Operand) Ref {
	if ptr.Type().Kind != Pointer || !ptr.Type().Elem.IsArray() {
		panic(fmt.Sprintf("ir: getelemptr operand %q is not a pointer to an array", ptr.Text()))
	}
	elem := ptr.Type().Elem.Elem
	instr := &GetElemPtrInstr{Dst: b.builder.temp(), Ptr: ptr, Idx: idx, Typ: PointerTo(elem)}
	b.append(instr, false)
	ref, _ := instr.Def()
	return ref
}

// CreateGetPtr appends a getptr, which strides by the full pointee size
// with no unwrapping: the result keeps ptr's exact static type, whatever
// it is (scalar-elem or array-elem). Used only for the first index of an
// array-parameter decay, where ptr's pointee is already whatever the
// parameter itself decayed to -- a bare element for a one-dimensional
// array parameter, or a whole row for a multi-dimensional one.
func (b *Block) CreateGetPtr(ptr, idx Operand) Ref {
	if ptr.Type().Kind != Pointer {
		panic(fmt.Sprintf("ir: getptr operand %q is not a pointer", ptr.Text()))
	}
	instr := &GetPtrInstr{Dst: b.builder.temp(), Ptr: ptr, Idx: idx, Typ: ptr.Type()}
	b.append(instr, false)
	ref, _ := instr.Def()
	return ref
}
