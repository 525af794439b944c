package symbol

import (
	"fmt"

	"github.com/dolthub/swiss"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// scope is a single lexical table mapping source identifiers to symbols.
type scope struct {
	table *swiss.Map[string, *Symbol]
}

// Env is the lexically scoped symbol environment: a stack of scope tables
// plus the name minter shared across the whole compilation unit.
type Env struct {
	scopes []*scope
	Names  *NameMinter
}

// ---------------------
// ----- Functions -----
// ---------------------

// NewEnv returns an environment with no open scopes.
func NewEnv() *Env {
	return &Env{Names: NewNameMinter()}
}

// OpenScope pushes a fresh, empty table.
func (e *Env) OpenScope() {
	e.scopes = append(e.scopes, &scope{table: swiss.NewMap[string, *Symbol](8)})
}

// CloseScope pops the innermost table. It panics if no scope is open --
// every lowering path that calls OpenScope is responsible for a matching
// CloseScope on every exit.
func (e *Env) CloseScope() {
	if len(e.scopes) == 0 {
		panic("symbol: CloseScope with no open scope")
	}
	e.scopes = e.scopes[:len(e.scopes)-1]
}

// Depth returns the number of currently open scopes.
func (e *Env) Depth() int {
	return len(e.scopes)
}

// top returns the innermost scope, panicking if none is open.
func (e *Env) top() *scope {
	if len(e.scopes) == 0 {
		panic("symbol: no open scope")
	}
	return e.scopes[len(e.scopes)-1]
}

// bind inserts sym into the innermost scope under its source identifier.
func (e *Env) bind(sym *Symbol) *Symbol {
	e.top().table.Put(sym.Ident, sym)
	return sym
}

// DeclareInt binds ident to a fresh runtime integer variable.
func (e *Env) DeclareInt(ident string) *Symbol {
	return e.bind(&Symbol{Ident: ident, Emitted: e.Names.Var(ident), Kind: Int})
}

// DeclareIntConst binds ident to a compile-time known integer constant.
func (e *Env) DeclareIntConst(ident string, value int) *Symbol {
	return e.bind(&Symbol{Ident: ident, Kind: IntConst, Value: value})
}

// DeclareArray binds ident to an array or array-constant symbol with the
// given dimension list (dims[0] == -1 marks an array parameter).
func (e *Env) DeclareArray(ident string, dims []int, kind Kind) *Symbol {
	if !kind.IsArray() {
		panic(fmt.Sprintf("symbol: DeclareArray called with non-array kind %s", kind))
	}
	return e.bind(&Symbol{Ident: ident, Emitted: e.Names.Var(ident), Kind: kind, Dims: dims})
}

// DeclareFunc binds ident to a function symbol. Functions are declared in
// the single top-level scope and keep their bare "@ident" name so that
// library-function calls match their fixed declared signatures exactly.
func (e *Env) DeclareFunc(ident string, ret Kind) *Symbol {
	if ret != FuncInt && ret != FuncVoid {
		panic(fmt.Sprintf("symbol: DeclareFunc called with non-function kind %s", ret))
	}
	return e.bind(&Symbol{Ident: ident, Emitted: "@" + ident, Kind: ret})
}

// Lookup walks scopes from innermost to outermost and returns the first
// match for ident. ok is false if no scope binds the identifier.
func (e *Env) Lookup(ident string) (sym *Symbol, ok bool) {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if v, found := e.scopes[i].table.Get(ident); found {
			return v, true
		}
	}
	return nil, false
}

// MustLookup is Lookup but panics (an Assertion-class failure: an
// undeclared identifier reaching lowering is a bug upstream, since the
// grammar is assumed to enforce declaration-before-use) instead of
// reporting ok=false.
func (e *Env) MustLookup(ident string) *Symbol {
	sym, ok := e.Lookup(ident)
	if !ok {
		panic(fmt.Sprintf("symbol: undeclared identifier %q", ident))
	}
	return sym
}
