// Package frontend names the boundary between source text and the AST this
// module lowers: lexing and parsing the source language, and building
// ast.Node trees from the resulting parse, are out of scope for this
// module. Parse exists so main's pipeline has something to call; it does
// not lex or parse anything itself.
package frontend

import (
	"errors"

	"sysyc/src/ast"
)

// ErrNotImplemented is returned by Parse: lexing and parsing the source
// language are out of scope here, by design. A real front end would lex
// and parse src and return the resulting ast.Node tree in root's place.
var ErrNotImplemented = errors.New("frontend: lexing/parsing is out of scope")

// Parse is the interface the rest of the pipeline (main, and every test
// that does not hand-build an *ast.Node tree directly) is written against.
func Parse(src []byte) (*ast.Node, error) {
	return nil, ErrNotImplemented
}
