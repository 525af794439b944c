package lower

import (
	"fmt"

	"sysyc/src/ast"
)

// ----------------------------
// ----- Functions -----
// ----------------------------

// widths computes the row-major suffix products w[j] = dims[j] * ... *
// dims[n-1], so w[0] is the target's total element count.
func widths(dims []int) []int {
	n := len(dims)
	w := make([]int, n)
	acc := 1
	for j := n - 1; j >= 0; j-- {
		acc *= dims[j]
		w[j] = acc
	}
	return w
}

func product(dims []int) int {
	if len(dims) == 0 {
		return 1
	}
	return widths(dims)[0]
}

// unravel converts a flat row-major index into per-dimension coordinates.
func unravel(idx int, dims []int) []int {
	w := widths(dims)
	coords := make([]int, len(dims))
	for j, dim := range dims {
		stride := 1
		if j+1 < len(w) {
			stride = w[j+1]
		}
		coords[j] = (idx / stride) % dim
	}
	return coords
}

// buildInitBuffer implements the partial/nested brace array-initializer
// algorithm: given a target of dims and the sibling initializers at this
// brace level (InitValExp leaves or InitValList sub-braces), it returns a
// flat row-major buffer of length product(dims), with unfilled positions
// left nil (meaning an implicit zero).
//
// Brace alignment rule: a sub-brace at cursor i targets the outermost
// remaining row (dims[1:]) when i == 0; otherwise the largest sub-shape
// dims[j:] such that i is a multiple of w[j], scanned from the
// second-outermost dimension down to the innermost (a brace always covers
// at least one whole innermost row, never a single element -- if no such j
// exists, the initializer is malformed).
func buildInitBuffer(dims []int, siblings []*ast.Node) []*ast.Node {
	total := product(dims)
	buf := make([]*ast.Node, total)
	w := widths(dims)
	i := 0

	for _, sib := range siblings {
		if i >= total {
			break
		}
		switch sib.Kind {
		case ast.InitValExp:
			buf[i] = sib.Children[0]
			i++
		case ast.InitValList:
			var j int
			if i == 0 {
				j = 1
			} else {
				j = -1
				for cand := 1; cand < len(dims); cand++ {
					if i%w[cand] == 0 {
						j = cand
						break
					}
				}
				if j == -1 {
					panic(fmt.Sprintf("lower: array initializer brace does not align to any outer dimension at offset %d", i))
				}
			}
			sub := buildInitBuffer(dims[j:], sib.Children)
			copy(buf[i:i+len(sub)], sub)
			i += len(sub)
		default:
			panic(fmt.Sprintf("lower: unexpected initializer node %s", sib.Kind))
		}
	}
	return buf
}
