package ir

import "strings"

// InitList renders a flat, already-stringified, row-major buffer of
// element values as a nested brace initializer following dims exactly --
// no elision. Callers must have pre-padded the buffer with "0" for any
// implicit zero elements; this helper performs no padding itself.
//
// dims = [d0, d1, ..., dn-1]; len(buffer) must equal the product of dims.
func InitList(buffer []string, dims []int) string {
	if len(dims) == 0 {
		if len(buffer) != 1 {
			panic("ir: InitList scalar target must have exactly one element")
		}
		return buffer[0]
	}
	return initListRec(buffer, dims)
}

func initListRec(buffer []string, dims []int) string {
	if len(dims) == 1 {
		return "{" + strings.Join(buffer, ", ") + "}"
	}
	rowLen := 1
	for _, d := range dims[1:] {
		rowLen *= d
	}
	parts := make([]string, dims[0])
	for i := 0; i < dims[0]; i++ {
		parts[i] = initListRec(buffer[i*rowLen:(i+1)*rowLen], dims[1:])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// ArrayType renders dims as the right-nested array-type syntax, e.g.
// dims = [4,3,2] -> "[[[i32, 2], 3], 4]".
func ArrayType(dims []int) *Type {
	t := TypeI32
	for i := len(dims) - 1; i >= 0; i-- {
		t = ArrayOf(t, dims[i])
	}
	return t
}
