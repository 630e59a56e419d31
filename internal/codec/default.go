package codec

import "math/big"

// DefaultFor returns the placeholder value for a type tag before the user
// has typed anything. It never fails; unrecognised tags yield "".
func DefaultFor(tag string) any {
	t := TypeOf(tag)
	switch t.Kind {
	case KindBool:
		return false
	case KindUint, KindInt:
		return new(big.Int)
	case KindAddress, KindBytes, KindFixedBytes, KindString:
		return ""
	case KindTuple:
		return NewRecord()
	case KindSlice, KindArray:
		return []any{}
	default:
		return ""
	}
}
