package codec

import (
	"errors"
	"fmt"
	"math/big"
	"reflect"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ErrUnsupportedType is returned when go-ethereum cannot represent a type.
var ErrUnsupportedType = errors.New("unsupported ABI type")

// NewABIType builds the go-ethereum type for p. Unnamed tuple components
// are named argN, the same key Parse stores them under.
func NewABIType(p Param) (abi.Type, error) {
	return abi.NewType(canonicalTag(p.Type), p.InternalType, marshalComponents(p.Components))
}

// canonicalTag expands the uint and int aliases, which go-ethereum rejects.
func canonicalTag(tag string) string {
	for _, alias := range []string{"uint", "int"} {
		if !strings.HasPrefix(tag, alias) {
			continue
		}
		rest := tag[len(alias):]
		if rest == "" || rest[0] == '[' {
			return alias + "256" + rest
		}
	}
	return tag
}

// NewArguments builds go-ethereum arguments for a parameter list.
func NewArguments(params []Param) (abi.Arguments, error) {
	args := make(abi.Arguments, len(params))
	for i, p := range params {
		typ, err := NewABIType(p)
		if err != nil {
			return nil, fmt.Errorf("param %s (%s): %w", p.Key(i), p.Type, err)
		}
		args[i] = abi.Argument{Name: p.Name, Type: typ, Indexed: p.Indexed}
	}
	return args, nil
}

func marshalComponents(cs []Param) []abi.ArgumentMarshaling {
	if len(cs) == 0 {
		return nil
	}
	out := make([]abi.ArgumentMarshaling, len(cs))
	for i, c := range cs {
		out[i] = abi.ArgumentMarshaling{
			Name:         c.Key(i),
			Type:         canonicalTag(c.Type),
			InternalType: c.InternalType,
			Components:   marshalComponents(c.Components),
			Indexed:      c.Indexed,
		}
	}
	return out
}

// ToABI converts a parsed value into the Go value go-ethereum packs for p.
// Unlike Parse it reports values the chain would reject: out-of-range
// integers, malformed hex, wrong lengths.
func ToABI(v any, p Param) (any, error) {
	typ, err := NewABIType(p)
	if err != nil {
		return nil, err
	}
	return toABIValue(v, typ)
}

func toABIValue(v any, t abi.Type) (any, error) {
	switch t.T {
	case abi.BoolTy:
		b, ok := v.(bool)
		if !ok {
			s, _ := v.(string)
			b = s == "true"
		}
		return b, nil

	case abi.UintTy, abi.IntTy:
		n, err := toBig(v)
		if err != nil {
			return nil, err
		}
		if err := checkRange(n, t); err != nil {
			return nil, err
		}
		goType := t.GetType()
		if goType.Kind() == reflect.Pointer {
			return n, nil
		}
		if t.T == abi.UintTy {
			return reflect.ValueOf(n.Uint64()).Convert(goType).Interface(), nil
		}
		return reflect.ValueOf(n.Int64()).Convert(goType).Interface(), nil

	case abi.AddressTy:
		s := fmt.Sprint(v)
		if !common.IsHexAddress(s) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
		}
		return common.HexToAddress(s), nil

	case abi.StringTy:
		s, ok := v.(string)
		if !ok {
			return fmt.Sprint(v), nil
		}
		return s, nil

	case abi.BytesTy:
		return toBytes(v)

	case abi.FixedBytesTy, abi.FunctionTy:
		b, err := toBytes(v)
		if err != nil {
			return nil, err
		}
		size := t.Size
		if t.T == abi.FunctionTy {
			size = 24
		}
		if len(b) != size {
			return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrBytesLength, size, len(b))
		}
		arr := reflect.New(t.GetType()).Elem()
		reflect.Copy(arr, reflect.ValueOf(b))
		return arr.Interface(), nil

	case abi.SliceTy:
		list, ok := v.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: expected a list for %s", ErrNotJSONArray, t)
		}
		out := reflect.MakeSlice(t.GetType(), 0, len(list))
		for i, e := range list {
			ev, err := toABIValue(e, *t.Elem)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out = reflect.Append(out, reflect.ValueOf(ev))
		}
		return out.Interface(), nil

	case abi.ArrayTy:
		list, ok := v.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: expected a list for %s", ErrNotJSONArray, t)
		}
		if len(list) != t.Size {
			return nil, fmt.Errorf("%s expects %d elements, got %d", t, t.Size, len(list))
		}
		arr := reflect.New(t.GetType()).Elem()
		for i, e := range list {
			ev, err := toABIValue(e, *t.Elem)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			arr.Index(i).Set(reflect.ValueOf(ev))
		}
		return arr.Interface(), nil

	case abi.TupleTy:
		rec, ok := v.(*Record)
		if !ok || rec == nil {
			return nil, fmt.Errorf("%w: expected a record for %s", ErrNotJSONObject, t)
		}
		st := reflect.New(t.TupleType).Elem()
		for i, elem := range t.TupleElems {
			key := t.TupleRawNames[i]
			fv, ok := rec.Get(key)
			if !ok {
				fv = DefaultFor(elem.String())
			}
			ev, err := toABIValue(fv, *elem)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", key, err)
			}
			st.Field(i).Set(reflect.ValueOf(ev))
		}
		return st.Interface(), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, t)
}

func toBig(v any) (*big.Int, error) {
	switch x := v.(type) {
	case *big.Int:
		if x == nil {
			return new(big.Int), nil
		}
		return x, nil
	case string:
		s := strings.TrimSpace(x)
		if !integerPattern.MatchString(s) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidInteger, x)
		}
		return parseInteger(s), nil
	}
	if s, ok := nativeInteger(reflect.ValueOf(v)); ok {
		n, _ := new(big.Int).SetString(s, 10)
		return n, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrInvalidInteger, v)
}

func checkRange(n *big.Int, t abi.Type) error {
	if t.T == abi.UintTy {
		if n.Sign() < 0 {
			return fmt.Errorf("%w: %s for %s", ErrNegativeUnsigned, n, t)
		}
		if n.BitLen() > t.Size {
			return fmt.Errorf("%s overflows %s", n, t)
		}
		return nil
	}
	limit := new(big.Int).Lsh(big.NewInt(1), uint(t.Size-1))
	lowest := new(big.Int).Neg(limit)
	if n.Cmp(lowest) < 0 || n.Cmp(limit) >= 0 {
		return fmt.Errorf("%s overflows %s", n, t)
	}
	return nil
}

func toBytes(v any) ([]byte, error) {
	switch x := v.(type) {
	case []byte:
		return x, nil
	case string:
		if x == "" {
			return []byte{}, nil
		}
		b, err := hexutil.Decode(x)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrNotHex, x)
		}
		return b, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrNotHex, v)
}

// FromABI converts a value go-ethereum unpacked for p into a typed value:
// integers as *big.Int, addresses as checksummed hex, bytes as 0x hex,
// tuples as records and arrays as []any. Values of an unexpected shape are
// returned unchanged.
func FromABI(v any, p Param) any {
	if isNilValue(v) {
		return nil
	}
	rv := reflect.ValueOf(v)
	t := TypeOf(p.Type)
	switch t.Kind {
	case KindBool:
		return v
	case KindUint, KindInt:
		if n, ok := v.(*big.Int); ok {
			return new(big.Int).Set(n)
		}
		if s, ok := nativeInteger(rv); ok {
			n, _ := new(big.Int).SetString(s, 10)
			return n
		}
	case KindAddress:
		if a, ok := v.(common.Address); ok {
			return a.Hex()
		}
	case KindBytes:
		if b, ok := v.([]byte); ok {
			return hexutil.Encode(b)
		}
	case KindFixedBytes:
		if rv.Kind() == reflect.Array {
			b := make([]byte, rv.Len())
			reflect.Copy(reflect.ValueOf(b), rv)
			return hexutil.Encode(b)
		}
	case KindString:
		return v
	case KindTuple:
		if rv.Kind() == reflect.Pointer {
			rv = rv.Elem()
		}
		if rv.Kind() == reflect.Struct {
			rec := NewRecord()
			for i, c := range p.Components {
				if i >= rv.NumField() {
					break
				}
				rec.Set(c.Key(i), FromABI(rv.Field(i).Interface(), c))
			}
			return rec
		}
	case KindSlice, KindArray:
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			elem := p.Elem()
			out := make([]any, rv.Len())
			for i := range out {
				out[i] = FromABI(rv.Index(i).Interface(), elem)
			}
			return out
		}
	default:
		return v
	}
	return v
}
