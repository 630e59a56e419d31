package codec

import (
	"strconv"
	"strings"
)

// Kind is the base category of an ABI type tag.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindBool
	KindUint
	KindInt
	KindAddress
	KindBytes      // dynamic bytes
	KindFixedBytes // bytes1..bytes32
	KindString
	KindTuple
	KindSlice // T[]
	KindArray // T[N]
)

var kindNames = [...]string{
	KindUnknown:    "unknown",
	KindBool:       "bool",
	KindUint:       "uint",
	KindInt:        "int",
	KindAddress:    "address",
	KindBytes:      "bytes",
	KindFixedBytes: "bytesN",
	KindString:     "string",
	KindTuple:      "tuple",
	KindSlice:      "slice",
	KindArray:      "array",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Type is a classified type tag.
//
// Size is the bit width for integers, the byte length for fixed bytes and
// the element count for fixed arrays. Elem is the element tag for arrays.
type Type struct {
	Kind Kind
	Size int
	Elem string
	Tag  string
}

// IsArray reports whether t is a dynamic or fixed-size array.
func (t Type) IsArray() bool { return t.Kind == KindSlice || t.Kind == KindArray }

// IsInteger reports whether t is a signed or unsigned integer.
func (t Type) IsInteger() bool { return t.Kind == KindUint || t.Kind == KindInt }

// TypeOf classifies an ABI type tag. Tags it does not recognise classify as
// KindUnknown rather than failing, so ABIs from newer compilers still load.
func TypeOf(tag string) Type {
	t := Type{Tag: tag}

	if strings.HasSuffix(tag, "]") {
		open := strings.LastIndexByte(tag, '[')
		if open <= 0 {
			return t
		}
		inner := tag[open+1 : len(tag)-1]
		t.Elem = tag[:open]
		if inner == "" {
			t.Kind = KindSlice
			return t
		}
		n, ok := positive(inner)
		if !ok {
			t.Elem = ""
			return t
		}
		t.Kind = KindArray
		t.Size = n
		return t
	}

	switch tag {
	case "bool":
		t.Kind = KindBool
		return t
	case "address":
		t.Kind = KindAddress
		return t
	case "string":
		t.Kind = KindString
		return t
	case "bytes":
		t.Kind = KindBytes
		return t
	case "tuple":
		t.Kind = KindTuple
		return t
	case "uint":
		t.Kind, t.Size = KindUint, 256
		return t
	case "int":
		t.Kind, t.Size = KindInt, 256
		return t
	}

	switch {
	case strings.HasPrefix(tag, "uint"):
		if n, ok := positive(tag[len("uint"):]); ok && n <= 256 && n%8 == 0 {
			t.Kind, t.Size = KindUint, n
		}
	case strings.HasPrefix(tag, "int"):
		if n, ok := positive(tag[len("int"):]); ok && n <= 256 && n%8 == 0 {
			t.Kind, t.Size = KindInt, n
		}
	case strings.HasPrefix(tag, "bytes"):
		if n, ok := positive(tag[len("bytes"):]); ok && n <= 32 {
			t.Kind, t.Size = KindFixedBytes, n
		}
	}
	return t
}

// positive parses a string of one or more decimal digits.
func positive(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
