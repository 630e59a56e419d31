package codec

import (
	"encoding/json"
	"io"
	"math/big"
	"regexp"
	"strings"
)

var integerPattern = regexp.MustCompile(`^-?\d+$`)

// Parse converts raw editor text into the typed value for p.
//
// Scalars take the literal text. Tuples and arrays take JSON. Parse never
// fails: malformed integers become zero, malformed JSON becomes the empty
// structure and missing tuple fields are parsed from "".
func Parse(raw string, p Param) any {
	t := TypeOf(p.Type)
	switch t.Kind {
	case KindTuple, KindSlice, KindArray:
		v, _ := decodeJSON(raw)
		return fromJSON(v, p)
	default:
		return parseScalar(raw, t)
	}
}

func parseScalar(raw string, t Type) any {
	switch t.Kind {
	case KindBool:
		return raw == "true"
	case KindUint, KindInt:
		return parseInteger(raw)
	case KindAddress, KindBytes, KindFixedBytes, KindString:
		return raw
	case KindTuple, KindSlice, KindArray:
		return DefaultFor(t.Tag)
	default:
		return raw
	}
}

func parseInteger(raw string) *big.Int {
	s := strings.TrimSpace(raw)
	if !integerPattern.MatchString(s) {
		return new(big.Int)
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return new(big.Int)
	}
	return n
}

// fromJSON walks a decoded JSON value against p. Containers recurse
// structurally; scalar leaves go through the scalar rules using their text.
func fromJSON(v any, p Param) any {
	t := TypeOf(p.Type)
	switch t.Kind {
	case KindTuple:
		return tupleFromJSON(v, p)
	case KindSlice, KindArray:
		return arrayFromJSON(v, p)
	default:
		s, ok := scalarText(v)
		if !ok {
			return DefaultFor(p.Type)
		}
		return parseScalar(s, t)
	}
}

func tupleFromJSON(v any, p Param) *Record {
	rec := NewRecord()
	switch x := v.(type) {
	case map[string]any:
		for i, c := range p.Components {
			key := c.Key(i)
			if fv, ok := x[key]; ok {
				rec.Set(key, fromJSON(fv, c))
			} else {
				rec.Set(key, Parse("", c))
			}
		}
		return rec
	case []any:
		// Positional form: [a, b] for a tuple (a, b).
		for i, c := range p.Components {
			if i < len(x) {
				rec.Set(c.Key(i), fromJSON(x[i], c))
			} else {
				rec.Set(c.Key(i), Parse("", c))
			}
		}
		return rec
	case string:
		// A nested editor stores its own JSON text as a string leaf.
		if inner, ok := Parse(x, p).(*Record); ok {
			return inner
		}
	}
	for i, c := range p.Components {
		rec.Set(c.Key(i), Parse("", c))
	}
	return rec
}

func arrayFromJSON(v any, p Param) []any {
	switch x := v.(type) {
	case []any:
		elem := p.Elem()
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = fromJSON(e, elem)
		}
		return out
	case string:
		if inner, ok := Parse(x, p).([]any); ok {
			return inner
		}
	}
	return []any{}
}

// scalarText returns the raw-text form of a scalar JSON leaf. ok is false
// for objects and arrays.
func scalarText(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", true
	case string:
		return x, true
	case json.Number:
		return x.String(), true
	case bool:
		if x {
			return "true", true
		}
		return "false", true
	default:
		return "", false
	}
}

// decodeJSON decodes exactly one JSON value, keeping numbers as json.Number.
func decodeJSON(raw string) (any, bool) {
	if strings.TrimSpace(raw) == "" {
		return nil, false
	}
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, false
	}
	return v, true
}
