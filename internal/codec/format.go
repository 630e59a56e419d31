package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// DefaultGroupSeparator separates digit groups in formatted integers.
const DefaultGroupSeparator = ","

// Formatter renders call results for display.
type Formatter struct {
	// GroupSeparator is inserted every three integer digits. Empty means
	// DefaultGroupSeparator.
	GroupSeparator string
}

var defaultFormatter Formatter

// Format renders v with the default formatter.
func Format(v any) string { return defaultFormatter.Format(v) }

// Format renders a call result as display text:
//
//   - nil (including nil pointers) is "null"
//   - integers are decimal with digit grouping
//   - booleans are "true" / "false"
//   - records, slices and maps are indented JSON, integers as JSON strings
//   - anything else is its own string form
//
// Grouped integers are for reading only and do not parse back.
func (f Formatter) Format(v any) string {
	if isNilValue(v) {
		return "null"
	}
	sep := f.GroupSeparator
	if sep == "" {
		sep = DefaultGroupSeparator
	}

	switch x := v.(type) {
	case *big.Int:
		return groupDigits(x.String(), sep)
	case big.Int:
		return groupDigits(x.String(), sep)
	case *hexutil.Big:
		return groupDigits(x.ToInt().String(), sep)
	case json.Number:
		if n, ok := jsonInteger(x); ok {
			return groupDigits(n, sep)
		}
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	case string:
		return x
	case []byte:
		return hexutil.Encode(x)
	case *Record:
		return indentJSON(x)
	case fmt.Stringer:
		return x.String()
	}

	if s, ok := nativeInteger(reflect.ValueOf(v)); ok {
		return groupDigits(s, sep)
	}
	if isStructured(v) {
		return indentJSON(v)
	}
	return fmt.Sprint(v)
}

// EncodeJSON renders v as compact, precision-safe JSON: the text form a
// tuple or array editor holds.
func EncodeJSON(v any) (string, error) {
	b, err := marshalNoEscape(jsonSafe(v))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func indentJSON(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(jsonSafe(v)); err != nil {
		return fmt.Sprint(v)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// groupDigits inserts sep between every group of three digits.
func groupDigits(s, sep string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}
	var sb strings.Builder
	sb.WriteString(sign)
	head := len(s) % 3
	if head == 0 {
		head = 3
	}
	sb.WriteString(s[:head])
	for i := head; i < len(s); i += 3 {
		sb.WriteString(sep)
		sb.WriteString(s[i : i+3])
	}
	return sb.String()
}

func isNilValue(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

func nativeInteger(rv reflect.Value) (string, bool) {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), true
	}
	return "", false
}

// jsonInteger returns the decimal text of n when it holds a whole number.
func jsonInteger(n json.Number) (string, bool) {
	i, ok := new(big.Int).SetString(n.String(), 10)
	if !ok {
		return "", false
	}
	return i.String(), true
}

func isStructured(v any) bool {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Struct:
		return true
	case reflect.Pointer:
		return reflect.ValueOf(v).Elem().Kind() == reflect.Struct
	}
	return false
}

// jsonSafe rewrites v into a tree encoding/json renders without losing
// integer precision: integers become strings, byte sequences become 0x hex
// and foreign structs become records in field order.
func jsonSafe(v any) any {
	if isNilValue(v) {
		return nil
	}
	switch x := v.(type) {
	case *Record:
		return x
	case *big.Int:
		return x.String()
	case big.Int:
		return x.String()
	case *hexutil.Big:
		return x.ToInt().String()
	case json.Number:
		if n, ok := jsonInteger(x); ok {
			return n
		}
		return x
	case string, bool:
		return x
	case []byte:
		return hexutil.Encode(x)
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = jsonSafe(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = jsonSafe(e)
		}
		return out
	case json.Marshaler:
		return x
	case fmt.Stringer:
		return x.String()
	}

	rv := reflect.ValueOf(v)
	if s, ok := nativeInteger(rv); ok {
		return s
	}
	switch rv.Kind() {
	case reflect.Pointer:
		return jsonSafe(rv.Elem().Interface())
	case reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			b := make([]byte, rv.Len())
			reflect.Copy(reflect.ValueOf(b), rv)
			return hexutil.Encode(b)
		}
		return jsonSafeList(rv)
	case reflect.Slice:
		return jsonSafeList(rv)
	case reflect.Map:
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = jsonSafe(iter.Value().Interface())
		}
		return out
	case reflect.Struct:
		rec := NewRecord()
		rt := rv.Type()
		for i := 0; i < rt.NumField(); i++ {
			if !rt.Field(i).IsExported() {
				continue
			}
			rec.Set(rt.Field(i).Name, jsonSafe(rv.Field(i).Interface()))
		}
		return rec
	}
	return v
}

func jsonSafeList(rv reflect.Value) []any {
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = jsonSafe(rv.Index(i).Interface())
	}
	return out
}
