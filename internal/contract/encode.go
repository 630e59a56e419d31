package contract

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"

	"github.com/Mohsinsiddi/abi-test/internal/codec"
)

// ErrEmptyResult is returned when a call that declares outputs gets no data
// back, usually because the address holds no contract.
var ErrEmptyResult = errors.New("call returned no data (is the address a contract on this chain?)")

// InputError reports an input value that cannot be encoded.
type InputError struct {
	Param string
	Err   error
}

func (e *InputError) Error() string { return fmt.Sprintf("input %s: %v", e.Param, e.Err) }

func (e *InputError) Unwrap() error { return e.Err }

// ParseInputs parses raw editor text for every input of fn. Inputs are keyed
// by name, or argN when unnamed; missing keys parse as "".
func ParseInputs(fn ABIEntry, raw map[string]string) []any {
	out := make([]any, len(fn.Inputs))
	for i, p := range fn.Inputs {
		out[i] = codec.Parse(raw[p.Key(i)], p)
	}
	return out
}

// ValidateInputs checks the raw text of every input of fn, including enum
// range when enums maps the input. The first bad input is returned as an
// *InputError. Parsing is lenient, so text has to pass here before it is
// encoded.
func ValidateInputs(fn ABIEntry, raw map[string]string, enums codec.EnumMapping) error {
	for i, p := range fn.Inputs {
		key := p.Key(i)
		if err := codec.ValidateEnum(raw[key], p, enums); err != nil {
			return &InputError{Param: key, Err: err}
		}
	}
	return nil
}

// Encode validates raw editor text and builds calldata for fn: selector
// followed by the ABI-encoded arguments. enums may be nil.
func Encode(fn ABIEntry, raw map[string]string, enums codec.EnumMapping) ([]byte, error) {
	if err := ValidateInputs(fn, raw, enums); err != nil {
		return nil, err
	}
	return EncodeValues(fn, ParseInputs(fn, raw))
}

// EncodeValues builds calldata for fn from already parsed values.
func EncodeValues(fn ABIEntry, values []any) ([]byte, error) {
	if len(values) != len(fn.Inputs) {
		return nil, fmt.Errorf("%s takes %d arguments, got %d", fn.Name, len(fn.Inputs), len(values))
	}
	args, err := codec.NewArguments(fn.Inputs)
	if err != nil {
		return nil, fmt.Errorf("building arguments for %s: %w", fn.Name, err)
	}
	packed := make([]any, len(values))
	for i, p := range fn.Inputs {
		v, err := codec.ToABI(values[i], p)
		if err != nil {
			return nil, &InputError{Param: p.Key(i), Err: err}
		}
		packed[i] = v
	}
	data, err := args.Pack(packed...)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", fn.Name, err)
	}
	sel := Selector(fn)
	return append(sel[:], data...), nil
}

// Result is one decoded output of a call.
type Result struct {
	Name  string
	Type  string
	Value any
	Text  string
}

// MarshalJSON writes the value in its precision-safe JSON form.
func (r Result) MarshalJSON() ([]byte, error) {
	value, err := codec.EncodeJSON(r.Value)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(struct {
		Name  string          `json:"name"`
		Type  string          `json:"type"`
		Value json.RawMessage `json:"value"`
		Text  string          `json:"text"`
	}{r.Name, r.Type, json.RawMessage(value), r.Text}); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// DecodeOutputs unpacks return data for fn and formats each value with f.
func DecodeOutputs(fn ABIEntry, data []byte, f codec.Formatter) ([]Result, error) {
	if len(fn.Outputs) == 0 {
		return nil, nil
	}
	if len(data) == 0 {
		return nil, ErrEmptyResult
	}
	args, err := codec.NewArguments(fn.Outputs)
	if err != nil {
		return nil, fmt.Errorf("building outputs for %s: %w", fn.Name, err)
	}
	values, err := args.Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s result: %w", fn.Name, err)
	}
	out := make([]Result, len(fn.Outputs))
	for i, p := range fn.Outputs {
		var v any
		if i < len(values) {
			v = codec.FromABI(values[i], p)
		}
		out[i] = Result{
			Name:  p.Name,
			Type:  DisplayType(p),
			Value: v,
			Text:  f.Format(v),
		}
	}
	return out, nil
}

// DecodeRevert turns revert data into a readable reason: Error(string),
// Panic(uint256), or a custom error declared in the ABI. ok is false when
// the data matches none of them.
func (a ABI) DecodeRevert(data []byte) (reason string, ok bool) {
	if len(data) < 4 {
		return "", false
	}
	if msg, err := abi.UnpackRevert(data); err == nil {
		return msg, true
	}
	for _, e := range a {
		if e.Type != "error" {
			continue
		}
		sel := Selector(e)
		if !bytes.Equal(sel[:], data[:4]) {
			continue
		}
		args, err := codec.NewArguments(e.Inputs)
		if err != nil {
			return e.Name + "()", true
		}
		values, err := args.Unpack(data[4:])
		if err != nil {
			return e.Name + "()", true
		}
		parts := make([]string, len(e.Inputs))
		for i, p := range e.Inputs {
			text := codec.Format(codec.FromABI(values[i], p))
			if p.Name != "" {
				text = p.Name + ": " + text
			}
			parts[i] = text
		}
		return e.Name + "(" + strings.Join(parts, ", ") + ")", true
	}
	return "", false
}
