package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Validation errors. Validate wraps these so callers can use errors.Is.
var (
	ErrInvalidInteger   = errors.New("must be a valid integer")
	ErrInvalidBool      = errors.New(`must be "true" or "false"`)
	ErrNegativeUnsigned = errors.New("unsigned integers cannot be negative")
	ErrInvalidAddress   = errors.New("invalid address")
	ErrNotHex           = errors.New("must be hex-encoded (0x...)")
	ErrBytesLength      = errors.New("wrong byte length")
	ErrInvalidJSON      = errors.New("invalid JSON")
	ErrNotJSONArray     = errors.New("must be a JSON array")
	ErrNotJSONObject    = errors.New("must be a JSON object")
	ErrEnumOutOfRange   = errors.New("enum value out of range")
)

// Validate checks raw editor text for p. Empty text is always valid: the
// field simply has not been filled in yet.
func Validate(raw string, p Param) error {
	if raw == "" {
		return nil
	}
	t := TypeOf(p.Type)
	switch t.Kind {
	case KindUint, KindInt:
		return validateInteger(raw, t)
	case KindAddress:
		if !IsAddress(raw) {
			return ErrInvalidAddress
		}
		return nil
	case KindBytes, KindFixedBytes:
		return validateBytes(raw, t)
	case KindSlice, KindArray:
		return validateJSONArray(raw)
	case KindTuple:
		return validateJSONObject(raw)
	case KindBool:
		if raw != "true" && raw != "false" {
			return ErrInvalidBool
		}
		return nil
	case KindString:
		return nil
	default:
		return nil
	}
}

// ValidateEnum checks that raw selects one of the mapped enum options. A
// parameter without mapped options accepts any integer.
func ValidateEnum(raw string, p Param, enums EnumMapping) error {
	if err := Validate(raw, p); err != nil || raw == "" {
		return err
	}
	opts := enums.Options(p)
	if len(opts) == 0 {
		return nil
	}
	n := parseInteger(raw)
	if n.Sign() < 0 || !n.IsInt64() || n.Int64() >= int64(len(opts)) {
		return fmt.Errorf("%w: %s has %d options", ErrEnumOutOfRange, raw, len(opts))
	}
	return nil
}

// IsAddress reports whether s is a 0x-prefixed 20-byte hex address. Mixed
// case input must carry a valid EIP-55 checksum.
func IsAddress(s string) bool {
	if !strings.HasPrefix(s, "0x") || !common.IsHexAddress(s) {
		return false
	}
	body := s[2:]
	if body == strings.ToLower(body) || body == strings.ToUpper(body) {
		return true
	}
	return common.HexToAddress(s).Hex() == s
}

func validateInteger(raw string, t Type) error {
	if !integerPattern.MatchString(raw) {
		return ErrInvalidInteger
	}
	if t.Kind == KindUint && strings.HasPrefix(raw, "-") {
		return ErrNegativeUnsigned
	}
	return nil
}

func validateBytes(raw string, t Type) error {
	b, err := hexutil.Decode(raw)
	if err != nil {
		return ErrNotHex
	}
	if t.Kind == KindFixedBytes && len(b) != t.Size {
		return fmt.Errorf("%w: expected %d bytes, got %d", ErrBytesLength, t.Size, len(b))
	}
	return nil
}

func validateJSONArray(raw string) error {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return ErrInvalidJSON
	}
	if _, ok := v.([]any); !ok {
		return ErrNotJSONArray
	}
	return nil
}

func validateJSONObject(raw string) error {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return ErrInvalidJSON
	}
	if _, ok := v.(map[string]any); !ok {
		return ErrNotJSONObject
	}
	return nil
}
