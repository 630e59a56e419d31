package contract

import (
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"golang.org/x/crypto/sha3"

	"github.com/Mohsinsiddi/abi-test/internal/codec"
)

// Signature returns the canonical signature used for selectors and topics,
// e.g. "swap((address,uint256)[],bool)".
func Signature(e ABIEntry) string {
	return e.Name + "(" + canonicalList(e.Inputs) + ")"
}

func canonicalList(params []codec.Param) string {
	types := make([]string, len(params))
	for i, p := range params {
		types[i] = canonicalType(p)
	}
	return strings.Join(types, ",")
}

// canonicalType expands tuples into their component list and normalises the
// uint/int aliases.
func canonicalType(p codec.Param) string {
	if strings.HasPrefix(p.Type, "tuple") {
		return "(" + canonicalList(p.Components) + ")" + strings.TrimPrefix(p.Type, "tuple")
	}
	for _, alias := range []string{"uint", "int"} {
		if rest, ok := strings.CutPrefix(p.Type, alias); ok && (rest == "" || rest[0] == '[') {
			return alias + "256" + rest
		}
	}
	return p.Type
}

func keccak(s string) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(s))
	return h.Sum(nil)
}

// Selector computes the 4-byte function selector.
func Selector(e ABIEntry) [4]byte {
	var sel [4]byte
	copy(sel[:], keccak(Signature(e)))
	return sel
}

// SelectorHex returns the selector as 0x-prefixed hex.
func SelectorHex(e ABIEntry) string {
	sel := Selector(e)
	return hexutil.Encode(sel[:])
}

// EventTopic returns the topic-0 hash of an event as 0x-prefixed hex.
func EventTopic(e ABIEntry) string {
	return hexutil.Encode(keccak(Signature(e)))
}

// DisplaySignature renders an entry for people: parameter names, struct and
// enum names in place of raw tuple and uint8 types, mutability and outputs.
//
//	placeOrder(Order order, Side side) payable returns (uint256 id)
func DisplaySignature(e ABIEntry) string {
	var sb strings.Builder
	sb.WriteString(e.Name)
	sb.WriteString("(")
	sb.WriteString(displayList(e.Inputs, e.IsEvent()))
	sb.WriteString(")")
	if e.StateMutability != "" && e.StateMutability != "nonpayable" && e.IsFunction() {
		sb.WriteString(" ")
		sb.WriteString(e.StateMutability)
	}
	if len(e.Outputs) > 0 {
		sb.WriteString(" returns (")
		sb.WriteString(displayList(e.Outputs, false))
		sb.WriteString(")")
	}
	return sb.String()
}

func displayList(params []codec.Param, event bool) string {
	parts := make([]string, len(params))
	for i, p := range params {
		s := DisplayType(p)
		if event && p.Indexed {
			s += " indexed"
		}
		if p.Name != "" {
			s += " " + p.Name
		}
		parts[i] = s
	}
	return strings.Join(parts, ", ")
}

// DisplayType returns the human type of a parameter: the struct name for
// struct tuples, the enum name for enums, otherwise the type tag.
func DisplayType(p codec.Param) string {
	if name, ok := codec.StructName(p); ok {
		return name + strings.TrimPrefix(p.Type, "tuple")
	}
	if _, short, ok := codec.EnumName(p); ok {
		return short
	}
	return p.Type
}
