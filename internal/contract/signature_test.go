package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Mohsinsiddi/abi-test/internal/codec"
)

func TestSelectorHex(t *testing.T) {
	tests := []struct {
		name     string
		fn       ABIEntry
		expected string
	}{
		{
			"balanceOf(address)",
			ABIEntry{Name: "balanceOf", Inputs: []codec.Param{{Type: "address"}}},
			"0x70a08231",
		},
		{
			"transfer(address,uint256)",
			ABIEntry{Name: "transfer", Inputs: []codec.Param{{Type: "address"}, {Type: "uint256"}}},
			"0xa9059cbb",
		},
		{
			"name()",
			ABIEntry{Name: "name", Inputs: []codec.Param{}},
			"0x06fdde03",
		},
		{
			"decimals()",
			ABIEntry{Name: "decimals", Inputs: nil},
			"0x313ce567",
		},
		{
			"totalSupply()",
			ABIEntry{Name: "totalSupply", Inputs: nil},
			"0x18160ddd",
		},
		{
			"approve(address,uint256)",
			ABIEntry{Name: "approve", Inputs: []codec.Param{{Type: "address"}, {Type: "uint256"}}},
			"0x095ea7b3",
		},
		{
			"allowance(address,address)",
			ABIEntry{Name: "allowance", Inputs: []codec.Param{{Type: "address"}, {Type: "address"}}},
			"0xdd62ed3e",
		},
		{
			"uint alias hashes as uint256",
			ABIEntry{Name: "transfer", Inputs: []codec.Param{{Type: "address"}, {Type: "uint"}}},
			"0xa9059cbb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SelectorHex(tt.fn))
		})
	}
}

func TestSignatureExpandsTuples(t *testing.T) {
	fn := ABIEntry{
		Name: "swap",
		Inputs: []codec.Param{
			{Name: "legs", Type: "tuple[]", Components: []codec.Param{
				{Name: "token", Type: "address"},
				{Name: "amount", Type: "uint"},
			}},
			{Name: "exact", Type: "bool"},
			{Name: "path", Type: "int[3]"},
		},
	}
	assert.Equal(t, "swap((address,uint256)[],bool,int256[3])", Signature(fn))
}

func TestSignatureNestedTuple(t *testing.T) {
	fn := ABIEntry{
		Name: "f",
		Inputs: []codec.Param{{Type: "tuple", Components: []codec.Param{
			{Type: "uint8"},
			{Type: "tuple[2]", Components: []codec.Param{{Type: "bytes32"}, {Type: "string"}}},
		}}},
	}
	assert.Equal(t, "f((uint8,(bytes32,string)[2]))", Signature(fn))
}

func TestEventTopic(t *testing.T) {
	transfer := ABIEntry{
		Name: "Transfer",
		Type: "event",
		Inputs: []codec.Param{
			{Name: "from", Type: "address", Indexed: true},
			{Name: "to", Type: "address", Indexed: true},
			{Name: "value", Type: "uint256"},
		},
	}
	assert.Equal(t, "0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef", EventTopic(transfer))
}

func TestDisplaySignature(t *testing.T) {
	order := codec.Param{
		Name:         "order",
		Type:         "tuple",
		InternalType: "struct Exchange.Order",
		Components:   []codec.Param{{Name: "maker", Type: "address"}, {Name: "amount", Type: "uint256"}},
	}
	side := codec.Param{Name: "side", Type: "uint8", InternalType: "enum Exchange.Side"}

	tests := []struct {
		name string
		e    ABIEntry
		want string
	}{
		{
			"struct, enum, payable and named output",
			ABIEntry{
				Name: "placeOrder", Type: "function", StateMutability: "payable",
				Inputs:  []codec.Param{order, side},
				Outputs: []codec.Param{{Name: "id", Type: "uint256"}},
			},
			"placeOrder(Order order, Side side) payable returns (uint256 id)",
		},
		{
			"nonpayable is implied",
			ABIEntry{
				Name: "transfer", Type: "function", StateMutability: "nonpayable",
				Inputs:  []codec.Param{{Name: "to", Type: "address"}, {Name: "value", Type: "uint256"}},
				Outputs: []codec.Param{{Type: "bool"}},
			},
			"transfer(address to, uint256 value) returns (bool)",
		},
		{
			"struct array",
			ABIEntry{
				Name: "batch", Type: "function", StateMutability: "view",
				Inputs: []codec.Param{{
					Name: "orders", Type: "tuple[]", InternalType: "struct Exchange.Order[]",
					Components: order.Components,
				}},
			},
			"batch(Order[] orders) view",
		},
		{
			"event marks indexed inputs",
			ABIEntry{
				Name: "Transfer", Type: "event",
				Inputs: []codec.Param{
					{Name: "from", Type: "address", Indexed: true},
					{Name: "value", Type: "uint256"},
				},
			},
			"Transfer(address indexed from, uint256 value)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplaySignature(tt.e))
		})
	}
}
