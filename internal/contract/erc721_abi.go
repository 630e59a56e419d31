package contract

import "github.com/Mohsinsiddi/abi-test/internal/codec"

// erc721 is the standard ERC-721 interface (EIP-721) with the metadata
// extension. safeTransferFrom is overloaded; pick one by signature.
//
// Function selectors:
//
//	balanceOf(address)                        → 0x70a08231
//	ownerOf(uint256)                          → 0x6352211e
//	tokenURI(uint256)                         → 0xc87b56dd
//	safeTransferFrom(address,address,uint256) → 0x42842e0e
func init() {
	RegisterBuiltin(BuiltinKind{
		ID:          "erc721",
		Name:        "ERC-721 Non-Fungible Token",
		Description: "Standard ERC-721 interface (EIP-721) with metadata. Set abi to \"builtin:erc721\".",
		ABI:         erc721ABI,
	})
}

var (
	addrParam     = func(name string) codec.Param { return codec.Param{Name: name, Type: "address"} }
	erc721TokenID = codec.Param{Name: "tokenId", Type: "uint256"}
)

var erc721ABI = ABI{
	// ── Read ─────────────────────────────────────────────────────────────────
	{Name: "name", Type: "function", Outputs: []codec.Param{{Type: "string"}}, StateMutability: "view"},
	{Name: "symbol", Type: "function", Outputs: []codec.Param{{Type: "string"}}, StateMutability: "view"},
	{
		Name: "tokenURI", Type: "function",
		Inputs:          []codec.Param{erc721TokenID},
		Outputs:         []codec.Param{{Type: "string"}},
		StateMutability: "view",
	},
	{
		Name: "balanceOf", Type: "function",
		Inputs:          []codec.Param{addrParam("owner")},
		Outputs:         []codec.Param{{Type: "uint256"}},
		StateMutability: "view",
	},
	{
		Name: "ownerOf", Type: "function",
		Inputs:          []codec.Param{erc721TokenID},
		Outputs:         []codec.Param{addrParam("")},
		StateMutability: "view",
	},
	{
		Name: "getApproved", Type: "function",
		Inputs:          []codec.Param{erc721TokenID},
		Outputs:         []codec.Param{addrParam("")},
		StateMutability: "view",
	},
	{
		Name: "isApprovedForAll", Type: "function",
		Inputs:          []codec.Param{addrParam("owner"), addrParam("operator")},
		Outputs:         []codec.Param{{Type: "bool"}},
		StateMutability: "view",
	},
	{
		Name: "supportsInterface", Type: "function",
		Inputs:          []codec.Param{{Name: "interfaceId", Type: "bytes4"}},
		Outputs:         []codec.Param{{Type: "bool"}},
		StateMutability: "view",
	},
	// ── Write ────────────────────────────────────────────────────────────────
	{
		Name: "approve", Type: "function",
		Inputs:          []codec.Param{addrParam("to"), erc721TokenID},
		StateMutability: "nonpayable",
	},
	{
		Name: "setApprovalForAll", Type: "function",
		Inputs:          []codec.Param{addrParam("operator"), {Name: "approved", Type: "bool"}},
		StateMutability: "nonpayable",
	},
	{
		Name: "transferFrom", Type: "function",
		Inputs:          []codec.Param{addrParam("from"), addrParam("to"), erc721TokenID},
		StateMutability: "nonpayable",
	},
	{
		Name: "safeTransferFrom", Type: "function",
		Inputs:          []codec.Param{addrParam("from"), addrParam("to"), erc721TokenID},
		StateMutability: "nonpayable",
	},
	{
		Name: "safeTransferFrom", Type: "function",
		Inputs:          []codec.Param{addrParam("from"), addrParam("to"), erc721TokenID, {Name: "data", Type: "bytes"}},
		StateMutability: "nonpayable",
	},
	// ── Events ───────────────────────────────────────────────────────────────
	{
		Name: "Transfer", Type: "event",
		Inputs: []codec.Param{
			{Name: "from", Type: "address", Indexed: true},
			{Name: "to", Type: "address", Indexed: true},
			{Name: "tokenId", Type: "uint256", Indexed: true},
		},
	},
	{
		Name: "Approval", Type: "event",
		Inputs: []codec.Param{
			{Name: "owner", Type: "address", Indexed: true},
			{Name: "approved", Type: "address", Indexed: true},
			{Name: "tokenId", Type: "uint256", Indexed: true},
		},
	},
	{
		Name: "ApprovalForAll", Type: "event",
		Inputs: []codec.Param{
			{Name: "owner", Type: "address", Indexed: true},
			{Name: "operator", Type: "address", Indexed: true},
			{Name: "approved", Type: "bool"},
		},
	},
}
