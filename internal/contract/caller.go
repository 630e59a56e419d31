package contract

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/Mohsinsiddi/abi-test/internal/chain"
	"github.com/Mohsinsiddi/abi-test/internal/codec"
)

// ErrReverted matches any RevertError.
var ErrReverted = errors.New("execution reverted")

// RevertError is returned when eth_call reverts.
type RevertError struct {
	Reason string // decoded reason, empty when unknown
	Data   string // raw 0x revert data
}

func (e *RevertError) Error() string {
	switch {
	case e.Reason != "":
		return "execution reverted: " + e.Reason
	case e.Data != "" && e.Data != "0x":
		return "execution reverted: " + e.Data
	}
	return "execution reverted"
}

func (e *RevertError) Is(target error) bool { return target == ErrReverted }

// Caller calls read-only (view/pure) contract functions.
type Caller struct {
	client *chain.EVMClient
	abi    ABI

	// Formatter renders result text.
	Formatter codec.Formatter
	// Enums bounds enum inputs to their mapped options.
	Enums codec.EnumMapping
}

// NewCaller creates a Caller against rpcURL. abi is used to decode custom
// revert errors and may be nil.
func NewCaller(rpcURL string, abi ABI) *Caller {
	return &Caller{
		client: chain.NewEVMClient(rpcURL),
		abi:    abi,
	}
}

// Call validates and parses raw editor text, calls fn on address and decodes
// the result.
func (c *Caller) Call(ctx context.Context, address string, fn ABIEntry, raw map[string]string) ([]Result, error) {
	if err := ValidateInputs(fn, raw, c.Enums); err != nil {
		return nil, err
	}
	return c.CallValues(ctx, address, fn, ParseInputs(fn, raw))
}

// CallValues calls fn on address with already parsed values.
func (c *Caller) CallValues(ctx context.Context, address string, fn ABIEntry, values []any) ([]Result, error) {
	if !fn.IsReadFunction() {
		return nil, fmt.Errorf("%w: %s is %s", ErrNotReadFunction, fn.Name, fn.StateMutability)
	}
	if !codec.IsAddress(address) {
		return nil, fmt.Errorf("contract address %q: %w", address, codec.ErrInvalidAddress)
	}

	calldata, err := EncodeValues(fn, values)
	if err != nil {
		return nil, err
	}

	data, err := c.client.CallContract(ctx, address, calldata)
	if err != nil {
		if chain.IsRevert(err) {
			return nil, c.revertError(err)
		}
		return nil, fmt.Errorf("calling %s: %w", fn.Name, err)
	}

	return DecodeOutputs(fn, data, c.Formatter)
}

func (c *Caller) revertError(err error) *RevertError {
	var rpcErr *chain.RPCError
	if !errors.As(err, &rpcErr) {
		return &RevertError{}
	}
	out := &RevertError{Data: rpcErr.RevertData()}
	if raw, decodeErr := hexutil.Decode(out.Data); decodeErr == nil {
		if reason, ok := c.abi.DecodeRevert(raw); ok {
			out.Reason = reason
			return out
		}
	}
	// Some nodes put the reason in the message and return no data.
	if out.Data == "" && rpcErr.Message != "execution reverted" {
		out.Reason = rpcErr.Message
	}
	return out
}
