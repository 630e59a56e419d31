package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// EVMClient is a minimal JSON-RPC client for EVM chains.
type EVMClient struct {
	url    string
	client *http.Client
	nextID atomic.Int64
}

// NewEVMClient creates a new EVM JSON-RPC client pointed at url.
func NewEVMClient(url string) *EVMClient {
	return &EVMClient{
		url: url,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// URL returns the endpoint the client talks to.
func (c *EVMClient) URL() string { return c.url }

// RPCError is a JSON-RPC error object. Data carries the revert payload when
// the node includes one.
type RPCError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("RPC error %d: %s", e.Code, e.Message)
}

// RevertData returns the hex revert payload, or "" when the error carries
// none.
func (e *RPCError) RevertData() string {
	var s string
	if json.Unmarshal(e.Data, &s) == nil && strings.HasPrefix(s, "0x") {
		return s
	}
	var nested struct {
		Data string `json:"data"`
	}
	if json.Unmarshal(e.Data, &nested) == nil && strings.HasPrefix(nested.Data, "0x") {
		return nested.Data
	}
	return ""
}

// IsRevert reports whether err is an execution revert reported by the node.
func IsRevert(err error) bool {
	var rpcErr *RPCError
	if !errors.As(err, &rpcErr) {
		return false
	}
	return rpcErr.RevertData() != "" || strings.Contains(rpcErr.Message, "revert")
}

// ChainID returns the chain's ID.
func (c *EVMClient) ChainID(ctx context.Context) (int64, error) {
	n, err := c.callUint(ctx, "eth_chainId")
	if err != nil {
		return 0, fmt.Errorf("could not get chain id: %w", err)
	}
	return int64(n), nil
}

// BlockNumber returns the latest block number.
func (c *EVMClient) BlockNumber(ctx context.Context) (uint64, error) {
	n, err := c.callUint(ctx, "eth_blockNumber")
	if err != nil {
		return 0, fmt.Errorf("could not get block number: %w", err)
	}
	return n, nil
}

// CallContract runs eth_call against the latest block and returns the raw
// return data.
func (c *EVMClient) CallContract(ctx context.Context, to string, calldata []byte) ([]byte, error) {
	result, err := c.call(ctx, "eth_call", map[string]string{
		"to":   to,
		"data": hexutil.Encode(calldata),
	}, "latest")
	if err != nil {
		return nil, err
	}
	var s string
	if err := json.Unmarshal(result, &s); err != nil {
		return nil, fmt.Errorf("unexpected eth_call result: %s", result)
	}
	out, err := hexutil.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("decoding eth_call result: %w", err)
	}
	return out, nil
}

// Ping tests the RPC endpoint and returns latency + block number.
func (c *EVMClient) Ping(ctx context.Context) (latency time.Duration, blockNum uint64, err error) {
	start := time.Now()
	blockNum, err = c.callUint(ctx, "eth_blockNumber")
	latency = time.Since(start)
	if err != nil {
		return latency, 0, err
	}
	return latency, blockNum, nil
}

// --- internal JSON-RPC plumbing ---

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
	ID      int64  `json:"id"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int64           `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *RPCError       `json:"error"`
}

func (c *EVMClient) callUint(ctx context.Context, method string) (uint64, error) {
	result, err := c.call(ctx, method)
	if err != nil {
		return 0, err
	}
	var s string
	if err := json.Unmarshal(result, &s); err != nil {
		return 0, fmt.Errorf("unexpected result: %s", result)
	}
	n, err := hexutil.DecodeUint64(s)
	if err != nil {
		return 0, fmt.Errorf("could not parse %s: %w", s, err)
	}
	return n, nil
}

func (c *EVMClient) call(ctx context.Context, method string, params ...any) (json.RawMessage, error) {
	if params == nil {
		params = []any{}
	}
	reqBody, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      c.nextID.Add(1),
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("RPC request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(body, &rpcResp); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("RPC request failed: HTTP %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	if rpcResp.Error != nil {
		return nil, rpcResp.Error
	}
	return rpcResp.Result, nil
}
