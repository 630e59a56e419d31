package chain

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

// rpcMock creates a test HTTP server that serves a fixed JSON-RPC response
// per method. Pass method→result pairs; any unknown method returns an RPC error.
func rpcMock(t *testing.T, responses map[string]interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string `json:"method"`
			ID     int    `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if result, ok := responses[req.Method]; ok {
			json.NewEncoder(w).Encode(map[string]interface{}{ //nolint:errcheck
				"jsonrpc": "2.0",
				"id":      req.ID,
				"result":  result,
			})
		} else {
			json.NewEncoder(w).Encode(map[string]interface{}{ //nolint:errcheck
				"jsonrpc": "2.0",
				"id":      req.ID,
				"error":   map[string]interface{}{"code": -32601, "message": "method not found"},
			})
		}
	}))
}

// rpcErrorServer creates a test HTTP server that always returns a JSON-RPC error.
func rpcErrorServer(t *testing.T, rpcErr map[string]interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID int `json:"id"`
		}
		json.NewDecoder(r.Body).Decode(&req) //nolint:errcheck
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{ //nolint:errcheck
			"jsonrpc": "2.0",
			"id":      req.ID,
			"error":   rpcErr,
		})
	}))
}

// rpcBadJSON creates a server that returns malformed JSON.
func rpcBadJSON(t *testing.T, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(`{not valid json`)) //nolint:errcheck
	}))
}

// ---------------------------------------------------------------------------
// ChainID / BlockNumber / Ping
// ---------------------------------------------------------------------------

func TestChainID(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{"eth_chainId": "0x2105"})
	defer srv.Close()

	id, err := NewEVMClient(srv.URL).ChainID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(8453), id)
}

func TestChainIDBadHex(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{"eth_chainId": "zz"})
	defer srv.Close()

	_, err := NewEVMClient(srv.URL).ChainID(context.Background())
	assert.Error(t, err)
}

func TestBlockNumber(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{"eth_blockNumber": "0x10"})
	defer srv.Close()

	n, err := NewEVMClient(srv.URL).BlockNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(16), n)
}

func TestBlockNumberNonStringResult(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{"eth_blockNumber": 16})
	defer srv.Close()

	_, err := NewEVMClient(srv.URL).BlockNumber(context.Background())
	assert.Error(t, err)
}

func TestPingSuccess(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{"eth_blockNumber": "0x1312d00"})
	defer srv.Close()

	latency, block, err := NewEVMClient(srv.URL).Ping(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(20_000_000), block)
	assert.Greater(t, latency, time.Duration(0))
}

func TestPingConnectionRefused(t *testing.T) {
	_, _, err := NewEVMClient("http://127.0.0.1:19991").Ping(context.Background())
	require.Error(t, err)
}

func TestPingCancelledContext(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{"eth_blockNumber": "0x1"})
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := NewEVMClient(srv.URL).Ping(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

// ---------------------------------------------------------------------------
// CallContract
// ---------------------------------------------------------------------------

func TestCallContractSendsCalldata(t *testing.T) {
	var gotParams []json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string            `json:"method"`
			Params []json.RawMessage `json:"params"`
			ID     int               `json:"id"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "eth_call", req.Method)
		gotParams = req.Params
		json.NewEncoder(w).Encode(map[string]interface{}{ //nolint:errcheck
			"jsonrpc": "2.0", "id": req.ID,
			"result": "0x000000000000000000000000000000000000000000000000000000000000002a",
		})
	}))
	defer srv.Close()

	out, err := NewEVMClient(srv.URL).CallContract(context.Background(),
		"0x0000000000000000000000000000000000000001", []byte{0x18, 0x16, 0x0d, 0xdd})
	require.NoError(t, err)
	require.Len(t, out, 32)
	assert.Equal(t, byte(42), out[31])

	require.Len(t, gotParams, 2)
	assert.JSONEq(t, `{"to":"0x0000000000000000000000000000000000000001","data":"0x18160ddd"}`, string(gotParams[0]))
	assert.JSONEq(t, `"latest"`, string(gotParams[1]))
}

func TestCallContractEmptyResult(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{"eth_call": "0x"})
	defer srv.Close()

	out, err := NewEVMClient(srv.URL).CallContract(context.Background(), "0x01", nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestCallContractRevert(t *testing.T) {
	srv := rpcErrorServer(t, map[string]interface{}{
		"code":    3,
		"message": "execution reverted: not owner",
		"data":    "0x08c379a0",
	})
	defer srv.Close()

	_, err := NewEVMClient(srv.URL).CallContract(context.Background(), "0x01", nil)
	require.Error(t, err)
	assert.True(t, IsRevert(err))

	var rpcErr *RPCError
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, 3, rpcErr.Code)
	assert.Equal(t, "0x08c379a0", rpcErr.RevertData())
}

func TestRPCErrorNestedRevertData(t *testing.T) {
	e := &RPCError{Code: -32000, Message: "reverted", Data: json.RawMessage(`{"data":"0xdeadbeef"}`)}
	assert.Equal(t, "0xdeadbeef", e.RevertData())
	assert.Equal(t, "RPC error -32000: reverted", e.Error())

	plain := &RPCError{Code: -32601, Message: "method not found"}
	assert.Equal(t, "", plain.RevertData())
	assert.False(t, IsRevert(plain))
}

func TestCallMalformedJSON(t *testing.T) {
	srv := rpcBadJSON(t, http.StatusOK)
	defer srv.Close()
	_, err := NewEVMClient(srv.URL).BlockNumber(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing response")

	bad := rpcBadJSON(t, http.StatusBadGateway)
	defer bad.Close()
	_, err = NewEVMClient(bad.URL).BlockNumber(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 502")
}

func TestURL(t *testing.T) {
	assert.Equal(t, "http://localhost:8545", NewEVMClient("http://localhost:8545").URL())
}
