// Package fixtures gives tests access to the ABI, config and JSON-RPC
// fixture files next to this file.
package fixtures

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// fixturesDir returns the absolute path to the fixtures directory.
func fixturesDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Dir(file)
}

// Path returns the absolute path of a fixture file, e.g. Path("abis", "vault.json").
func Path(elem ...string) string {
	return filepath.Join(append([]string{fixturesDir()}, elem...)...)
}

// ConfigPath is the sample config: Vault (ABI file with enums), Counter
// (Hardhat artifact) and USDC (built-in ERC-20) on chain 1.
func ConfigPath() string { return Path("configs", "abi-test.config.yaml") }

// LoadABI loads a fixture ABI JSON file and returns its raw bytes.
func LoadABI(t *testing.T, filename string) []byte {
	t.Helper()
	data, err := os.ReadFile(Path("abis", filename))
	require.NoError(t, err, "failed to load fixture ABI: %s", filename)
	return data
}

// LoadRPCResponse loads a fixture JSON-RPC response.
func LoadRPCResponse(t *testing.T, filename string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(Path("rpc", filename))
	require.NoError(t, err, "failed to load fixture RPC response: %s", filename)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(data, &resp))
	return resp
}

// RPCServer answers every JSON-RPC request with resp, echoing the request id.
// The server is closed when the test ends.
func RPCServer(t *testing.T, resp map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage `json:"id"`
			Method string          `json:"method"`
		}
		json.NewDecoder(r.Body).Decode(&req) //nolint:errcheck

		out := make(map[string]any, len(resp))
		for k, v := range resp {
			out[k] = v
		}
		out["id"] = req.ID
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(out) //nolint:errcheck
	}))
	t.Cleanup(srv.Close)
	return srv
}
