package rpc

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Mohsinsiddi/abi-test/internal/chain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// evmRPCServer creates an httptest server that answers every request with
// blockNum as a hex string, after an optional delay.
func evmRPCServer(t *testing.T, blockNum uint64, delay time.Duration) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(delay)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":1,"result":"0x%x"}`, blockNum)
	}))
}

func TestEndpointsConversion(t *testing.T) {
	results := []BenchmarkResult{
		{URL: "https://rpc1.example.com", Latency: 50 * time.Millisecond, BlockNumber: 100},
		{URL: "https://rpc2.example.com", Err: errors.New("timeout")},
		{},
	}
	endpoints := Endpoints(results)
	require.Len(t, endpoints, 3)

	assert.Equal(t, "https://rpc1.example.com", endpoints[0].URL)
	assert.Equal(t, 50*time.Millisecond, endpoints[0].Latency)
	assert.Equal(t, uint64(100), endpoints[0].BlockNumber)
	assert.True(t, endpoints[0].Healthy)
	assert.False(t, endpoints[1].Healthy)
	for _, ep := range endpoints {
		assert.True(t, ep.Checked, "Checked must always be true after a benchmark")
	}
	assert.Empty(t, Endpoints(nil))
}

func TestBenchmarkKeepsOrder(t *testing.T) {
	a := evmRPCServer(t, 100, 20*time.Millisecond)
	defer a.Close()
	b := evmRPCServer(t, 101, 0)
	defer b.Close()

	results := Benchmark(context.Background(), []string{a.URL, "http://127.0.0.1:19994", b.URL})
	require.Len(t, results, 3)
	assert.Equal(t, a.URL, results[0].URL)
	assert.Equal(t, uint64(100), results[0].BlockNumber)
	assert.NoError(t, results[0].Err)
	assert.Error(t, results[1].Err)
	assert.Equal(t, uint64(101), results[2].BlockNumber)
}

func TestBestPicksFastestServer(t *testing.T) {
	slow := evmRPCServer(t, 500, 80*time.Millisecond)
	defer slow.Close()
	fast := evmRPCServer(t, 500, 0)
	defer fast.Close()

	url, err := Best(context.Background(), []string{slow.URL, fast.URL}, AlgorithmFastest)
	require.NoError(t, err)
	assert.Equal(t, fast.URL, url)
}

func TestBestSingleURL(t *testing.T) {
	url, err := Best(context.Background(), []string{"https://only.rpc.example.com"}, AlgorithmFastest)
	require.NoError(t, err)
	assert.Equal(t, "https://only.rpc.example.com", url)
}

func TestBestNoURLs(t *testing.T) {
	_, err := Best(context.Background(), nil, AlgorithmFastest)
	assert.ErrorIs(t, err, ErrNoHealthyRPC)
}

func TestBestAllDown(t *testing.T) {
	_, err := Best(context.Background(), []string{"http://127.0.0.1:19995", "http://127.0.0.1:19996"}, AlgorithmFailover)
	assert.ErrorIs(t, err, ErrNoHealthyRPC)
}

func TestSelectExplicitWins(t *testing.T) {
	url, err := Select(context.Background(), "http://my.node", 1, chain.NewRegistry(), AlgorithmFastest)
	require.NoError(t, err)
	assert.Equal(t, "http://my.node", url)
}

func TestSelectFromRegistry(t *testing.T) {
	// Foundry has a single local RPC, returned without probing.
	url, err := Select(context.Background(), "", 31337, chain.NewRegistry(), AlgorithmFastest)
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8545", url)
}

func TestSelectUnknownChain(t *testing.T) {
	_, err := Select(context.Background(), "", 424242, chain.NewRegistry(), AlgorithmFastest)
	assert.ErrorIs(t, err, chain.ErrChainNotFound)
}
