package rpc

import (
	"context"
	"sync"
	"time"

	"github.com/Mohsinsiddi/abi-test/internal/chain"
)

// pingTimeout bounds a single endpoint probe.
const pingTimeout = 5 * time.Second

// BenchmarkResult holds the result of a single endpoint benchmark.
type BenchmarkResult struct {
	URL         string
	Latency     time.Duration
	BlockNumber uint64
	Err         error
}

// Endpoint converts the result into a checked picker endpoint.
func (r BenchmarkResult) Endpoint() Endpoint {
	return Endpoint{
		URL:         r.URL,
		Latency:     r.Latency,
		BlockNumber: r.BlockNumber,
		Healthy:     r.Err == nil,
		Checked:     true,
	}
}

// Benchmark pings all URLs in parallel. Results keep the order of urls.
func Benchmark(ctx context.Context, urls []string) []BenchmarkResult {
	results := make([]BenchmarkResult, len(urls))
	var wg sync.WaitGroup

	for i, url := range urls {
		wg.Add(1)
		go func(idx int, u string) {
			defer wg.Done()
			pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
			defer cancel()
			latency, block, err := chain.NewEVMClient(u).Ping(pingCtx)
			results[idx] = BenchmarkResult{
				URL:         u,
				Latency:     latency,
				BlockNumber: block,
				Err:         err,
			}
		}(i, url)
	}

	wg.Wait()
	return results
}

// Endpoints converts benchmark results to picker endpoints.
func Endpoints(results []BenchmarkResult) []Endpoint {
	out := make([]Endpoint, 0, len(results))
	for _, r := range results {
		out = append(out, r.Endpoint())
	}
	return out
}

// Best benchmarks urls and returns the URL the algorithm picks. A single URL
// is returned without probing.
func Best(ctx context.Context, urls []string, algo Algorithm) (string, error) {
	switch len(urls) {
	case 0:
		return "", ErrNoHealthyRPC
	case 1:
		return urls[0], nil
	}
	winner, err := NewPicker(algo).Pick(Endpoints(Benchmark(ctx, urls)))
	if err != nil {
		return "", err
	}
	return winner.URL, nil
}
