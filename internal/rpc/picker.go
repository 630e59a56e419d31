// Package rpc benchmarks JSON-RPC endpoints and picks the one to call.
package rpc

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrNoHealthyRPC is returned when no healthy RPC endpoint is available.
var ErrNoHealthyRPC = errors.New("no healthy RPC endpoint available")

// Algorithm defines how an RPC endpoint is selected.
type Algorithm string

const (
	AlgorithmFastest    Algorithm = "fastest"
	AlgorithmRoundRobin Algorithm = "round-robin"
	AlgorithmFailover   Algorithm = "failover"

	// Nodes more than this many blocks behind the best are skipped.
	staleBlockThreshold = 3
	// The fastest winner is reused for this long.
	cacheTTL = 5 * time.Minute
)

// ParseAlgorithm maps a flag value onto an Algorithm. Empty means fastest.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch a := Algorithm(s); a {
	case "":
		return AlgorithmFastest, nil
	case AlgorithmFastest, AlgorithmRoundRobin, AlgorithmFailover:
		return a, nil
	default:
		return "", fmt.Errorf("unknown RPC algorithm %q (want fastest, round-robin or failover)", s)
	}
}

// Endpoint is one RPC URL and what a benchmark measured about it.
type Endpoint struct {
	URL         string
	Latency     time.Duration
	BlockNumber uint64
	Healthy     bool // meaningful only when Checked
	Checked     bool
}

// eligible reports whether e may be picked. Endpoints that were never
// checked are given the benefit of the doubt.
func (e Endpoint) eligible() bool { return !e.Checked || e.Healthy }

// stale reports whether e lags best by more than the threshold.
func (e Endpoint) stale(best uint64) bool {
	return best > 0 && e.BlockNumber+staleBlockThreshold < best
}

// score ranks endpoints for the fastest algorithm; higher is better.
func (e Endpoint) score(best uint64) float64 {
	var s float64
	if ms := e.Latency.Milliseconds(); ms > 0 {
		s += 1000.0 / float64(ms)
	} else if e.Latency > 0 {
		s += 1000.0
	}
	if best > 0 {
		s += 10 - float64(best-e.BlockNumber)
	}
	return s
}

// Picker selects an RPC endpoint according to its algorithm. It is safe for
// concurrent use.
type Picker struct {
	algo Algorithm

	mu          sync.Mutex
	next        int
	cachedURL   string
	cacheExpiry time.Time
	onRank      func()
	now         func() time.Time
}

// NewPicker creates a new Picker with the given algorithm.
func NewPicker(algo Algorithm) *Picker {
	return &Picker{algo: algo, now: time.Now}
}

// OnRank registers a hook called whenever the fastest algorithm ranks the
// candidates instead of reusing its cached winner.
func (p *Picker) OnRank(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onRank = fn
}

// Pick selects an endpoint from the provided list according to the algorithm.
func (p *Picker) Pick(endpoints []Endpoint) (*Endpoint, error) {
	if len(endpoints) == 0 {
		return nil, ErrNoHealthyRPC
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.algo {
	case AlgorithmRoundRobin:
		return p.roundRobin(endpoints)
	case AlgorithmFailover:
		return failover(endpoints)
	default:
		return p.fastest(endpoints)
	}
}

func (p *Picker) fastest(endpoints []Endpoint) (*Endpoint, error) {
	if p.cachedURL != "" && p.now().Before(p.cacheExpiry) {
		for i := range endpoints {
			if endpoints[i].URL == p.cachedURL && endpoints[i].eligible() {
				return &endpoints[i], nil
			}
		}
	}
	if p.onRank != nil {
		p.onRank()
	}

	var best uint64
	for _, e := range endpoints {
		if e.BlockNumber > best {
			best = e.BlockNumber
		}
	}

	var winner *Endpoint
	var top float64
	for i := range endpoints {
		e := &endpoints[i]
		if !e.eligible() || e.stale(best) {
			continue
		}
		if s := e.score(best); winner == nil || s > top {
			winner, top = e, s
		}
	}
	if winner == nil {
		return nil, ErrNoHealthyRPC
	}

	p.cachedURL = winner.URL
	p.cacheExpiry = p.now().Add(cacheTTL)
	return winner, nil
}

func (p *Picker) roundRobin(endpoints []Endpoint) (*Endpoint, error) {
	var healthy []*Endpoint
	for i := range endpoints {
		if endpoints[i].eligible() {
			healthy = append(healthy, &endpoints[i])
		}
	}
	if len(healthy) == 0 {
		return nil, ErrNoHealthyRPC
	}
	idx := p.next % len(healthy)
	p.next = idx + 1
	return healthy[idx], nil
}

// failover returns the first eligible endpoint in list order.
func failover(endpoints []Endpoint) (*Endpoint, error) {
	for i := range endpoints {
		if endpoints[i].eligible() {
			return &endpoints[i], nil
		}
	}
	return nil, ErrNoHealthyRPC
}
