// check-rpcs: benchmarks the public RPCs of every known network in parallel
// and prints which endpoint abi-test would pick for each chain id.
//
// Run from the module root:
//
//	go run ./scripts/check-rpcs
//	go run ./scripts/check-rpcs -algorithm failover -only 1,8453
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Mohsinsiddi/abi-test/internal/chain"
	"github.com/Mohsinsiddi/abi-test/internal/rpc"
)

const (
	chainTimeout = 12 * time.Second
	parallel     = 8
)

type result struct {
	network chain.Network
	healthy int
	total   int
	best    *rpc.Endpoint
	err     error
}

func main() {
	algoFlag := flag.String("algorithm", "fastest", "selection algorithm: fastest, round-robin or failover")
	only := flag.String("only", "", "comma-separated chain ids to check (default: all)")
	flag.Parse()

	algo, err := rpc.ParseAlgorithm(*algoFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	networks, err := selectNetworks(chain.NewRegistry().Networks(), *only)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	results := make([]result, len(networks))
	g := new(errgroup.Group)
	g.SetLimit(parallel)
	for i, n := range networks {
		g.Go(func() error {
			results[i] = check(n, algo)
			return nil
		})
	}
	g.Wait() //nolint:errcheck

	printTable(results)
}

func selectNetworks(all []chain.Network, only string) ([]chain.Network, error) {
	if only == "" {
		return all, nil
	}
	want := map[int64]bool{}
	for _, s := range strings.Split(only, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid chain id %q", s)
		}
		want[id] = true
	}
	var out []chain.Network
	for _, n := range all {
		if want[n.ChainID] {
			out = append(out, n)
		}
	}
	return out, nil
}

func check(n chain.Network, algo rpc.Algorithm) result {
	r := result{network: n, total: len(n.RPCs)}
	if r.total == 0 {
		return r
	}

	ctx, cancel := context.WithTimeout(context.Background(), chainTimeout)
	defer cancel()

	bench := rpc.Benchmark(ctx, n.RPCs)
	for _, b := range bench {
		if b.Err == nil {
			r.healthy++
		}
	}
	r.best, r.err = rpc.NewPicker(algo).Pick(rpc.Endpoints(bench))
	return r
}

// ── output ────────────────────────────────────────────────────────────────────

func printTable(results []result) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "CHAIN ID\tNETWORK\tHEALTHY\tSELECTED\tLATENCY\tBLOCK")
	fmt.Fprintln(w, strings.Repeat("-", 8)+"\t"+
		strings.Repeat("-", 16)+"\t"+
		strings.Repeat("-", 7)+"\t"+
		strings.Repeat("-", 40)+"\t"+
		strings.Repeat("-", 8)+"\t"+
		strings.Repeat("-", 10))

	for _, r := range results {
		selected, latency, block := "—", "—", "—"
		switch {
		case r.total == 0:
			selected = "no public RPCs"
		case r.err != nil:
			selected = r.err.Error()
		default:
			selected = r.best.URL
			latency = r.best.Latency.Truncate(time.Millisecond).String()
			block = strconv.FormatUint(r.best.BlockNumber, 10)
		}
		fmt.Fprintf(w, "%d\t%s\t%d/%d\t%s\t%s\t%s\n",
			r.network.ChainID, r.network.DisplayName, r.healthy, r.total, selected, latency, block)
	}
	w.Flush()
}
