package cmd

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/abi-test/internal/chain"
	"github.com/Mohsinsiddi/abi-test/internal/config"
	"github.com/Mohsinsiddi/abi-test/internal/rpc"
	"github.com/Mohsinsiddi/abi-test/internal/ui"
)

var (
	chainsProbe int64
	chainsNoTUI bool
)

var chainsCmd = &cobra.Command{
	Use:   "chains",
	Short: "List known chains and benchmark their public RPCs",
	Long: `List every chain id abi-test knows, with its explorer and public RPC count.
A known chain id needs no --rpc-url or --explorer: the fastest public RPC
and the chain's explorer are used.

--probe benchmarks the public RPCs of one chain live and shows the endpoint
the selection algorithm (--rpc-algorithm) would pick.

Examples:
  abi-test chains
  abi-test chains --probe 8453
  abi-test chains --probe 1 --rpc-algorithm failover --no-tui`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		reg := chain.NewRegistry()
		out := cmd.OutOrStdout()
		if chainsProbe == 0 {
			fmt.Fprintln(out, chainsTable(reg.Networks()).Render())
			return nil
		}

		network, err := reg.Network(chainsProbe)
		if err != nil {
			return err
		}
		if len(network.RPCs) == 0 {
			return fmt.Errorf("%s has no public RPCs to probe", network.DisplayName)
		}
		algo, err := rpc.ParseAlgorithm(flags.rpcAlgorithm)
		if err != nil {
			return err
		}

		if chainsNoTUI {
			return probePlain(cmd.Context(), cmd, network, algo)
		}
		winner, err := ui.RunBench(ui.NewBenchModel(network.DisplayName, algo, network.RPCs, ui.ProbeCmd))
		if err != nil {
			return err
		}
		if winner != "" {
			fmt.Fprintln(out, ui.Success("selected "+winner))
		}
		return nil
	},
}

func probePlain(ctx context.Context, cmd *cobra.Command, network chain.Network, algo rpc.Algorithm) error {
	ctx, cancel := context.WithTimeout(ctx, config.RPCSelectTimeout)
	defer cancel()

	results := rpc.Benchmark(ctx, network.RPCs)
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Latency < results[j].Latency
	})

	t := ui.NewTable([]ui.Column{
		{Title: "ENDPOINT", Width: 44},
		{Title: "LATENCY", Width: 10},
		{Title: "BLOCK", Width: 12},
		{Title: "STATUS", Width: 30},
	})
	for _, r := range results {
		if r.Err != nil {
			t.AddRow(ui.Row{r.URL, "—", "—", r.Err.Error()})
			continue
		}
		t.AddRow(ui.Row{r.URL, r.Latency.Truncate(time.Millisecond).String(), strconv.FormatUint(r.BlockNumber, 10), "ok"})
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, t.Render())

	best, err := rpc.NewPicker(algo).Pick(rpc.Endpoints(results))
	if err != nil {
		return err
	}
	fmt.Fprintln(out, ui.Success(fmt.Sprintf("%s selects %s", algo, best.URL)))
	return nil
}

func chainsTable(networks []chain.Network) *ui.Table {
	t := ui.NewTable([]ui.Column{
		{Title: "CHAIN ID", Width: 10},
		{Title: "NAME", Width: 24},
		{Title: "NET", Width: 7},
		{Title: "RPCS", Width: 4},
		{Title: "EXPLORER", Width: 40},
	})
	for _, n := range networks {
		kind := "main"
		if n.Testnet {
			kind = "test"
		}
		t.AddRow(ui.Row{
			strconv.FormatInt(n.ChainID, 10),
			n.DisplayName,
			kind,
			strconv.Itoa(len(n.RPCs)),
			n.Explorer,
		})
	}
	return t
}

func init() {
	chainsCmd.Flags().Int64Var(&chainsProbe, "probe", 0, "benchmark the public RPCs of this chain id")
	chainsCmd.Flags().BoolVar(&chainsNoTUI, "no-tui", false, "print the benchmark as a table instead of the live view")
}
