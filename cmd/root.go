package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/abi-test/internal/config"
	"github.com/Mohsinsiddi/abi-test/internal/logging"
	"github.com/Mohsinsiddi/abi-test/internal/ui"
)

// Version is the current release. Overridable via build ldflags:
//
//	go build -ldflags "-X github.com/Mohsinsiddi/abi-test/cmd.Version=1.2.3" .
var Version = "0.1.0"

// globalFlags are the flags shared by every command that loads a config.
type globalFlags struct {
	configPath     string
	contracts      []string
	explorer       string
	chainID        int64
	port           int
	apiURL         string
	apiKey         string
	rpcURL         string
	rpcAlgorithm   string
	groupSeparator string
	noCache        bool

	logLevel string
	jsonLogs bool
}

var (
	flags globalFlags
	log   = zerolog.Nop()
)

// rootCmd serves the dashboard when run without a sub-command.
var rootCmd = &cobra.Command{
	Use:   "abi-test [config]",
	Short: "Dashboard for reading and encoding smart contract calls",
	Long: `abi-test: a local dashboard for exercising smart contract ABIs.

  Point it at a config file (abi-test.config.json, .yaml or .yml) or pass
  contracts on the command line, and it serves a web page listing every
  function with typed input editors. Read functions are called against a
  node; write functions are encoded into calldata.

Without a config argument the current directory is searched. Values from
flags win over the config file, which wins over environment variables
(ABI_TEST_API_KEY, ETHERSCAN_API_KEY, ABI_TEST_RPC_URL, also read from .env).

Examples:
  abi-test
  abi-test ./contracts/abi-test.config.yaml
  abi-test -c 0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48:USDC -i 1
  abi-test studio USDC`,
	Version:           Version,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
	RunE:              runServe,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.RenderError(err))
		os.Exit(1)
	}
}

func setupLogging(cmd *cobra.Command, _ []string) error {
	l, err := logging.New(logging.Options{
		Level: flags.logLevel,
		JSON:  flags.jsonLogs,
		Out:   cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	log = l
	return nil
}

// overrides turns the command-line flags into config overrides.
func (f globalFlags) overrides() (config.Overrides, error) {
	o := config.Overrides{
		BlockExplorerURL: f.explorer,
		ChainID:          f.chainID,
		Port:             f.port,
		APIURL:           f.apiURL,
		APIKey:           f.apiKey,
		RPCURL:           f.rpcURL,
		RPCAlgorithm:     f.rpcAlgorithm,
	}
	for _, s := range f.contracts {
		cc, err := config.ParseContractFlag(s)
		if err != nil {
			return o, err
		}
		o.Contracts = append(o.Contracts, cc)
	}
	return o, nil
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "f", "", "config file (default: search the current directory)")
	pf.StringArrayVarP(&flags.contracts, "contract", "c", nil, "contract as 0xaddr:Name (repeatable)")
	pf.StringVarP(&flags.explorer, "explorer", "x", "", "block explorer URL")
	pf.Int64VarP(&flags.chainID, "chain-id", "i", 0, "chain id")
	pf.IntVarP(&flags.port, "port", "p", 0, fmt.Sprintf("dashboard port (default %d)", config.DefaultPort))
	pf.StringVarP(&flags.apiURL, "api-url", "a", "", "explorer API URL used to fetch verified ABIs")
	pf.StringVarP(&flags.apiKey, "api-key", "k", "", "explorer API key")
	pf.StringVarP(&flags.rpcURL, "rpc-url", "r", "", "JSON-RPC URL (default: fastest public RPC for the chain)")
	pf.StringVar(&flags.rpcAlgorithm, "rpc-algorithm", "", "public RPC selection: fastest, round-robin or failover")
	pf.StringVar(&flags.groupSeparator, "group-separator", "", `digit group separator for integer results (default ",")`)
	pf.BoolVar(&flags.noCache, "no-cache", false, "do not read or write the fetched ABI cache")
	pf.StringVar(&flags.logLevel, "log-level", "info", "log level: trace, debug, info, warn, error, disabled")
	pf.BoolVar(&flags.jsonLogs, "json-logs", false, "write logs as JSON lines")

	rootCmd.AddCommand(
		serveCmd,
		studioCmd,
		callCmd,
		calldataCmd,
		abiCmd,
		chainsCmd,
	)
}
