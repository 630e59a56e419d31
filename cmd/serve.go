package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/abi-test/internal/logging"
	"github.com/Mohsinsiddi/abi-test/internal/server"
	"github.com/Mohsinsiddi/abi-test/internal/ui"
)

var serveCmd = &cobra.Command{
	Use:   "serve [config]",
	Short: "Serve the contract dashboard (default command)",
	Long: `Resolve every configured contract ABI, pick an RPC endpoint and serve the
dashboard on http://localhost:<port>. Stops cleanly on Ctrl+C.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		flags.configPath = args[0]
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := openSession(ctx, true)
	if err != nil {
		return err
	}

	srv, err := server.New(s.resolved, server.Options{
		Addr:      fmt.Sprintf(":%d", s.cfg.Port),
		Log:       logging.Component(log, "server"),
		Formatter: s.formatter(),
	})
	if err != nil {
		return err
	}

	names := make([]string, len(s.resolved.Contracts))
	for i, c := range s.resolved.Contracts {
		names[i] = c.Name
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ui.Banner(Version))
	fmt.Fprintln(out, ui.KeyValueBlock("Dashboard", [][2]string{
		{"URL", ui.Val(fmt.Sprintf("http://localhost:%d", s.cfg.Port))},
		{"Network", ui.ChainName(s.networkName())},
		{"RPC", ui.Meta(s.resolved.RPCURL)},
		{"Contracts", strings.Join(names, ", ")},
	}))
	fmt.Fprintln(out, ui.Hint("press Ctrl+C to stop"))

	return srv.ListenAndServe(ctx)
}
