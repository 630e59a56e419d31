package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/abi-test/internal/contract"
	"github.com/Mohsinsiddi/abi-test/internal/ui"
)

var abiJSON bool

var abiCmd = &cobra.Command{
	Use:   "abi <contract>",
	Short: "List a contract's functions, selectors and events",
	Long: `Print every function with its 4-byte selector and every event with its
topic, as resolved from the config (inline, file, built-in or explorer).

Examples:
  abi-test abi USDC
  abi-test abi USDC --json > usdc.abi.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context(), false)
		if err != nil {
			return err
		}
		c, err := s.contract(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if abiJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(c.ABI)
		}
		fmt.Fprintln(out, abiTable(c.ABI).Render())
		return nil
	},
}

func abiTable(a contract.ABI) *ui.Table {
	t := ui.NewTable([]ui.Column{
		{Title: "KIND", Width: 6},
		{Title: "SELECTOR", Width: 12},
		{Title: "SIGNATURE", Width: 72},
	})
	for _, fn := range a.ReadFunctions() {
		t.AddRow(ui.Row{"read", contract.SelectorHex(fn), contract.DisplaySignature(fn)})
	}
	for _, fn := range a.WriteFunctions() {
		t.AddRow(ui.Row{"write", contract.SelectorHex(fn), contract.DisplaySignature(fn)})
	}
	for _, ev := range a.Events() {
		t.AddRow(ui.Row{"event", ui.TruncateAddr(contract.EventTopic(ev)), contract.DisplaySignature(ev)})
	}
	return t
}

func init() {
	abiCmd.Flags().BoolVar(&abiJSON, "json", false, "print the resolved ABI as JSON")
}
