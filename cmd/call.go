package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/abi-test/internal/contract"
	"github.com/Mohsinsiddi/abi-test/internal/ui"
)

var (
	callAddress string
	callJSON    bool
)

var callCmd = &cobra.Command{
	Use:   "call <contract> <function> [input=value | value ...]",
	Short: "Call a read-only contract function",
	Long: `Call a view or pure function of a configured contract and print the
decoded outputs.

The function may be a name, a full signature or a 4-byte selector. Inputs
are given in order or as name=value; tuples and arrays are JSON.

Examples:
  abi-test call USDC decimals
  abi-test call USDC balanceOf 0x28C6c06298d514Db089934071355E5743bf21d60
  abi-test call USDC allowance owner=0xOwner spender=0xSpender
  abi-test call Vault 0x8da5cb5b --json`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context(), true)
		if err != nil {
			return err
		}
		c, err := s.contract(args[0])
		if err != nil {
			return err
		}
		fn, err := c.ABI.Function(args[1])
		if err != nil {
			return err
		}
		if !fn.IsReadFunction() {
			return fmt.Errorf("%w: %s is %s; use calldata", contract.ErrNotReadFunction, fn.Name, fn.StateMutability)
		}
		inputs, err := parseInputs(fn, args[2:])
		if err != nil {
			return err
		}
		address, err := s.address(c, callAddress)
		if err != nil {
			return err
		}

		spin := ui.NewSpinner(fmt.Sprintf("Calling %s.%s on %s...", c.Name, fn.Name, s.networkName()))
		spin.Start()
		results, err := s.caller(c).Call(cmd.Context(), address, fn, inputs)
		spin.Stop()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if callJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(results)
		}
		fmt.Fprintln(out, ui.RenderResults(c.Name+"."+contract.DisplaySignature(fn), results))
		return nil
	},
}

func init() {
	callCmd.Flags().StringVar(&callAddress, "address", "", "call this address instead of the configured one")
	callCmd.Flags().BoolVar(&callJSON, "json", false, "print results as JSON")
}
