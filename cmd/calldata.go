package cmd

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/abi-test/internal/contract"
	"github.com/Mohsinsiddi/abi-test/internal/ui"
)

var calldataRaw bool

var calldataCmd = &cobra.Command{
	Use:   "calldata <contract> <function> [input=value | value ...]",
	Short: "Encode calldata for a contract function",
	Long: `Encode the calldata for any function of a configured contract without
sending anything. Works for write functions as well as reads.

Examples:
  abi-test calldata USDC transfer 0x000000000000000000000000000000000000dEaD 1000
  abi-test calldata USDC approve spender=0xSpender value=0 --raw`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context(), false)
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
		inputs, err := parseInputs(fn, args[2:])
		if err != nil {
			return err
		}
		data, err := contract.Encode(fn, inputs, c.Enums)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if calldataRaw {
			fmt.Fprintln(out, hexutil.Encode(data))
			return nil
		}
		fmt.Fprintln(out, renderCalldata(s, c.Name, c.Address, fn, data))
		return nil
	},
}

func renderCalldata(s *session, name string, addr contract.Address, fn contract.ABIEntry, data []byte) string {
	pairs := [][2]string{
		{"Function", ui.Val(contract.Signature(fn))},
		{"Selector", ui.Val(contract.SelectorHex(fn))},
	}
	if to, ok := contract.ResolveAddress(addr, s.resolved.ChainID); ok {
		pairs = append(pairs, [2]string{"To", ui.Addr(to)})
	}
	pairs = append(pairs, [2]string{"Calldata", hexutil.Encode(data)})
	return ui.KeyValueBlock(name+" calldata", pairs)
}

func init() {
	calldataCmd.Flags().BoolVar(&calldataRaw, "raw", false, "print only the 0x calldata")
}
