package cmd

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/abi-test/internal/config"
	"github.com/Mohsinsiddi/abi-test/internal/contract"
	"github.com/Mohsinsiddi/abi-test/internal/ui"
)

var studioCmd = &cobra.Command{
	Use:   "studio [contract]",
	Short: "Explore a contract interactively in the terminal",
	Long: `Browse a configured contract's functions in the terminal, fill in inputs
with the same validation the dashboard uses and see results inline.

Read functions are called against the node; write functions print their
calldata. Without a contract name a picker lists the configured contracts.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context(), true)
		if err != nil {
			return err
		}

		name := ""
		if len(args) == 1 {
			name = args[0]
		} else {
			items := make([]ui.PickerItem, len(s.resolved.Contracts))
			for i, c := range s.resolved.Contracts {
				addr, _ := contract.ResolveAddress(c.Address, s.resolved.ChainID)
				items[i] = ui.PickerItem{Label: c.Name, SubLabel: addr, Value: c.Name}
			}
			name, err = ui.PickItem("Select a contract", items)
			if err != nil || name == "" {
				return err
			}
		}
		c, err := s.contract(name)
		if err != nil {
			return err
		}
		return runStudio(cmd, s, c)
	},
}

// runStudio loops navigator → form → result until the user quits the
// navigator.
func runStudio(cmd *cobra.Command, s *session, c config.ResolvedContract) error {
	address, _ := contract.ResolveAddress(c.Address, s.resolved.ChainID)
	caller := s.caller(c)
	out := cmd.OutOrStdout()
	in := bufio.NewReader(cmd.InOrStdin())

	for {
		fn, err := ui.RunStudio(ui.NewStudioModel(c.Name, address, s.networkName(), c.ABI))
		if err != nil || fn == nil {
			return err
		}
		values, err := ui.RunForm(*fn, c.Enums)
		if err != nil {
			return err
		}
		if values == nil {
			continue
		}

		title := c.Name + "." + contract.DisplaySignature(*fn)
		switch {
		case !fn.IsReadFunction():
			data, err := contract.Encode(*fn, values, c.Enums)
			if err != nil {
				fmt.Fprintln(out, ui.RenderError(err))
				break
			}
			fmt.Fprintln(out, renderCalldata(s, c.Name, c.Address, *fn, data))
		case address == "":
			fmt.Fprintln(out, ui.Err(fmt.Sprintf("%s has no address on %s", c.Name, s.networkName())))
		default:
			spin := ui.NewSpinner(fmt.Sprintf("Calling %s...", fn.Name))
			spin.Start()
			results, err := caller.Call(cmd.Context(), address, *fn, values)
			spin.Stop()
			if err != nil {
				log.Debug().Err(err).Str("function", fn.Name).Msg("studio call failed")
				fmt.Fprintln(out, ui.RenderError(err))
				break
			}
			fmt.Fprintln(out, ui.RenderResults(title, results))
		}

		fmt.Fprint(out, ui.Meta("  press Enter to return to "+c.Name+" "))
		if _, err := in.ReadString('\n'); err != nil {
			return nil
		}
	}
}
