package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sarchlab/softmc/instr"
)

func newLayoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layout",
		Short: "Print the instruction field widths.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

			fields := []struct {
				name  string
				width int
			}{
				{"payload", instr.PayloadWidth},
				{"type", instr.TypeWidth},
				{"command", instr.CommandWidth},
				{"signal", instr.SignalWidth},
				{"bank", instr.BankWidth},
				{"row", instr.RowWidth},
				{"column", instr.ColumnWidth},
				{"argument", instr.ArgWidth},
			}

			for _, f := range fields {
				fmt.Fprintf(tw, "%s\t%d\n", f.name, f.width)
			}

			tw.Flush()
		},
	}
}
