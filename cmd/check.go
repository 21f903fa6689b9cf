package cmd

import (
	"fmt"

	"github.com/encodeous/dvsim/sim"
	"github.com/encodeous/dvsim/state"
	"github.com/spf13/cobra"
)

var checkPrint bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validates a topology and prints its shortest path costs",
	RunE: func(cmd *cobra.Command, args []string) error {
		topo, err := loadTopology()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if checkPrint {
			b, err := state.EncodeTopology(topo)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(b))
		}
		fmt.Fprintf(out, "Topology is valid: %d nodes, %d links, %d link changes\n", topo.N(), len(topo.Edges()), len(topo.LinkChanges))
		fmt.Fprint(out, formatMatrix(sim.Reference(topo.Costs)))
		return nil
	},
	GroupID: "cfg",
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVarP(&checkPrint, "print", "p", false, "print the normalized topology")
}
