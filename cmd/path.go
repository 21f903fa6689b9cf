package cmd

import (
	"context"
	"fmt"

	"github.com/encodeous/dvsim/sim"
	"github.com/encodeous/dvsim/state"
	"github.com/spf13/cobra"
)

var (
	pathFrom int
	pathTo   int
)

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Converges the network, then prints the route between two nodes",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, closer, err := setupLogger()
		if err != nil {
			return err
		}
		defer closer.Close()

		topo, err := loadTopology()
		if err != nil {
			return err
		}
		if err := state.NodeValidator(topo.N(), state.NodeId(pathFrom)); err != nil {
			return fmt.Errorf("--from: %w", err)
		}
		s, err := sim.New(topo, sim.Options{Log: log})
		if err != nil {
			return err
		}
		res, err := s.Run(context.Background())
		if err != nil {
			return err
		}
		path, err := s.Nodes()[pathFrom].PathTo(state.NodeId(pathTo))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%v cost=%s\n", path, res.Costs[pathFrom][pathTo])
		return nil
	},
	GroupID: "sim",
}

func init() {
	rootCmd.AddCommand(pathCmd)

	pathCmd.Flags().IntVar(&pathFrom, "from", 0, "source node")
	pathCmd.Flags().IntVar(&pathTo, "to", 0, "destination node")
	_ = pathCmd.MarkFlagRequired("to")
}
