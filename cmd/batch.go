package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"github.com/encodeous/dvsim/sim"
	"github.com/spf13/cobra"
)

var (
	batchTrials  int
	batchWorkers int
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run many seeded simulations in parallel and summarize them",
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
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		res, runErr := sim.RunBatch(ctx, topo, batchTrials, batchWorkers, log)
		if res == nil {
			return runErr
		}
		out := cmd.OutOrStdout()
		for i, r := range res.Trials {
			switch {
			case r == nil:
				fmt.Fprintf(out, "trial %3d: failed: %v\n", i, res.Errors[i])
			case res.Errors[i] != nil:
				fmt.Fprintf(out, "trial %3d: seed=%d t=%.3f sent=%d converged=%v err=%v\n", i, r.Seed, r.EndTime, r.Sent, r.Converged, res.Errors[i])
			default:
				fmt.Fprintf(out, "trial %3d: seed=%d t=%.3f sent=%d converged=%v\n", i, r.Seed, r.EndTime, r.Sent, r.Converged)
			}
		}
		sum := res.Summary()
		fmt.Fprintf(out, "%d/%d converged, %d failed, end time mean %.3f max %.3f, packets mean %.1f max %d\n",
			sum.Converged, sum.Trials, sum.Failed, sum.MeanEndTime, sum.MaxEndTime, sum.MeanSent, sum.MaxSent)
		return runErr
	},
	GroupID: "sim",
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&batchTrials, "trials", 16, "number of simulations, trial i uses seed+i")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", runtime.NumCPU(), "simulations to run at once")
}
