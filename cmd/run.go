package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"github.com/encodeous/dvsim/sim"
	"github.com/encodeous/dvsim/state"
	"github.com/spf13/cobra"
)

var (
	runSeed        uint64
	runLinkChanges bool
	runTrace       bool
	runRounds      bool
	runDebugAddr   string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one simulation and print every node's tables",
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
		if cmd.Flags().Changed("seed") {
			topo.Seed = runSeed
		}
		if runLinkChanges && len(topo.LinkChanges) == 0 {
			topo.LinkChanges = state.DefaultLinkChanges()
		}

		if runDebugAddr != "" {
			go func() {
				log.Info("serving metrics", "addr", runDebugAddr, "path", "/debug/metrics")
				if err := http.ListenAndServe(runDebugAddr, nil); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("metrics server stopped", "err", err)
				}
			}()
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		out := cmd.OutOrStdout()

		if runRounds {
			res, err := sim.RunRounds(ctx, topo, log)
			if err != nil {
				return err
			}
			for _, node := range res.Nodes {
				fmt.Fprintf(out, "node %d\n%s%s\n", node.Id, node.StringTable(), node.StringRoutes())
			}
			fmt.Fprintf(out, "%d rounds, costs last changed in round %d, %d packets sent\n", res.Rounds, res.ChangedRounds, res.Sent)
			printConvergence(out, res.Costs, res.Reference, res.Converged)
			return nil
		}

		var tracer *sim.Tracer
		if runTrace {
			tracer = sim.NewTracer()
			tracer.Subscribe(func(ev sim.TraceEvent) {
				fmt.Fprintln(cmd.ErrOrStderr(), ev.String())
			})
		}
		s, err := sim.New(topo, sim.Options{Log: log, Tracer: tracer})
		if err != nil {
			return err
		}
		res, runErr := s.Run(ctx)
		if tracer != nil {
			if err := tracer.Close(); err != nil {
				return err
			}
		}
		for _, node := range s.Nodes() {
			fmt.Fprintf(out, "node %d\n%s%s\n", node.Id, node.StringTable(), node.StringRoutes())
		}
		fmt.Fprintf(out, "run %s finished at t=%.3f: %d events, %d sent, %d delivered, %d dropped, %d rejected, %d link changes\n",
			res.RunId, res.EndTime, res.Events, res.Sent, res.Delivered, res.Dropped, res.Rejected, res.LinkChanges)
		printConvergence(out, res.Costs, res.Reference, res.Converged)
		return runErr
	},
	GroupID: "sim",
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Uint64VarP(&runSeed, "seed", "s", 0, "random seed for link delays, overrides the topology file")
	runCmd.Flags().BoolVarP(&runLinkChanges, "link-changes", "l", false, "apply the built-in link changes when the topology has none")
	runCmd.Flags().BoolVarP(&runTrace, "trace", "t", false, "print every simulation event to stderr")
	runCmd.Flags().BoolVar(&runRounds, "rounds", false, "run in synchronous rounds instead of on the virtual clock")
	runCmd.Flags().StringVar(&runDebugAddr, "debug-addr", "", "serve /debug/metrics and /debug/vars on this address")
}
