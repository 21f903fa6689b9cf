package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/encodeous/dvsim/sim"
	"github.com/encodeous/dvsim/state"
)

func loadTopology() (*state.Topology, error) {
	if configPath == "" {
		return state.DefaultTopology(), nil
	}
	return state.LoadTopology(configPath)
}

func setupLogger() (*slog.Logger, io.Closer, error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	log, closer, err := sim.NewLogger("dvsim ", level, logPath)
	if err != nil {
		return nil, nil, err
	}
	slog.SetDefault(log)
	return log, closer, nil
}

func formatMatrix(m [][]state.Cost) string {
	sb := strings.Builder{}
	sb.WriteString("     ")
	for j := range m {
		sb.WriteString(fmt.Sprintf("%5d", j))
	}
	sb.WriteString("\n")
	for i, row := range m {
		sb.WriteString(fmt.Sprintf("%5d", i))
		for _, c := range row {
			sb.WriteString(fmt.Sprintf("%5s", c))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func printConvergence(out io.Writer, costs, reference [][]state.Cost, converged bool) {
	if converged {
		fmt.Fprintln(out, "All nodes agree with the reference shortest paths.")
		return
	}
	fmt.Fprintln(out, "Nodes disagree with the reference shortest paths!")
	for i := range costs {
		for j := range costs[i] {
			if costs[i][j] != reference[i][j] {
				fmt.Fprintf(out, "  node %d to %d: have %s, want %s\n", i, j, costs[i][j], reference[i][j])
			}
		}
	}
}
