package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
	logPath    string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dvsim",
	Short: "Distance vector routing simulator",
	Long: `dvsim runs a distance vector routing protocol with poison reverse on a simulated network.
Every node only talks to its neighbours, and packets are delayed randomly on a virtual clock.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddGroup(&cobra.Group{
		ID:    "sim",
		Title: "Simulation Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "cfg",
		Title: "Topology Commands",
	})
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "topology file (yaml or toml), uses the built-in four node network when empty")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&logPath, "log-path", "", "also write logs to this file")
}
