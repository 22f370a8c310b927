package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/qsim/sim/scenario"
)

var (
	// CLI flags shared by all subcommands
	logLevel     string // Log verbosity level
	scenarioPath string // Path to the scenario YAML

	// Scenario overrides; applied only when the flag is set explicitly
	seed         int64 // Master seed
	replications int   // Number of replications
	workers      int   // Concurrent replications (0 = NumCPU)
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "qsim",
	Short: "Monte Carlo simulator for multi-station service queues",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// Execute runs the CLI root command. An interrupt cancels a running batch
// between replications.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// loadScenario reads --config and applies explicitly set override flags.
func loadScenario(cmd *cobra.Command) *scenario.Scenario {
	if scenarioPath == "" {
		logrus.Fatalf("--config is required")
	}
	sc, err := scenario.LoadScenario(scenarioPath)
	if err != nil {
		logrus.Fatalf("Failed to load scenario: %v", err)
	}
	applyOverrides(cmd, sc)
	if err := sc.Validate(); err != nil {
		logrus.Fatalf("Invalid scenario %s: %v", scenarioPath, err)
	}
	return sc
}

// applyOverrides copies flag values into sc only for flags the user set,
// so scenario values survive flag defaults.
func applyOverrides(cmd *cobra.Command, sc *scenario.Scenario) {
	flags := cmd.Flags()
	if flags.Changed("seed") {
		sc.Seed = seed
	}
	if flags.Changed("replications") {
		sc.Replications = replications
	}
	if flags.Changed("workers") {
		sc.Workers = workers
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVarP(&scenarioPath, "config", "c", "", "Path to scenario YAML")

	for _, c := range []*cobra.Command{runCmd, replicateCmd, compareCmd} {
		c.Flags().Int64Var(&seed, "seed", 42, "Master seed (overrides the scenario seed)")
		rootCmd.AddCommand(c)
	}
	for _, c := range []*cobra.Command{runCmd, compareCmd} {
		c.Flags().IntVar(&replications, "replications", 100, "Number of replications (overrides the scenario)")
		c.Flags().IntVar(&workers, "workers", 0, "Concurrent replications, 0 = NumCPU (overrides the scenario)")
	}
}
