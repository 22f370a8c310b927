package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/qsim/sim"
	"github.com/inference-sim/qsim/sim/analysis"
	"github.com/inference-sim/qsim/sim/export"
	"github.com/inference-sim/qsim/sim/scenario"
	"github.com/inference-sim/qsim/sim/variate"
)

var (
	matrixOutPath string // Arrow IPC output for the exit matrix
	showBands     bool   // Print percentile bands
	bandRows      int    // Max customer rows in the band table
)

// runCmd executes a Monte Carlo batch using the scenario plus flag overrides
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a Monte Carlo batch and summarize exit-time percentile bands",
	Run: func(cmd *cobra.Command, args []string) {
		sc := loadScenario(cmd)
		logrus.Infof("Starting %d replications of %d customers (seed=%d)", sc.Replications, sc.Customers, sc.Seed)

		result, err := runBatch(cmd.Context(), sc)
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}

		if matrixOutPath != "" {
			if err := writeMatrixFile(matrixOutPath, result.Exits); err != nil {
				logrus.Fatalf("Failed to export exit matrix: %v", err)
			}
			logrus.Infof("Wrote %d x %d exit matrix to %s", result.Exits.Customers(), result.Exits.Replications(), matrixOutPath)
		}

		fmt.Printf("Replications: %d (%d skipped), customers: %d, elapsed: %v\n",
			result.Exits.Replications(), len(result.Skipped), result.Exits.Customers(), result.Elapsed)
		if showBands {
			fmt.Print(FormatBands(analysis.Bands(result.Exits), bandRows))
		}
	},
}

// runBatch runs the scenario's Monte Carlo batch with seed-derived streams.
func runBatch(ctx context.Context, sc *scenario.Scenario) (*sim.MonteCarloResult, error) {
	cfg, err := sc.MonteCarloConfig()
	if err != nil {
		return nil, err
	}
	return sim.RunMonteCarlo(ctx, cfg, variate.StreamFactory(sc.Key()))
}

func writeMatrixFile(path string, m *sim.ExitMatrix) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := export.WriteExitMatrix(file, m); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

func init() {
	runCmd.Flags().StringVarP(&matrixOutPath, "out", "o", "", "Write the exit matrix as an Arrow IPC file")
	runCmd.Flags().BoolVar(&showBands, "bands", true, "Print per-customer percentile bands")
	runCmd.Flags().IntVar(&bandRows, "band-rows", 20, "Max customer rows in the band table (0 = all)")
}
