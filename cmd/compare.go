package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/qsim/sim"
	"github.com/inference-sim/qsim/sim/analysis"
	"github.com/inference-sim/qsim/sim/export"
)

var (
	observedPath string // CSV of an observed case
	perCustomer  bool   // Print every customer's z-score
)

// compareCmd scores an observed case against a simulated batch
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Score an observed case's exit times against a simulated batch (mean z-score)",
	Run: func(cmd *cobra.Command, args []string) {
		if observedPath == "" {
			logrus.Fatalf("--observed is required")
		}
		sc := loadScenario(cmd)
		observed, err := loadObservedExits(observedPath, sc.SortByExit == nil || *sc.SortByExit)
		if err != nil {
			logrus.Fatalf("Failed to load observed case: %v", err)
		}

		result, err := runBatch(cmd.Context(), sc)
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}

		z, err := analysis.ZScores(result.Exits, observed)
		if err != nil {
			logrus.Fatalf("Comparison failed: %v", err)
		}
		score := analysis.MeanZ(z)
		if perCustomer {
			fmt.Print(FormatZScores(z))
		}
		fmt.Printf("Mean z-score: %.4f (%d customers, %d replications)\n", score, len(z), result.Exits.Replications())
	},
}

// loadObservedExits reads an observed record set and returns its exit
// column, exit-sorted when the simulation sorts its columns.
func loadObservedExits(path string, sortByExit bool) ([]float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	records, err := export.ReadRecordsCSV(file)
	if err != nil {
		return nil, err
	}
	if sortByExit {
		sim.SortByExit(records)
	}
	return sim.ExitTimes(records), nil
}

func init() {
	compareCmd.Flags().StringVar(&observedPath, "observed", "", "CSV of the observed case (needs an exit column)")
	compareCmd.Flags().BoolVar(&perCustomer, "per-customer", false, "Print each customer's z-score")
}
