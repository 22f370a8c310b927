package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/qsim/sim"
	"github.com/inference-sim/qsim/sim/export"
	"github.com/inference-sim/qsim/sim/scenario"
	"github.com/inference-sim/qsim/sim/variate"
)

var (
	recordsOutPath string // CSV output for a single replication
	replicaIndex   int    // Which replication's streams to use
)

// replicateCmd runs a single replication and prints or exports its records
var replicateCmd = &cobra.Command{
	Use:   "replicate",
	Short: "Run one replication and emit its per-customer service records",
	Run: func(cmd *cobra.Command, args []string) {
		sc := loadScenario(cmd)
		records, err := runSingle(sc, replicaIndex)
		if err != nil {
			logrus.Fatalf("Replication %d failed: %v", replicaIndex, err)
		}

		out := os.Stdout
		if recordsOutPath != "" {
			file, err := os.Create(recordsOutPath)
			if err != nil {
				logrus.Fatalf("Failed to create %s: %v", recordsOutPath, err)
			}
			defer func() {
				if closeErr := file.Close(); closeErr != nil {
					logrus.Fatalf("Error closing file %s: %v", recordsOutPath, closeErr)
				}
			}()
			out = file
		}
		if err := export.WriteRecordsCSV(out, records); err != nil {
			logrus.Fatalf("Failed to write records: %v", err)
		}
	},
}

// runSingle runs replication r of the scenario with the same streams it
// would get inside a batch.
func runSingle(sc *scenario.Scenario, r int) ([]sim.ServiceRecord, error) {
	if r < 0 {
		return nil, fmt.Errorf("replication index must be non-negative, got %d: %w", r, sim.ErrInvalidParameters)
	}
	cfg, err := sc.QueueConfig()
	if err != nil {
		return nil, err
	}
	return sim.SimulateReplication(cfg, variate.StreamFactory(sc.Key())(r))
}

func init() {
	replicateCmd.Flags().StringVarP(&recordsOutPath, "out", "o", "", "Write records CSV to this file instead of stdout")
	replicateCmd.Flags().IntVar(&replicaIndex, "replication", 0, "Replication index whose streams to use")
}
