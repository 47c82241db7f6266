package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/adreport/internal/loader"
	"github.com/sells-group/adreport/internal/metrics"
)

var (
	dedupeInput  string
	dedupeOutput string
)

var dedupeCmd = &cobra.Command{
	Use:   "dedupe",
	Short: "Write a copy of the dataset with duplicate ids removed",
	Long: `Removes records whose id already appeared earlier in the dataset, keeping
the first occurrence. Deduplication only ever happens through this command;
validate and aggregate never drop records.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		records, err := loadRecords(cmd, dedupeInput)
		if err != nil {
			return err
		}

		deduped, removed, err := metrics.Deduplicate(records, metrics.KeepLowestID)
		if err != nil {
			return eris.Wrap(err, "dedupe")
		}

		if err := loader.WriteCSV(deduped, outputPath(dedupeOutput)); err != nil {
			return eris.Wrap(err, "dedupe: write output")
		}

		zap.L().Info("dedupe complete",
			zap.Int("records", len(records)),
			zap.Int("removed", removed),
			zap.String("output", dedupeOutput),
		)
		return nil
	},
}

func init() {
	dedupeCmd.Flags().StringVar(&dedupeInput, "input", "", "path to the dataset (.csv or .xlsx)")
	dedupeCmd.Flags().StringVar(&dedupeOutput, "output", "", "path for the deduplicated CSV (required)")
	_ = dedupeCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(dedupeCmd)
}
