package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/adreport/internal/metrics"
)

var validateInput string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the dataset for duplicate ids and invalid records",
	Long: `Runs the dataset invariant checks: unique ids, no missing fields, no
negative numerics, clicks within impressions, positive duration. Reports
findings without changing anything; use "adreport dedupe" to remove
duplicates explicitly. Exits non-zero when findings exist.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		records, err := loadRecords(cmd, validateInput)
		if err != nil {
			return err
		}

		vr := metrics.Validate(records)

		fmt.Printf("records: %d\n", vr.Records)
		fmt.Printf("duplicate ids: %d\n", len(vr.Duplicates))
		for _, d := range vr.Duplicates {
			fmt.Printf("  id %s appears %d times\n", d.ID, d.Count)
		}
		fmt.Printf("invalid records: %d\n", len(vr.Invalid))
		for _, issue := range vr.Invalid {
			fmt.Printf("  %s\n", issue.Error())
		}

		if vr.Clean() {
			zap.L().Info("dataset is clean", zap.Int("records", vr.Records))
			return nil
		}
		return vr.Err()
	},
}

func init() {
	validateCmd.Flags().StringVar(&validateInput, "input", "", "path to the dataset (.csv or .xlsx)")
	rootCmd.AddCommand(validateCmd)
}
