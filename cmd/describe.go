package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/adreport/internal/metrics"
	"github.com/sells-group/adreport/internal/report"
)

var (
	describeInput string
	describeField string
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Print descriptive statistics for a numeric field",
	RunE: func(cmd *cobra.Command, _ []string) error {
		records, err := loadRecords(cmd, describeInput)
		if err != nil {
			return err
		}

		fields := metrics.Fields
		if describeField != "" {
			fields = []metrics.Field{metrics.Field(describeField)}
		}

		for _, f := range fields {
			summary, err := metrics.Describe(records, f)
			if err != nil {
				return eris.Wrapf(err, "describe %s", f)
			}
			fmt.Println(report.FormatSummary(summary))
		}
		return nil
	},
}

func init() {
	describeCmd.Flags().StringVar(&describeInput, "input", "", "path to the dataset (.csv or .xlsx)")
	describeCmd.Flags().StringVar(&describeField, "field", "", "field to describe (default: all numeric fields)")
	rootCmd.AddCommand(describeCmd)
}
