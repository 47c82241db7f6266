package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/adreport/internal/metrics"
	"github.com/sells-group/adreport/internal/report"
)

var (
	exportInput  string
	exportOutput string
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the full dashboard export",
	Long: `Produces the dashboard handoff table: one row per distinct combination of
platform, target_audience, location, ad_type, duration_bucket, and
budget_range, with signup totals and the ratio metrics, restricted to
campaigns with clicks and signups and ranked by total signups.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		records, err := loadRecords(cmd, exportInput)
		if err != nil {
			return err
		}

		rows, err := metrics.Aggregate(records, metrics.ExportDimensions, metrics.Options{
			Filter: metrics.FilterRates,
			SortBy: metrics.SortTotalSignups,
		})
		if err != nil {
			return eris.Wrap(err, "export: aggregate")
		}

		switch exportFormat {
		case "", "csv":
			err = report.ExportCSV(metrics.ExportDimensions, rows, outputPath(exportOutput))
		case "xlsx":
			err = report.ExportXLSX(metrics.ExportDimensions, rows, outputPath(exportOutput))
		default:
			return eris.Errorf("unknown export format %q (want csv or xlsx)", exportFormat)
		}
		if err != nil {
			return eris.Wrap(err, "export")
		}

		zap.L().Info("export complete",
			zap.Int("rows", len(rows)),
			zap.String("output", exportOutput),
			zap.String("format", exportFormat),
		)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportInput, "input", "", "path to the dataset (.csv or .xlsx)")
	exportCmd.Flags().StringVar(&exportOutput, "output", "", "export file path (required)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "export format: csv or xlsx")
	_ = exportCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(exportCmd)
}
