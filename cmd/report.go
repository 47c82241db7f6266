package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/adreport/internal/report"
)

var (
	reportInput  string
	reportOutput string
	reportTopN   int
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate the narrative campaign performance report",
	RunE: func(cmd *cobra.Command, _ []string) error {
		records, err := loadRecords(cmd, reportInput)
		if err != nil {
			return err
		}

		topN := reportTopN
		if topN == 0 {
			topN = cfg.Report.TopSegments
		}

		md, err := report.BuildReport(records, topN)
		if err != nil {
			return eris.Wrap(err, "report")
		}

		if reportOutput == "" {
			fmt.Print(md)
			return nil
		}
		if err := os.WriteFile(outputPath(reportOutput), []byte(md), 0o644); err != nil {
			return eris.Wrap(err, "report: write output")
		}

		zap.L().Info("report written",
			zap.String("output", reportOutput),
			zap.Int("records", len(records)),
		)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportInput, "input", "", "path to the dataset (.csv or .xlsx)")
	reportCmd.Flags().StringVar(&reportOutput, "output", "", "report path (stdout when empty)")
	reportCmd.Flags().IntVar(&reportTopN, "top", 0, "segments per dimension (0 = config default)")
	rootCmd.AddCommand(reportCmd)
}
