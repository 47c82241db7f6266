package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/adreport/internal/loader"
	"github.com/sells-group/adreport/internal/metrics"
	"github.com/sells-group/adreport/internal/model"
	"github.com/sells-group/adreport/internal/report"
)

var (
	aggInput   string
	aggBy      string
	aggFilter  string
	aggSort    string
	aggAsc     bool
	aggLimit   int
	aggFormat  string
	aggOutput  string
	aggWorkers int
)

var aggregateCmd = &cobra.Command{
	Use:   "aggregate",
	Short: "Group campaigns by dimensions and compute ratio metrics",
	Long: `Groups the dataset by one or more dimensions and computes campaign count,
average cost, impression/click/signup totals, CTR, signup rate, and cost
ratios per group.

Dimensions: platform, ad_type, location, target_audience, campaign_category,
duration_bucket, budget_range.

Examples:
  adreport aggregate --input campaigns.csv --by platform
  adreport aggregate --input campaigns.csv --by platform,ad_type --filter rates --sort ctr_pct
  adreport aggregate --input campaigns.csv --by budget_range --filter signups --format csv --output out.csv`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		records, err := loadRecords(cmd, aggInput)
		if err != nil {
			return err
		}

		dims, err := metrics.ParseDimensions(aggBy)
		if err != nil {
			return eris.Wrap(err, "aggregate: parse dimensions")
		}

		opts, err := buildOptions(aggFilter, aggSort, aggAsc, aggLimit)
		if err != nil {
			return err
		}

		workers := aggWorkers
		if workers == 0 {
			workers = cfg.Report.Workers
		}

		var rows []metrics.AggregateRow
		if workers > 1 {
			rows, err = metrics.AggregateParallel(ctx, records, dims, opts, workers)
		} else {
			rows, err = metrics.Aggregate(records, dims, opts)
		}
		if err != nil {
			return eris.Wrap(err, "aggregate")
		}

		zap.L().Info("aggregation complete",
			zap.Int("records", len(records)),
			zap.Int("groups", len(rows)),
			zap.String("by", aggBy),
		)

		return writeRows(dims, rows, aggFormat, outputPath(aggOutput))
	},
}

// loadRecords reads the dataset from --input, falling back to the configured
// input path.
func loadRecords(cmd *cobra.Command, path string) ([]model.CampaignRecord, error) {
	if path == "" {
		path = cfg.Input.Path
	}
	if path == "" {
		return nil, eris.New("dataset path is required (--input or ADREPORT_INPUT_PATH)")
	}

	records, err := loader.Load(cmd.Context(), path, loader.XLSXOptions{SheetName: cfg.Input.Sheet})
	if err != nil {
		return nil, eris.Wrap(err, "load dataset")
	}

	zap.L().Debug("dataset loaded", zap.String("path", path), zap.Int("records", len(records)))
	return records, nil
}

// buildOptions assembles aggregation options from CLI flags.
func buildOptions(filter, sortBy string, asc bool, limit int) (metrics.Options, error) {
	opts := metrics.Options{Ascending: asc, Limit: limit}

	switch filter {
	case "", "none":
		opts.Filter = nil
	case "rates":
		opts.Filter = metrics.FilterRates
	case "signups":
		opts.Filter = metrics.FilterSignups
	default:
		return metrics.Options{}, eris.Errorf("unknown filter %q (want rates, signups, or none)", filter)
	}

	if sortBy != "" {
		f, err := metrics.ParseSortField(sortBy)
		if err != nil {
			return metrics.Options{}, err
		}
		opts.SortBy = f
	}
	return opts, nil
}

// writeRows renders rows in the requested format to stdout or --output.
func writeRows(dims []metrics.Dimension, rows []metrics.AggregateRow, format, output string) error {
	switch format {
	case "", "table":
		fmt.Print(report.FormatTable(dims, rows))
		return nil
	case "csv":
		if output == "" {
			return eris.New("--output is required with --format csv")
		}
		return report.ExportCSV(dims, rows, output)
	case "json":
		b, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return eris.Wrap(err, "encode json")
		}
		if output == "" {
			fmt.Println(string(b))
			return nil
		}
		return os.WriteFile(output, append(b, '\n'), 0o644)
	default:
		return eris.Errorf("unknown format %q (want table, csv, or json)", format)
	}
}

func init() {
	aggregateCmd.Flags().StringVar(&aggInput, "input", "", "path to the dataset (.csv or .xlsx)")
	aggregateCmd.Flags().StringVar(&aggBy, "by", "", "comma-separated grouping dimensions (required)")
	aggregateCmd.Flags().StringVar(&aggFilter, "filter", "none", "record filter: rates, signups, or none")
	aggregateCmd.Flags().StringVar(&aggSort, "sort", string(metrics.SortTotalSignups), "sort field")
	aggregateCmd.Flags().BoolVar(&aggAsc, "asc", false, "sort ascending instead of descending")
	aggregateCmd.Flags().IntVar(&aggLimit, "limit", 0, "limit the number of groups (0 = all)")
	aggregateCmd.Flags().StringVar(&aggFormat, "format", "table", "output format: table, csv, or json")
	aggregateCmd.Flags().StringVar(&aggOutput, "output", "", "output path (stdout for table/json when empty)")
	aggregateCmd.Flags().IntVar(&aggWorkers, "workers", 0, "parallel reduce workers (0 = config, 1 = sequential)")
	_ = aggregateCmd.MarkFlagRequired("by")
	rootCmd.AddCommand(aggregateCmd)
}
