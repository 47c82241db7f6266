// Package report renders aggregation results for humans (tables, markdown)
// and for the downstream dashboard (CSV/XLSX export).
package report

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/adreport/internal/metrics"
)

// metricColumns is the ordered set of metric output columns shared by the
// table renderer and both exporters.
var metricColumns = []string{
	"campaign_count",
	"avg_cost",
	"total_impressions",
	"total_clicks",
	"total_signups",
	"ctr_pct",
	"signup_rate_pct",
	"cost_per_signup",
	"cost_per_click",
}

// printer formats integer counts with thousands separators for display.
var printer = message.NewPrinter(language.English)

// FormatTable renders aggregate rows as an aligned text table. Undefined
// ratios render as "N/A".
func FormatTable(dims []metrics.Dimension, rows []metrics.AggregateRow) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)

	header := make([]string, 0, len(dims)+len(metricColumns))
	for _, d := range dims {
		header = append(header, string(d))
	}
	header = append(header, metricColumns...)
	fmt.Fprintln(w, strings.Join(header, "\t"))

	for _, row := range rows {
		cells := make([]string, 0, len(header))
		cells = append(cells, row.Key...)
		cells = append(cells,
			printer.Sprintf("%d", row.CampaignCount),
			fmt.Sprintf("%.2f", row.AvgCost),
			printer.Sprintf("%d", row.TotalImpressions),
			printer.Sprintf("%d", row.TotalClicks),
			printer.Sprintf("%d", row.TotalSignups),
			row.CTRPct.String(),
			row.SignupRatePct.String(),
			row.CostPerSignup.String(),
			row.CostPerClick.String(),
		)
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}

	_ = w.Flush()
	return b.String()
}

// FormatSummary renders one field summary as a single line.
func FormatSummary(s metrics.Summary) string {
	return fmt.Sprintf("%s: min=%g max=%g avg=%g count=%s",
		s.Field, s.Min, s.Max, s.Avg, printer.Sprintf("%d", s.Count))
}
