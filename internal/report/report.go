package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/sells-group/adreport/internal/metrics"
	"github.com/sells-group/adreport/internal/model"
)

// narrativeDims are the dimensions the narrative report breaks down, in the
// order the sections appear.
var narrativeDims = []metrics.Dimension{
	metrics.DimPlatform,
	metrics.DimAdType,
	metrics.DimTargetAudience,
	metrics.DimLocation,
	metrics.DimCampaignCategory,
	metrics.DimDurationBucket,
	metrics.DimBudgetRange,
}

// BuildReport generates the markdown campaign-performance report: dataset
// summary, data-quality findings, and the top segments per dimension ranked
// by total signups. topN <= 0 defaults to 5.
func BuildReport(records []model.CampaignRecord, topN int) (string, error) {
	if topN <= 0 {
		topN = 5
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Campaign Performance Report\n")
	fmt.Fprintf(&b, "Run: %s\n", uuid.NewString())
	fmt.Fprintf(&b, "Generated: %s\n\n", time.Now().UTC().Format(time.RFC3339))

	// Dataset summary.
	b.WriteString("## Dataset\n")
	printer.Fprintf(&b, "- Records: %d\n", len(records))
	totals, err := metrics.Totals(records, nil)
	if err != nil {
		return "", eris.Wrap(err, "report: dataset totals")
	}
	printer.Fprintf(&b, "- Total impressions: %d\n", totals.TotalImpressions)
	printer.Fprintf(&b, "- Total clicks: %d\n", totals.TotalClicks)
	printer.Fprintf(&b, "- Total signups: %d\n", totals.TotalSignups)
	fmt.Fprintf(&b, "- Average cost: %.2f\n", totals.AvgCost)
	fmt.Fprintf(&b, "- Overall CTR: %s%%\n", totals.CTRPct)
	fmt.Fprintf(&b, "- Overall signup rate: %s%%\n", totals.SignupRatePct)
	fmt.Fprintf(&b, "- Cost per signup: %s\n\n", totals.CostPerSignup)

	writeDataQuality(&b, records)

	// Top segments per dimension, rates filter, signups descending.
	b.WriteString("## Top Segments\n")
	for _, dim := range narrativeDims {
		rows, err := metrics.Aggregate(records, []metrics.Dimension{dim}, metrics.Options{
			Filter: metrics.FilterRates,
			SortBy: metrics.SortTotalSignups,
			Limit:  topN,
		})
		if err != nil {
			return "", eris.Wrapf(err, "report: aggregate by %s", dim)
		}

		fmt.Fprintf(&b, "### By %s\n", dim)
		if len(rows) == 0 {
			b.WriteString("No campaigns with clicks and signups.\n\n")
			continue
		}
		for _, row := range rows {
			printer.Fprintf(&b, "- %s: %d signups", row.Key[0], row.TotalSignups)
			fmt.Fprintf(&b, " (CTR %s%%, signup rate %s%%, cost/signup %s)\n",
				row.CTRPct, row.SignupRatePct, row.CostPerSignup)
		}
		b.WriteString("\n")
	}

	return b.String(), nil
}

// writeDataQuality appends the validation findings section.
func writeDataQuality(b *strings.Builder, records []model.CampaignRecord) {
	vr := metrics.Validate(records)

	b.WriteString("## Data Quality\n")
	if vr.Clean() {
		b.WriteString("No duplicate ids or invalid records found.\n\n")
		return
	}

	if len(vr.Duplicates) > 0 {
		dups := make([]metrics.DuplicateGroup, len(vr.Duplicates))
		copy(dups, vr.Duplicates)
		sort.Slice(dups, func(i, j int) bool {
			return metrics.CompareIDs(dups[i].ID, dups[j].ID) < 0
		})
		fmt.Fprintf(b, "- Duplicate ids: %d\n", len(dups))
		for _, d := range dups {
			fmt.Fprintf(b, "  - id %s appears %d times\n", d.ID, d.Count)
		}
	}
	if len(vr.Invalid) > 0 {
		fmt.Fprintf(b, "- Invalid records: %d\n", len(vr.Invalid))
		for _, issue := range vr.Invalid {
			fmt.Fprintf(b, "  - %s\n", issue.Error())
		}
	}
	b.WriteString("\n")
}
