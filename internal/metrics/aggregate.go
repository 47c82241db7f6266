// Package metrics implements the deterministic campaign aggregation pipeline:
// grouped ratio metrics, derived buckets, descriptive statistics, and dataset
// validation. Every operation is a pure function over its input records.
package metrics

import (
	"math"
	"sort"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/adreport/internal/model"
)

// Filter decides whether a record participates in an aggregation. A nil
// filter keeps every record.
type Filter func(model.CampaignRecord) bool

// FilterRates keeps records usable for rate metrics. This is the filter the
// rate reports share: a campaign with no clicks or no signups contributes
// nothing to CTR or signup-rate comparisons.
func FilterRates(r model.CampaignRecord) bool {
	return r.Clicks > 0 && r.Signups > 0
}

// FilterSignups keeps records with at least one signup, used for budget-only
// segmentation.
func FilterSignups(r model.CampaignRecord) bool {
	return r.Signups > 0
}

// SortField names a numeric output field of AggregateRow.
type SortField string

const (
	SortCampaignCount    SortField = "campaign_count"
	SortAvgCost          SortField = "avg_cost"
	SortTotalImpressions SortField = "total_impressions"
	SortTotalClicks      SortField = "total_clicks"
	SortTotalSignups     SortField = "total_signups"
	SortCTRPct           SortField = "ctr_pct"
	SortSignupRatePct    SortField = "signup_rate_pct"
	SortCostPerSignup    SortField = "cost_per_signup"
	SortCostPerClick     SortField = "cost_per_click"
)

// SortFields lists every sortable output field.
var SortFields = []SortField{
	SortCampaignCount,
	SortAvgCost,
	SortTotalImpressions,
	SortTotalClicks,
	SortTotalSignups,
	SortCTRPct,
	SortSignupRatePct,
	SortCostPerSignup,
	SortCostPerClick,
}

// ParseSortField converts a CLI/config string into a SortField.
func ParseSortField(s string) (SortField, error) {
	f := SortField(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range SortFields {
		if f == known {
			return f, nil
		}
	}
	return "", eris.Errorf("metrics: unknown sort field %q", s)
}

// Options configure one Aggregate call.
type Options struct {
	Filter    Filter    // nil keeps every record
	SortBy    SortField // empty defaults to SortTotalSignups
	Ascending bool      // default is descending, matching the source reports
	Limit     int       // 0 = no limit
}

// AggregateRow is one group of the aggregation output.
type AggregateRow struct {
	Key              []string `json:"key"` // dimension values, ordered as the requested dims
	CampaignCount    int      `json:"campaign_count"`
	AvgCost          float64  `json:"avg_cost"`
	TotalImpressions int64    `json:"total_impressions"`
	TotalClicks      int64    `json:"total_clicks"`
	TotalSignups     int64    `json:"total_signups"`
	CTRPct           Ratio    `json:"ctr_pct"`
	SignupRatePct    Ratio    `json:"signup_rate_pct"`
	CostPerSignup    Ratio    `json:"cost_per_signup"`
	CostPerClick     Ratio    `json:"cost_per_click"`
}

// group accumulates the commutative sums for one key tuple. firstIdx is the
// input position of the group's first matching record and is the tie-break
// order of the sorted output.
type group struct {
	key         []string
	firstIdx    int
	count       int
	cost        float64
	impressions int64
	clicks      int64
	signups     int64
}

// keySep joins composite key parts; it cannot occur in categorical values.
const keySep = "\x1f"

// Aggregate groups records by one or more dimensions and computes the ratio
// metrics per group. Empty input produces empty output. The result is sorted
// by opts.SortBy (total_signups descending by default) with ties broken by
// the input position of each group's first matching record.
func Aggregate(records []model.CampaignRecord, dims []Dimension, opts Options) ([]AggregateRow, error) {
	if len(dims) == 0 {
		return nil, eris.New("metrics: at least one grouping dimension is required")
	}

	groups := reduce(records, 0, dims, opts.Filter)
	return finish(groups, opts)
}

// Totals computes the whole-dataset roll-up: one AggregateRow covering every
// record that passes the filter. Returns ErrEmptyInput when nothing matches.
func Totals(records []model.CampaignRecord, filter Filter) (AggregateRow, error) {
	g := group{}
	matched := false
	for _, r := range records {
		if filter != nil && !filter(r) {
			continue
		}
		matched = true
		g.count++
		g.cost += r.Cost
		g.impressions += r.Impressions
		g.clicks += r.Clicks
		g.signups += r.Signups
	}
	if !matched {
		return AggregateRow{}, ErrEmptyInput
	}
	return finalize(&g), nil
}

// reduce accumulates per-group sums over one slice of records. offset is the
// global input position of records[0], so partitioned reductions preserve the
// first-encountered order when merged.
func reduce(records []model.CampaignRecord, offset int, dims []Dimension, filter Filter) []*group {
	var ordered []*group
	index := make(map[string]*group)

	for i, r := range records {
		if filter != nil && !filter(r) {
			continue
		}

		parts := make([]string, len(dims))
		for j, d := range dims {
			parts[j] = d.Value(r)
		}
		key := strings.Join(parts, keySep)

		g, ok := index[key]
		if !ok {
			g = &group{key: parts, firstIdx: offset + i}
			index[key] = g
			ordered = append(ordered, g)
		}
		g.count++
		g.cost += r.Cost
		g.impressions += r.Impressions
		g.clicks += r.Clicks
		g.signups += r.Signups
	}

	return ordered
}

// finish turns accumulated groups into sorted, limited output rows.
func finish(groups []*group, opts Options) ([]AggregateRow, error) {
	sortBy := opts.SortBy
	if sortBy == "" {
		sortBy = SortTotalSignups
	}
	if _, err := ParseSortField(string(sortBy)); err != nil {
		return nil, err
	}

	// Tie-break order is the insertion order of each group's first record.
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].firstIdx < groups[j].firstIdx
	})

	rows := make([]AggregateRow, len(groups))
	for i, g := range groups {
		rows[i] = finalize(g)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		vi, oki := sortValue(rows[i], sortBy)
		vj, okj := sortValue(rows[j], sortBy)
		// Undefined ratios order after every defined value in either direction.
		if oki != okj {
			return oki
		}
		if !oki {
			return false
		}
		if opts.Ascending {
			return vi < vj
		}
		return vi > vj
	})

	if opts.Limit > 0 && opts.Limit < len(rows) {
		rows = rows[:opts.Limit]
	}
	return rows, nil
}

// finalize computes the output row for one group's sums.
func finalize(g *group) AggregateRow {
	return AggregateRow{
		Key:              g.key,
		CampaignCount:    g.count,
		AvgCost:          round2(g.cost / float64(g.count)),
		TotalImpressions: g.impressions,
		TotalClicks:      g.clicks,
		TotalSignups:     g.signups,
		CTRPct:           ratioOf(100*float64(g.clicks), float64(g.impressions)),
		SignupRatePct:    ratioOf(100*float64(g.signups), float64(g.clicks)),
		CostPerSignup:    ratioOf(g.cost, float64(g.signups)),
		CostPerClick:     ratioOf(g.cost, float64(g.clicks)),
	}
}

// ratioOf returns num/den rounded to two decimals, or the undefined sentinel
// when den is zero.
func ratioOf(num, den float64) Ratio {
	if den == 0 {
		return UndefinedRatio()
	}
	return DefinedRatio(round2(num / den))
}

// sortValue extracts the numeric sort key for a row. ok is false when the
// field is an undefined ratio.
func sortValue(row AggregateRow, field SortField) (float64, bool) {
	switch field {
	case SortCampaignCount:
		return float64(row.CampaignCount), true
	case SortAvgCost:
		return row.AvgCost, true
	case SortTotalImpressions:
		return float64(row.TotalImpressions), true
	case SortTotalClicks:
		return float64(row.TotalClicks), true
	case SortTotalSignups:
		return float64(row.TotalSignups), true
	case SortCTRPct:
		return ratioSortValue(row.CTRPct)
	case SortSignupRatePct:
		return ratioSortValue(row.SignupRatePct)
	case SortCostPerSignup:
		return ratioSortValue(row.CostPerSignup)
	case SortCostPerClick:
		return ratioSortValue(row.CostPerClick)
	default:
		return 0, false
	}
}

func ratioSortValue(r Ratio) (float64, bool) {
	v, err := r.Value()
	return v, err == nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
