package metrics

import (
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/adreport/internal/model"
)

// Dimension selects a grouping key from a CampaignRecord. The two bucket
// dimensions are derived from days_rn and cost at grouping time.
type Dimension string

const (
	DimPlatform         Dimension = "platform"
	DimAdType           Dimension = "ad_type"
	DimLocation         Dimension = "location"
	DimTargetAudience   Dimension = "target_audience"
	DimCampaignCategory Dimension = "campaign_category"
	DimDurationBucket   Dimension = "duration_bucket"
	DimBudgetRange      Dimension = "budget_range"
)

// Dimensions lists every grouping dimension.
var Dimensions = []Dimension{
	DimPlatform,
	DimAdType,
	DimLocation,
	DimTargetAudience,
	DimCampaignCategory,
	DimDurationBucket,
	DimBudgetRange,
}

// ExportDimensions is the column order of the dashboard export: one row per
// distinct combination of these six dimensions.
var ExportDimensions = []Dimension{
	DimPlatform,
	DimTargetAudience,
	DimLocation,
	DimAdType,
	DimDurationBucket,
	DimBudgetRange,
}

// Value returns the record's value for this dimension, applying the derived
// buckets where needed.
func (d Dimension) Value(r model.CampaignRecord) string {
	switch d {
	case DimPlatform:
		return r.Platform
	case DimAdType:
		return r.AdType
	case DimLocation:
		return r.Location
	case DimTargetAudience:
		return r.TargetAudience
	case DimCampaignCategory:
		return r.CampaignCategory
	case DimDurationBucket:
		return BucketDuration(r.DurationDays)
	case DimBudgetRange:
		return BucketBudget(r.Cost)
	default:
		return ""
	}
}

// ParseDimension converts a CLI/config string into a Dimension.
func ParseDimension(s string) (Dimension, error) {
	d := Dimension(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Dimensions {
		if d == known {
			return d, nil
		}
	}
	return "", eris.Errorf("metrics: unknown dimension %q", s)
}

// ParseDimensions converts a comma-separated list into dimensions.
func ParseDimensions(s string) ([]Dimension, error) {
	parts := strings.Split(s, ",")
	dims := make([]Dimension, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		d, err := ParseDimension(p)
		if err != nil {
			return nil, err
		}
		dims = append(dims, d)
	}
	if len(dims) == 0 {
		return nil, eris.New("metrics: no grouping dimensions given")
	}
	return dims, nil
}
