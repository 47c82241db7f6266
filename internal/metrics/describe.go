package metrics

import (
	"math"

	"github.com/rotisserie/eris"

	"github.com/sells-group/adreport/internal/model"
)

// Field names a numeric CampaignRecord field usable with Describe.
type Field string

const (
	FieldCost        Field = "cost"
	FieldImpressions Field = "impressions"
	FieldClicks      Field = "clicks"
	FieldSignups     Field = "signups"
	FieldDuration    Field = "days_rn"
)

// Fields lists every field Describe accepts.
var Fields = []Field{FieldCost, FieldImpressions, FieldClicks, FieldSignups, FieldDuration}

// Summary holds descriptive statistics for one numeric field.
type Summary struct {
	Field Field   `json:"field"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Avg   float64 `json:"avg"` // 2 decimals for cost, nearest integer otherwise
	Count int     `json:"count"`
}

// Describe computes min/max/avg/count for one numeric field. An empty record
// set is an explicit ErrEmptyInput, not a silent NULL.
func Describe(records []model.CampaignRecord, field Field) (Summary, error) {
	if len(records) == 0 {
		return Summary{}, ErrEmptyInput
	}

	first, err := fieldValue(records[0], field)
	if err != nil {
		return Summary{}, err
	}

	s := Summary{Field: field, Min: first, Max: first, Count: len(records)}
	sum := 0.0
	for _, r := range records {
		v, err := fieldValue(r, field)
		if err != nil {
			return Summary{}, err
		}
		sum += v
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}

	avg := sum / float64(len(records))
	if field == FieldCost {
		s.Avg = round2(avg)
	} else {
		s.Avg = math.Round(avg)
	}
	return s, nil
}

func fieldValue(r model.CampaignRecord, field Field) (float64, error) {
	switch field {
	case FieldCost:
		return r.Cost, nil
	case FieldImpressions:
		return float64(r.Impressions), nil
	case FieldClicks:
		return float64(r.Clicks), nil
	case FieldSignups:
		return float64(r.Signups), nil
	case FieldDuration:
		return float64(r.DurationDays), nil
	default:
		return 0, eris.Errorf("metrics: unknown field %q", field)
	}
}
