package metrics

import (
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/sells-group/adreport/internal/model"
)

// DuplicateGroup is one id shared by multiple records.
type DuplicateGroup struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

// ValidationReport is the outcome of Validate. It reports findings without
// correcting anything; deduplication is a separate, explicit call.
type ValidationReport struct {
	Records    int                   `json:"records"`
	Duplicates []DuplicateGroup      `json:"duplicates,omitempty"`
	Invalid    []*InvalidRecordError `json:"invalid,omitempty"`
}

// Clean reports whether the dataset passed every check.
func (r *ValidationReport) Clean() bool {
	return len(r.Duplicates) == 0 && len(r.Invalid) == 0
}

// Err returns nil for a clean dataset, otherwise an error summarizing the
// findings. The first duplicate, if any, is attached as a DuplicateIDError.
func (r *ValidationReport) Err() error {
	if r.Clean() {
		return nil
	}
	if len(r.Duplicates) > 0 {
		d := r.Duplicates[0]
		return eris.Wrapf(&DuplicateIDError{ID: d.ID, Count: d.Count},
			"metrics: validation failed (%d duplicate ids, %d invalid records)",
			len(r.Duplicates), len(r.Invalid))
	}
	return eris.Wrapf(r.Invalid[0],
		"metrics: validation failed (%d invalid records)", len(r.Invalid))
}

// Validate checks the dataset invariants without mutating the input: unique
// ids, no missing categorical values, non-negative numerics, clicks within
// impressions, positive duration. Duplicate groups are reported in
// first-encountered order.
func Validate(records []model.CampaignRecord) *ValidationReport {
	report := &ValidationReport{Records: len(records)}

	counts := make(map[string]int, len(records))
	for _, r := range records {
		counts[r.ID]++
	}
	reported := make(map[string]bool)
	for _, r := range records {
		if counts[r.ID] > 1 && !reported[r.ID] {
			reported[r.ID] = true
			report.Duplicates = append(report.Duplicates, DuplicateGroup{ID: r.ID, Count: counts[r.ID]})
		}
	}

	for i, r := range records {
		report.Invalid = append(report.Invalid, checkRecord(i, r)...)
	}
	return report
}

// checkRecord returns every invariant violation for one record.
func checkRecord(idx int, r model.CampaignRecord) []*InvalidRecordError {
	var issues []*InvalidRecordError
	add := func(field, reason string) {
		issues = append(issues, &InvalidRecordError{Index: idx, ID: r.ID, Field: field, Reason: reason})
	}

	if r.ID == "" {
		add("id", "is missing")
	}
	categoricals := []struct {
		field string
		value string
	}{
		{"campaign_category", r.CampaignCategory},
		{"platform", r.Platform},
		{"ad_type", r.AdType},
		{"target_audience", r.TargetAudience},
		{"location", r.Location},
	}
	for _, c := range categoricals {
		if c.value == "" {
			add(c.field, "is missing")
		}
	}
	if r.Cost < 0 {
		add("cost", "is negative")
	}
	if r.Impressions < 0 {
		add("impressions", "is negative")
	}
	if r.Clicks < 0 {
		add("clicks", "is negative")
	}
	if r.Signups < 0 {
		add("signups", "is negative")
	}
	if r.Clicks > r.Impressions {
		add("clicks", "exceeds impressions")
	}
	if r.DurationDays <= 0 {
		add("days_rn", "is not positive")
	}
	return issues
}

// KeepStrategy selects which record survives deduplication.
type KeepStrategy string

// KeepLowestID keeps the record with the lowest row position among those
// sharing an id, the in-memory analog of keeping the lowest auto-increment
// row identifier.
const KeepLowestID KeepStrategy = "lowest_id"

// Deduplicate returns a copy of records with duplicate ids collapsed per the
// strategy, plus the number of records removed. The input is never mutated
// and deduplication is never performed implicitly by Validate or Aggregate.
func Deduplicate(records []model.CampaignRecord, keep KeepStrategy) ([]model.CampaignRecord, int, error) {
	if keep != KeepLowestID {
		return nil, 0, eris.Errorf("metrics: unknown keep strategy %q", keep)
	}

	out := make([]model.CampaignRecord, 0, len(records))
	seen := make(map[string]bool, len(records))
	for _, r := range records {
		if seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		out = append(out, r)
	}
	return out, len(records) - len(out), nil
}

// CompareIDs orders two record ids, numerically when both parse as integers
// and lexicographically otherwise. Exposed for callers that need a stable id
// ordering for display.
func CompareIDs(a, b string) int {
	ai, aErr := strconv.ParseInt(a, 10, 64)
	bi, bErr := strconv.ParseInt(b, 10, 64)
	if aErr == nil && bErr == nil {
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		default:
			return 0
		}
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
