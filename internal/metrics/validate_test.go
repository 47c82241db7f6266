package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/adreport/internal/model"
)

func TestValidate_CleanDataset(t *testing.T) {
	records := []model.CampaignRecord{
		rec("1", "Facebook", "Video", 100, 10, 2, 50),
		rec("2", "Google Ads", "Search", 200, 30, 3, 70),
	}

	vr := Validate(records)
	assert.True(t, vr.Clean())
	assert.NoError(t, vr.Err())
	assert.Equal(t, 2, vr.Records)
}

func TestValidate_ReportsOneGroupPerDuplicateID(t *testing.T) {
	records := []model.CampaignRecord{
		rec("7", "Facebook", "Video", 100, 10, 2, 50),
		rec("8", "Google Ads", "Search", 200, 30, 3, 70),
		rec("7", "LinkedIn", "Image", 300, 15, 4, 20),
	}

	vr := Validate(records)
	assert.False(t, vr.Clean())
	require.Len(t, vr.Duplicates, 1)
	assert.Equal(t, "7", vr.Duplicates[0].ID)
	assert.Equal(t, 2, vr.Duplicates[0].Count)

	err := vr.Err()
	require.Error(t, err)
	var dup *DuplicateIDError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "7", dup.ID)
}

func TestValidate_ClicksExceedingImpressions(t *testing.T) {
	bad := rec("1", "Facebook", "Video", 10, 50, 2, 50)

	vr := Validate([]model.CampaignRecord{bad})
	require.Len(t, vr.Invalid, 1)
	assert.Equal(t, "clicks", vr.Invalid[0].Field)
	assert.Equal(t, "exceeds impressions", vr.Invalid[0].Reason)
	assert.Equal(t, 0, vr.Invalid[0].Index)
}

func TestValidate_MissingAndNegativeFields(t *testing.T) {
	bad := rec("1", "", "Video", 100, 10, 2, -5)
	bad.DurationDays = 0

	vr := Validate([]model.CampaignRecord{bad})
	require.NotEmpty(t, vr.Invalid)

	fields := make(map[string]bool)
	for _, issue := range vr.Invalid {
		fields[issue.Field] = true
	}
	assert.True(t, fields["platform"], "missing platform reported")
	assert.True(t, fields["cost"], "negative cost reported")
	assert.True(t, fields["days_rn"], "non-positive duration reported")
}

func TestValidate_DoesNotMutateInput(t *testing.T) {
	records := []model.CampaignRecord{
		rec("7", "Facebook", "Video", 100, 10, 2, 50),
		rec("7", "LinkedIn", "Image", 300, 15, 4, 20),
	}

	_ = Validate(records)
	assert.Len(t, records, 2, "validate never removes duplicates")
}

func TestDeduplicate_KeepsFirstOccurrence(t *testing.T) {
	first := rec("9", "Facebook", "Video", 100, 10, 2, 50)
	second := rec("9", "LinkedIn", "Image", 300, 15, 4, 20)
	other := rec("10", "Google Ads", "Search", 200, 30, 3, 70)

	records := []model.CampaignRecord{first, other, second}
	out, removed, err := Deduplicate(records, KeepLowestID)
	require.NoError(t, err)

	assert.Equal(t, 1, removed)
	require.Len(t, out, 2)
	assert.Equal(t, first, out[0], "the earlier row for id 9 survives")
	assert.Equal(t, other, out[1])
	assert.Len(t, records, 3, "input is untouched")
}

func TestDeduplicate_UnknownStrategy(t *testing.T) {
	_, _, err := Deduplicate(nil, "highest_signups")
	require.Error(t, err)
}

func TestCompareIDs(t *testing.T) {
	assert.Negative(t, CompareIDs("9", "10"), "numeric ids compare numerically")
	assert.Positive(t, CompareIDs("10", "9"))
	assert.Zero(t, CompareIDs("7", "7"))
	assert.Negative(t, CompareIDs("abc", "abd"), "non-numeric ids compare lexicographically")
}
