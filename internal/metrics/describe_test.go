package metrics

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/adreport/internal/model"
)

func TestDescribe_Cost(t *testing.T) {
	records := []model.CampaignRecord{
		rec("1", "Facebook", "Video", 100, 10, 2, 49.99),
		rec("2", "Facebook", "Video", 200, 30, 3, 70.005),
		rec("3", "Facebook", "Video", 300, 40, 4, 120),
	}

	s, err := Describe(records, FieldCost)
	require.NoError(t, err)
	assert.Equal(t, FieldCost, s.Field)
	assert.Equal(t, 49.99, s.Min)
	assert.Equal(t, 120.0, s.Max)
	assert.Equal(t, 80.0, s.Avg, "cost average rounds to 2 decimals")
	assert.Equal(t, 3, s.Count)
}

func TestDescribe_CountFieldRoundsToInteger(t *testing.T) {
	records := []model.CampaignRecord{
		rec("1", "Facebook", "Video", 100, 10, 2, 50),
		rec("2", "Facebook", "Video", 201, 30, 3, 70),
	}

	s, err := Describe(records, FieldImpressions)
	require.NoError(t, err)
	assert.Equal(t, 100.0, s.Min)
	assert.Equal(t, 201.0, s.Max)
	assert.Equal(t, 151.0, s.Avg, "count average rounds to nearest integer")
}

func TestDescribe_Duration(t *testing.T) {
	a := rec("1", "Facebook", "Video", 100, 10, 2, 50)
	a.DurationDays = 10
	b := rec("2", "Facebook", "Video", 200, 30, 3, 70)
	b.DurationDays = 61

	s, err := Describe([]model.CampaignRecord{a, b}, FieldDuration)
	require.NoError(t, err)
	assert.Equal(t, 10.0, s.Min)
	assert.Equal(t, 61.0, s.Max)
	assert.Equal(t, 36.0, s.Avg)
}

func TestDescribe_EmptyInput(t *testing.T) {
	_, err := Describe(nil, FieldCost)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrEmptyInput))
}

func TestDescribe_UnknownField(t *testing.T) {
	records := []model.CampaignRecord{rec("1", "Facebook", "Video", 100, 10, 2, 50)}
	_, err := Describe(records, "budget")
	require.Error(t, err)
}
