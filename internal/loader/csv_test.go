package loader

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/adreport/internal/metrics"
	"github.com/sells-group/adreport/internal/model"
)

const sampleCSV = `id,campaign_category,cost,platform,impressions,clicks,days_rn,signups,ad_type,target_audience,location
1,Awareness,50.25,Facebook,100,10,14,2,Video,Adults,Austin
2,Conversion,70,Google Ads,200,30,45,3,Search,Students,Dallas
`

func TestReadCSV_DecodesRecords(t *testing.T) {
	records, err := ReadCSV(context.Background(), strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, model.CampaignRecord{
		ID:               "1",
		CampaignCategory: "Awareness",
		Cost:             50.25,
		Platform:         "Facebook",
		Impressions:      100,
		Clicks:           10,
		DurationDays:     14,
		Signups:          2,
		AdType:           "Video",
		TargetAudience:   "Adults",
		Location:         "Austin",
	}, records[0])
	assert.Equal(t, "Google Ads", records[1].Platform)
	assert.Equal(t, 45, records[1].DurationDays)
}

func TestReadCSV_BadNumericIsInvalidRecord(t *testing.T) {
	bad := `id,campaign_category,cost,platform,impressions,clicks,days_rn,signups,ad_type,target_audience,location
1,Awareness,not-a-number,Facebook,100,10,14,2,Video,Adults,Austin
`
	_, err := ReadCSV(context.Background(), strings.NewReader(bad))
	require.Error(t, err)

	var invalid *metrics.InvalidRecordError
	assert.ErrorAs(t, err, &invalid)
}

func TestReadCSV_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ReadCSV(ctx, strings.NewReader(sampleCSV))
	require.Error(t, err)
}

func TestWriteCSV_RoundTrips(t *testing.T) {
	records, err := ReadCSV(context.Background(), strings.NewReader(sampleCSV))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteCSV(records, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck

	reloaded, err := ReadCSV(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, records, reloaded)
}

func TestLoad_DispatchesOnExtension(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "campaigns.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(sampleCSV), 0o644))

	records, err := Load(context.Background(), csvPath, XLSXOptions{})
	require.NoError(t, err)
	assert.Len(t, records, 2)

	_, err = Load(context.Background(), filepath.Join(dir, "campaigns.parquet"), XLSXOptions{})
	require.Error(t, err)
}
