//go:build !integration

package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/adreport/internal/config"
)

func TestExportCmd_Metadata(t *testing.T) {
	assert.Equal(t, "export", exportCmd.Use)
	assert.NotEmpty(t, exportCmd.Short)
	require.NotNil(t, exportCmd.Flags().Lookup("output"))
	require.NotNil(t, exportCmd.Flags().Lookup("format"))
}

func TestExportCmd_WritesCSV(t *testing.T) {
	cfg = &config.Config{}
	exportCmd.SetContext(context.Background())

	exportInput = writeTestCSV(t)
	exportOutput = filepath.Join(t.TempDir(), "export.csv")
	exportFormat = "csv"

	require.NoError(t, exportCmd.RunE(exportCmd, nil))

	b, err := os.ReadFile(exportOutput)
	require.NoError(t, err)
	assert.Contains(t, string(b), "platform,target_audience,location,ad_type,duration_bucket,budget_range")
}

func TestExportCmd_UnknownFormat(t *testing.T) {
	cfg = &config.Config{}
	exportCmd.SetContext(context.Background())

	exportInput = writeTestCSV(t)
	exportOutput = filepath.Join(t.TempDir(), "export.bin")
	exportFormat = "parquet"

	err := exportCmd.RunE(exportCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown export format")
}

func TestValidateCmd_CleanAndDirty(t *testing.T) {
	cfg = &config.Config{}
	validateCmd.SetContext(context.Background())

	validateInput = writeTestCSV(t)
	require.NoError(t, validateCmd.RunE(validateCmd, nil))

	dirty := testCSV + "1,Awareness,50,Facebook,100,10,14,2,Video,Adults,Austin\n"
	path := filepath.Join(t.TempDir(), "dirty.csv")
	require.NoError(t, os.WriteFile(path, []byte(dirty), 0o644))

	validateInput = path
	err := validateCmd.RunE(validateCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestDedupeCmd_WritesDedupedCSV(t *testing.T) {
	cfg = &config.Config{}
	dedupeCmd.SetContext(context.Background())

	dirty := testCSV + "1,Awareness,50,Facebook,100,10,14,2,Video,Adults,Austin\n"
	in := filepath.Join(t.TempDir(), "dirty.csv")
	require.NoError(t, os.WriteFile(in, []byte(dirty), 0o644))

	dedupeInput = in
	dedupeOutput = filepath.Join(t.TempDir(), "clean.csv")
	require.NoError(t, dedupeCmd.RunE(dedupeCmd, nil))

	b, err := os.ReadFile(dedupeOutput)
	require.NoError(t, err)
	// Header plus two unique records.
	assert.Len(t, strings.Split(strings.TrimSpace(string(b)), "\n"), 3)
}
