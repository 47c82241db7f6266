// Package loader reads campaign datasets from the file formats the analysis
// uses (CSV and XLSX) into typed records.
package loader

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"

	"github.com/sells-group/adreport/internal/metrics"
	"github.com/sells-group/adreport/internal/model"
)

// ReadCSV decodes campaign records from r. Column mapping follows the csv
// tags on model.CampaignRecord; the first row must be the header. A row that
// fails to parse is reported as an InvalidRecordError with its position.
func ReadCSV(ctx context.Context, r io.Reader) ([]model.CampaignRecord, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	dec, err := csvutil.NewDecoder(cr)
	if err != nil {
		return nil, eris.Wrap(err, "loader: read csv header")
	}

	var out []model.CampaignRecord
	for i := 0; ; i++ {
		if err := ctx.Err(); err != nil {
			return nil, eris.Wrap(err, "loader: context cancelled")
		}

		var rec model.CampaignRecord
		if err := dec.Decode(&rec); err == io.EOF {
			break
		} else if err != nil {
			return nil, eris.Wrap(&metrics.InvalidRecordError{
				Index:  i,
				ID:     rec.ID,
				Field:  "row",
				Reason: err.Error(),
			}, "loader: decode csv row")
		}
		out = append(out, rec)
	}
	return out, nil
}

// WriteCSV encodes campaign records to path with the same header the loader
// reads, so a deduplicated dataset round-trips.
func WriteCSV(records []model.CampaignRecord, path string) error {
	b, err := csvutil.Marshal(records)
	if err != nil {
		return eris.Wrap(err, "loader: encode csv")
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return eris.Wrap(err, "loader: write csv")
	}
	return nil
}

// Load reads a campaign dataset from path, dispatching on the file extension
// (.csv or .xlsx). opts only applies to xlsx inputs.
func Load(ctx context.Context, path string, opts XLSXOptions) ([]model.CampaignRecord, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, eris.Wrapf(err, "loader: open %s", path)
		}
		defer f.Close() //nolint:errcheck
		return ReadCSV(ctx, f)
	case ".xlsx":
		return ReadXLSX(ctx, path, opts)
	default:
		return nil, eris.Errorf("loader: unsupported dataset format %q", filepath.Ext(path))
	}
}
