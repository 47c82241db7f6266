package loader

import (
	"context"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/adreport/internal/metrics"
	"github.com/sells-group/adreport/internal/model"
)

// XLSXOptions configures the XLSX reader.
type XLSXOptions struct {
	SheetIndex int    // default 0
	SheetName  string // if set, overrides SheetIndex
}

// xlsxColumns maps header names to record fields; names match the csv tags
// on model.CampaignRecord.
var xlsxColumns = []string{
	"id",
	"campaign_category",
	"cost",
	"platform",
	"impressions",
	"clicks",
	"days_rn",
	"signups",
	"ad_type",
	"target_audience",
	"location",
}

// ReadXLSX reads campaign records from an xlsx workbook. The first row of the
// selected sheet must be the header.
func ReadXLSX(ctx context.Context, path string, opts XLSXOptions) ([]model.CampaignRecord, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "loader: open xlsx")
	}

	sheet, err := getSheet(f, opts)
	if err != nil {
		return nil, err
	}
	if len(sheet.Rows) == 0 {
		return nil, nil
	}

	header, err := headerIndex(rowToStrings(sheet.Rows[0]))
	if err != nil {
		return nil, err
	}

	var out []model.CampaignRecord
	for i, row := range sheet.Rows[1:] {
		if err := ctx.Err(); err != nil {
			return nil, eris.Wrap(err, "loader: context cancelled")
		}
		rec, err := recordFromRow(header, rowToStrings(row), i)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func getSheet(f *xlsx.File, opts XLSXOptions) (*xlsx.Sheet, error) {
	if opts.SheetName != "" {
		sheet, ok := f.Sheet[opts.SheetName]
		if !ok {
			return nil, eris.Errorf("loader: sheet %q not found", opts.SheetName)
		}
		return sheet, nil
	}

	if opts.SheetIndex >= len(f.Sheets) {
		return nil, eris.Errorf("loader: sheet index %d out of range (file has %d sheets)", opts.SheetIndex, len(f.Sheets))
	}
	return f.Sheets[opts.SheetIndex], nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}

// headerIndex maps each expected column name to its position in the header
// row, case-insensitively.
func headerIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range xlsxColumns {
		if _, ok := index[col]; !ok {
			return nil, eris.Errorf("loader: xlsx header is missing column %q", col)
		}
	}
	return index, nil
}

// recordFromRow parses one data row. idx is the zero-based data-row position
// used for error reporting.
func recordFromRow(header map[string]int, cells []string, idx int) (model.CampaignRecord, error) {
	cell := func(col string) string {
		j := header[col]
		if j >= len(cells) {
			return ""
		}
		return strings.TrimSpace(cells[j])
	}

	rec := model.CampaignRecord{
		ID:               cell("id"),
		CampaignCategory: cell("campaign_category"),
		Platform:         cell("platform"),
		AdType:           cell("ad_type"),
		TargetAudience:   cell("target_audience"),
		Location:         cell("location"),
	}

	var err error
	parseErr := func(field string, cause error) error {
		return eris.Wrap(&metrics.InvalidRecordError{
			Index:  idx,
			ID:     rec.ID,
			Field:  field,
			Reason: cause.Error(),
		}, "loader: parse xlsx row")
	}

	if rec.Cost, err = strconv.ParseFloat(cell("cost"), 64); err != nil {
		return model.CampaignRecord{}, parseErr("cost", err)
	}
	if rec.Impressions, err = strconv.ParseInt(cell("impressions"), 10, 64); err != nil {
		return model.CampaignRecord{}, parseErr("impressions", err)
	}
	if rec.Clicks, err = strconv.ParseInt(cell("clicks"), 10, 64); err != nil {
		return model.CampaignRecord{}, parseErr("clicks", err)
	}
	if rec.DurationDays, err = strconv.Atoi(cell("days_rn")); err != nil {
		return model.CampaignRecord{}, parseErr("days_rn", err)
	}
	if rec.Signups, err = strconv.ParseInt(cell("signups"), 10, 64); err != nil {
		return model.CampaignRecord{}, parseErr("signups", err)
	}
	return rec, nil
}
