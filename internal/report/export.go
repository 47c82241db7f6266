package report

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/adreport/internal/metrics"
)

// ExportCSV writes aggregate rows to path as the dashboard handoff: one row
// per distinct dimension combination, dimension columns first, then the
// metric columns. Undefined ratios become empty cells, which dashboard tools
// read as missing rather than zero.
func ExportCSV(dims []metrics.Dimension, rows []metrics.AggregateRow, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "export: create csv")
	}
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(exportHeader(dims)); err != nil {
		return eris.Wrap(err, "export: write header")
	}
	for _, row := range rows {
		if err := w.Write(exportRow(row)); err != nil {
			return eris.Wrap(err, "export: write row")
		}
	}
	if err := w.Error(); err != nil {
		return eris.Wrap(err, "export: flush csv")
	}
	return nil
}

// ExportXLSX writes the same shape as ExportCSV into a single-sheet workbook.
func ExportXLSX(dims []metrics.Dimension, rows []metrics.AggregateRow, path string) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("export")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	hr := sheet.AddRow()
	for _, h := range exportHeader(dims) {
		hr.AddCell().SetString(h)
	}

	for _, row := range rows {
		xr := sheet.AddRow()
		for _, v := range row.Key {
			xr.AddCell().SetString(v)
		}
		xr.AddCell().SetInt(row.CampaignCount)
		xr.AddCell().SetFloat(row.AvgCost)
		xr.AddCell().SetInt64(row.TotalImpressions)
		xr.AddCell().SetInt64(row.TotalClicks)
		xr.AddCell().SetInt64(row.TotalSignups)
		for _, r := range []metrics.Ratio{row.CTRPct, row.SignupRatePct, row.CostPerSignup, row.CostPerClick} {
			cell := xr.AddCell()
			if v, err := r.Value(); err == nil {
				cell.SetFloat(v)
			}
		}
	}

	if err := f.Save(path); err != nil {
		return eris.Wrap(err, "export: save xlsx")
	}
	return nil
}

func exportHeader(dims []metrics.Dimension) []string {
	header := make([]string, 0, len(dims)+len(metricColumns))
	for _, d := range dims {
		header = append(header, string(d))
	}
	return append(header, metricColumns...)
}

// exportRow maps an AggregateRow to ordered CSV cells. Undefined ratios map
// to empty strings.
func exportRow(row metrics.AggregateRow) []string {
	cells := make([]string, 0, len(row.Key)+len(metricColumns))
	cells = append(cells, row.Key...)
	cells = append(cells,
		fmt.Sprintf("%d", row.CampaignCount),
		fmt.Sprintf("%.2f", row.AvgCost),
		fmt.Sprintf("%d", row.TotalImpressions),
		fmt.Sprintf("%d", row.TotalClicks),
		fmt.Sprintf("%d", row.TotalSignups),
		csvRatio(row.CTRPct),
		csvRatio(row.SignupRatePct),
		csvRatio(row.CostPerSignup),
		csvRatio(row.CostPerClick),
	)
	return cells
}

func csvRatio(r metrics.Ratio) string {
	v, err := r.Value()
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%.2f", v)
}
