package source

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/verte-zerg/pointprep/internal/model"
)

// LoadXLSX reads points from a worksheet whose first row is the header.
// An empty cfg.Sheet selects the first sheet.
func LoadXLSX(path string, cfg model.InputConfig) ([]model.Point, error) {
	cfg = withDefaults(cfg)
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close for read-only workbook.
			_ = cerr
		}
	}()

	sheet := cfg.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%s: workbook has no sheets", path)
		}
		sheet = sheets[0]
	}
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("%s: sheet %q not found", path, sheet)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: sheet %q is empty", path, sheet)
	}
	cols, err := findColumns(rows[0], cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	points := make([]model.Point, 0, len(rows)-1)
	for i, record := range rows[1:] {
		if isBlank(record) {
			continue
		}
		p, err := pointFromRecord(record, cols, cfg)
		if err != nil {
			return nil, &RowError{Path: path, Row: i + 2, Err: err}
		}
		points = append(points, p)
	}
	return points, nil
}
