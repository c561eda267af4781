package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/verte-zerg/pointprep/internal/model"
)

// LoadCSV reads points from a delimited file with a header row.
func LoadCSV(path string, delimiter rune, cfg model.InputConfig) ([]model.Point, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only input.
			_ = cerr
		}
	}()
	points, err := ReadCSV(file, delimiter, withDefaults(cfg))
	if err != nil {
		var rowErr *RowError
		if errors.As(err, &rowErr) {
			rowErr.Path = path
		}
		return nil, err
	}
	return points, nil
}

// ReadCSV reads points from r. Blank lines are skipped.
func ReadCSV(r io.Reader, delimiter rune, cfg model.InputConfig) ([]model.Point, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("csv input is empty")
		}
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	cols, err := findColumns(header, cfg)
	if err != nil {
		return nil, err
	}

	var points []model.Point
	row := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		row++
		if err != nil {
			return nil, &RowError{Path: "csv", Row: row, Err: err}
		}
		if isBlank(record) {
			continue
		}
		p, err := pointFromRecord(record, cols, cfg)
		if err != nil {
			return nil, &RowError{Path: "csv", Row: row, Err: err}
		}
		points = append(points, p)
	}
	return points, nil
}
