// Package source loads points from CSV, xlsx, and SQLite files.
package source

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/verte-zerg/pointprep/internal/model"
)

// ErrUnsupportedFormat indicates a file extension no loader handles.
var ErrUnsupportedFormat = errors.New("unsupported input format")

// DefaultInput returns the default column mapping.
func DefaultInput() model.InputConfig {
	return model.InputConfig{
		XColumn:     "x",
		YColumn:     "y",
		LabelColumn: "label",
		XType:       model.XTypeAuto,
		DateFormat:  "2006-01-02",
		Table:       "points",
	}
}

// RowError reports a row that could not be converted into a point.
type RowError struct {
	Path string
	Row  int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s: row %d: %v", e.Path, e.Row, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Load reads all points from path, choosing the loader by file extension.
func Load(ctx context.Context, path string, cfg model.InputConfig) ([]model.Point, error) {
	cfg = withDefaults(cfg)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(path, ',', cfg)
	case ".tsv":
		return LoadCSV(path, '\t', cfg)
	case ".xlsx":
		return LoadXLSX(path, cfg)
	case ".db", ".sqlite", ".sqlite3":
		return LoadSQLite(ctx, path, cfg)
	default:
		return nil, fmt.Errorf("%w: %s (expected .csv, .tsv, .xlsx, .db, .sqlite)", ErrUnsupportedFormat, path)
	}
}

func withDefaults(cfg model.InputConfig) model.InputConfig {
	def := DefaultInput()
	if cfg.XColumn == "" {
		cfg.XColumn = def.XColumn
	}
	if cfg.YColumn == "" {
		cfg.YColumn = def.YColumn
	}
	if cfg.LabelColumn == "" {
		cfg.LabelColumn = def.LabelColumn
	}
	if cfg.XType == "" {
		cfg.XType = def.XType
	}
	if cfg.DateFormat == "" {
		cfg.DateFormat = def.DateFormat
	}
	if cfg.Table == "" {
		cfg.Table = def.Table
	}
	return cfg
}

// ParseXType validates an x type name.
func ParseXType(s string) (model.XType, error) {
	switch t := model.XType(strings.ToLower(strings.TrimSpace(s))); t {
	case "":
		return model.XTypeAuto, nil
	case model.XTypeAuto, model.XTypeNumber, model.XTypeString, model.XTypeDate:
		return t, nil
	default:
		return "", fmt.Errorf("unknown x type %q (must be auto, number, string, or date)", s)
	}
}

// ParseKey converts a raw cell into a key. Auto mode tries a number, then a
// date in dateFormat, and otherwise keeps the text.
func ParseKey(raw string, xtype model.XType, dateFormat string) (model.Key, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return model.Key{}, fmt.Errorf("empty x value")
	}
	switch xtype {
	case model.XTypeString:
		return model.StringKey(raw), nil
	case model.XTypeNumber:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || !isFinite(v) {
			return model.Key{}, fmt.Errorf("invalid numeric x %q", raw)
		}
		return model.NumberKey(v), nil
	case model.XTypeDate:
		t, err := time.ParseInLocation(dateFormat, raw, time.Local)
		if err != nil {
			return model.Key{}, fmt.Errorf("invalid date x %q (format %s): %w", raw, dateFormat, err)
		}
		return model.DateKey(t), nil
	default:
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			if !isFinite(v) {
				return model.Key{}, fmt.Errorf("non-finite numeric x %q", raw)
			}
			return model.NumberKey(v), nil
		}
		if t, err := time.ParseInLocation(dateFormat, raw, time.Local); err == nil {
			return model.DateKey(t), nil
		}
		return model.StringKey(raw), nil
	}
}

// ParseValue converts a raw cell into a y value.
func ParseValue(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || !isFinite(v) {
		return 0, fmt.Errorf("invalid y value %q", raw)
	}
	return v, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// columns holds header positions; label is -1 when absent.
type columns struct {
	x, y, label int
}

func findColumns(header []string, cfg model.InputConfig) (columns, error) {
	cols := columns{x: -1, y: -1, label: -1}
	for i, h := range header {
		h = strings.TrimSpace(h)
		switch {
		case strings.EqualFold(h, cfg.XColumn):
			cols.x = i
		case strings.EqualFold(h, cfg.YColumn):
			cols.y = i
		case cfg.LabelColumn != "" && strings.EqualFold(h, cfg.LabelColumn):
			cols.label = i
		}
	}
	if cols.x < 0 {
		return cols, fmt.Errorf("x column %q not found in header %v", cfg.XColumn, header)
	}
	if cols.y < 0 {
		return cols, fmt.Errorf("y column %q not found in header %v", cfg.YColumn, header)
	}
	return cols, nil
}

func cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return record[idx]
}

// pointFromRecord builds a point from text cells.
func pointFromRecord(record []string, cols columns, cfg model.InputConfig) (model.Point, error) {
	x, err := ParseKey(cell(record, cols.x), cfg.XType, cfg.DateFormat)
	if err != nil {
		return model.Point{}, err
	}
	y, err := ParseValue(cell(record, cols.y))
	if err != nil {
		return model.Point{}, err
	}
	return model.Point{
		X:     x,
		Y:     y,
		Label: strings.TrimSpace(cell(record, cols.label)),
	}, nil
}

func isBlank(record []string) bool {
	for _, c := range record {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
