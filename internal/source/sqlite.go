package source

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/verte-zerg/pointprep/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// LoadSQLite reads points from a SQLite database. cfg.Query wins over
// cfg.Table; columns are matched by name.
func LoadSQLite(ctx context.Context, path string, cfg model.InputConfig) ([]model.Point, error) {
	cfg = withDefaults(cfg)
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close; the loader never writes.
			_ = cerr
		}
	}()
	return QueryPoints(ctx, db, pointsQuery(cfg), cfg)
}

func pointsQuery(cfg model.InputConfig) string {
	if q := strings.TrimSpace(cfg.Query); q != "" {
		return q
	}
	return fmt.Sprintf(`SELECT * FROM "%s" ORDER BY rowid`, strings.ReplaceAll(cfg.Table, `"`, `""`))
}

// QueryPoints runs query on db and converts each row into a point.
func QueryPoints(ctx context.Context, db *sql.DB, query string, cfg model.InputConfig) ([]model.Point, error) {
	cfg = withDefaults(cfg)
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query points: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	names, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	cols, err := findColumns(names, cfg)
	if err != nil {
		return nil, err
	}

	var points []model.Point
	row := 0
	for rows.Next() {
		row++
		values := make([]any, len(names))
		ptrs := make([]any, len(names))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		p, err := pointFromValues(values, cols, cfg)
		if err != nil {
			return nil, &RowError{Path: "query", Row: row, Err: err}
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return points, nil
}

func pointFromValues(values []any, cols columns, cfg model.InputConfig) (model.Point, error) {
	var p model.Point
	switch v := values[cols.x].(type) {
	case int64:
		key, err := numericKey(float64(v), cfg.XType)
		if err != nil {
			return p, err
		}
		p.X = key
	case float64:
		key, err := numericKey(v, cfg.XType)
		if err != nil {
			return p, err
		}
		p.X = key
	case time.Time:
		p.X = model.DateKey(v)
	case nil:
		return p, fmt.Errorf("x is NULL")
	default:
		key, err := ParseKey(textOf(v), cfg.XType, cfg.DateFormat)
		if err != nil {
			return p, err
		}
		p.X = key
	}

	switch v := values[cols.y].(type) {
	case int64:
		p.Y = float64(v)
	case float64:
		if !isFinite(v) {
			return p, fmt.Errorf("non-finite y %v", v)
		}
		p.Y = v
	case nil:
		return p, fmt.Errorf("y is NULL")
	default:
		y, err := ParseValue(textOf(v))
		if err != nil {
			return p, err
		}
		p.Y = y
	}

	if cols.label >= 0 && values[cols.label] != nil {
		p.Label = strings.TrimSpace(textOf(values[cols.label]))
	}
	return p, nil
}

// numericKey keeps native numbers numeric unless a string x was requested.
func numericKey(v float64, xtype model.XType) (model.Key, error) {
	if !isFinite(v) {
		return model.Key{}, fmt.Errorf("non-finite numeric x %v", v)
	}
	switch xtype {
	case model.XTypeString:
		return model.StringKey(strconv.FormatFloat(v, 'f', -1, 64)), nil
	case model.XTypeDate:
		return model.Key{}, fmt.Errorf("numeric x %v cannot be read as a date", v)
	default:
		return model.NumberKey(v), nil
	}
}

func textOf(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return fmt.Sprint(t)
	}
}
