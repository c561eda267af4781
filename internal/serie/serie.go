// Package serie prepares x/y point data for charting.
//
// A Serie buffers points in arrival order and applies its transformation
// pipeline on every call to Get:
//
//	gap-filling -> grouping -> cumulative -> sorting
//
// Each step runs only when its option is enabled. The buffer itself is never
// modified by Get, so reading twice yields the same result.
//
// A Serie is not safe for concurrent use.
package serie

import (
	"slices"

	"github.com/verte-zerg/pointprep/internal/model"
)

// Config holds the construction input of a Serie.
type Config struct {
	Name    string
	Options Options
}

// Result is the finalized output of a Serie.
type Result struct {
	Name   string        `json:"name"`
	Points []model.Point `json:"points"`
}

// Serie is a named, ordered point container.
type Serie struct {
	name    string
	options Options
	points  []model.Point
}

// New validates cfg and returns an empty Serie. Any non-empty name is
// accepted; the direction is normalized to ASC or DESC.
func New(cfg Config) (*Serie, error) {
	if cfg.Name == "" {
		return nil, NewConfigurationError("name", ErrMissingName)
	}
	opts := cfg.Options
	direction, err := ParseDirection(string(opts.Direction))
	if err != nil {
		return nil, err
	}
	opts.Direction = direction
	return &Serie{
		name:    cfg.Name,
		options: opts,
	}, nil
}

// Name returns the serie name.
func (s *Serie) Name() string {
	return s.name
}

// Options returns the configured options.
func (s *Serie) Options() Options {
	return s.options
}

// Len returns the number of ingested points.
func (s *Serie) Len() int {
	return len(s.points)
}

// SetDataPoint appends p to the serie.
func (s *Serie) SetDataPoint(p model.Point) error {
	if p.X.IsZero() {
		return NewDataError("ingest", len(s.points), ErrMissingX)
	}
	s.points = append(s.points, p)
	return nil
}

// WithOptions returns a new Serie with the same name and a copy of the points.
func (s *Serie) WithOptions(opts Options) (*Serie, error) {
	next, err := New(Config{Name: s.name, Options: opts})
	if err != nil {
		return nil, err
	}
	next.points = slices.Clone(s.points)
	return next, nil
}

// Get runs the pipeline over a copy of the buffered points.
func (s *Serie) Get() (Result, error) {
	points := slices.Clone(s.points)
	if points == nil {
		points = []model.Point{}
	}
	var err error
	if s.options.FillNullDateValues {
		if points, err = fillDates(points); err != nil {
			return Result{}, err
		}
	}
	if s.options.Grouped {
		if points, err = group(points); err != nil {
			return Result{}, err
		}
	}
	if s.options.Cumulative {
		if err = accumulate(points); err != nil {
			return Result{}, err
		}
	}
	if s.options.Sort {
		if points, err = sortPoints(points, s.options.Order, s.options.descending()); err != nil {
			return Result{}, err
		}
	}
	return Result{
		Name:   s.name,
		Points: points,
	}, nil
}
