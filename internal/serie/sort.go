package serie

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/verte-zerg/pointprep/internal/model"
)

type sortEntry struct {
	point model.Point
	num   float64
	text  string
}

// numericOf coerces k to a number. Dates become Unix milliseconds.
func numericOf(k model.Key) (float64, error) {
	switch k.Kind() {
	case model.KeyNumber:
		v, _ := k.Number()
		if math.IsNaN(v) {
			return 0, fmt.Errorf("%w: x=NaN", ErrNotNumeric)
		}
		return v, nil
	case model.KeyDate:
		t, _ := k.Time()
		return float64(t.UnixMilli()), nil
	case model.KeyString:
		s, _ := k.Text()
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || math.IsNaN(v) {
			return 0, fmt.Errorf("%w: x=%q", ErrNotNumeric, s)
		}
		return v, nil
	default:
		return 0, ErrMissingX
	}
}

// sortPoints computes one sort key per point, then orders them stably.
func sortPoints(points []model.Point, order SortOrder, desc bool) ([]model.Point, error) {
	entries := make([]sortEntry, len(points))
	for i, p := range points {
		entries[i].point = p
		switch order.kind {
		case orderAlpha, orderCollated:
			entries[i].text = p.X.String()
		case orderDate:
			t, err := dateOf(p.X)
			if err != nil {
				return nil, NewDataError("sort", i, err)
			}
			entries[i].num = float64(t.UnixMicro())
		case orderCustom:
			rank := order.rank(p)
			if math.IsNaN(rank) {
				return nil, NewDataError("sort", i, fmt.Errorf("%w: rank of x=%q", ErrNotNumeric, p.X.String()))
			}
			entries[i].num = rank
		default:
			v, err := numericOf(p.X)
			if err != nil {
				return nil, NewDataError("sort", i, err)
			}
			entries[i].num = v
		}
	}

	var less func(a, b sortEntry) bool
	switch order.kind {
	case orderAlpha:
		less = func(a, b sortEntry) bool {
			return strings.Compare(a.text, b.text) < 0
		}
	case orderCollated:
		col := collate.New(language.Und)
		less = func(a, b sortEntry) bool {
			return col.CompareString(a.text, b.text) < 0
		}
	default:
		less = func(a, b sortEntry) bool {
			return a.num < b.num
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if desc {
			return less(entries[j], entries[i])
		}
		return less(entries[i], entries[j])
	})

	out := make([]model.Point, len(entries))
	for i, e := range entries {
		out[i] = e.point
	}
	return out, nil
}
