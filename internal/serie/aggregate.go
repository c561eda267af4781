package serie

import (
	"fmt"
	"math"
	"strconv"

	"github.com/verte-zerg/pointprep/internal/model"
)

func checkFinite(stage string, i int, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NewDataError(stage, i, fmt.Errorf("%w: y=%v", ErrNotNumeric, v))
	}
	return nil
}

// groupKey identifies points with exactly equal x.
func groupKey(k model.Key) string {
	switch k.Kind() {
	case model.KeyNumber:
		v, _ := k.Number()
		return "n:" + strconv.FormatFloat(v, 'g', -1, 64)
	case model.KeyDate:
		t, _ := k.Time()
		return "d:" + strconv.FormatInt(t.UnixNano(), 10)
	default:
		return "s:" + k.String()
	}
}

// group merges points sharing the same x into one point per distinct x, in
// first-seen order. Labels are dropped.
func group(points []model.Point) ([]model.Point, error) {
	index := make(map[string]int, len(points))
	out := make([]model.Point, 0, len(points))
	for i, p := range points {
		if err := checkFinite("group", i, p.Y); err != nil {
			return nil, err
		}
		key := groupKey(p.X)
		pos, ok := index[key]
		if !ok {
			index[key] = len(out)
			out = append(out, model.Point{X: p.X, Y: p.Y, Filled: p.Filled, Merged: 1})
			continue
		}
		out[pos].Y += p.Y
		out[pos].Merged++
		out[pos].Filled = out[pos].Filled && p.Filled
	}
	return out, nil
}

// accumulate replaces each y with the running sum in the current order.
func accumulate(points []model.Point) error {
	for i, p := range points {
		if err := checkFinite("cumulative", i, p.Y); err != nil {
			return err
		}
	}
	var sum float64
	for i := range points {
		sum += points[i].Y
		points[i].Y = sum
	}
	return nil
}
