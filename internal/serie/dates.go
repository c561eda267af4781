package serie

import (
	"fmt"
	"strings"
	"time"

	"github.com/verte-zerg/pointprep/internal/model"
)

// MaxFillDays bounds the number of days gap-filling may produce.
const MaxFillDays = 36600

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
}

// dateOf reads k as a calendar date. Strings without a zone are local time.
func dateOf(k model.Key) (time.Time, error) {
	if t, ok := k.Time(); ok {
		return t, nil
	}
	s, ok := k.Text()
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %s key %q", ErrNotDate, k.Kind(), k.String())
	}
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrNotDate, s)
}

// civilDay maps t to its calendar day in loc, anchored at UTC midnight so
// day arithmetic never meets a DST transition.
func civilDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dayKey(day time.Time) string {
	return day.Format("2006-01-02")
}

// dayStart returns the first wall-clock hour of day in loc. Zones that start
// DST at midnight have no 00:00 on that day.
func dayStart(day time.Time, loc *time.Location) time.Time {
	y, m, d := day.Date()
	for h := 0; h < 24; h++ {
		t := time.Date(y, m, d, h, 0, 0, 0, loc)
		if ty, tm, td := t.Date(); ty == y && tm == m && td == d {
			return t
		}
	}
	return time.Date(y, m, d, 12, 0, 0, 0, loc)
}

// fillDates returns one entry per calendar day between the earliest and the
// latest point. Existing points stay as they are; missing days get a zero point.
func fillDates(points []model.Point) ([]model.Point, error) {
	if len(points) == 0 {
		return points, nil
	}
	days := make([]time.Time, len(points))
	var loc *time.Location
	for i, p := range points {
		t, err := dateOf(p.X)
		if err != nil {
			return nil, NewDataError("fill", i, err)
		}
		if loc == nil {
			loc = t.Location()
		}
		days[i] = civilDay(t, loc)
	}

	first, last := days[0], days[0]
	byDay := make(map[string][]int, len(days))
	for i, d := range days {
		if d.Before(first) {
			first = d
		}
		if d.After(last) {
			last = d
		}
		byDay[dayKey(d)] = append(byDay[dayKey(d)], i)
	}

	span := int(last.Sub(first).Hours()/24) + 1
	if span > MaxFillDays {
		return nil, NewDataError("fill", 0, fmt.Errorf("%w: more than %d days between %s and %s",
			ErrSpanTooLarge, MaxFillDays, dayKey(first), dayKey(last)))
	}

	out := make([]model.Point, 0, span+len(points)-len(byDay))
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		idxs, ok := byDay[dayKey(d)]
		if !ok {
			out = append(out, model.Point{X: model.DateKey(dayStart(d, loc)), Y: 0, Filled: true})
			continue
		}
		for _, i := range idxs {
			out = append(out, points[i])
		}
	}
	return out, nil
}
