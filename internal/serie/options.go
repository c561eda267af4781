package serie

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/pointprep/internal/model"
)

// RankFunc maps a point to a numeric rank used by custom ordering.
type RankFunc func(model.Point) float64

type orderKind uint8

const (
	orderNumeric orderKind = iota
	orderAlpha
	orderDate
	orderCollated
	orderCustom
)

// SortOrder selects the comparator used when sorting is enabled.
// The zero value is numeric ordering.
type SortOrder struct {
	kind orderKind
	rank RankFunc
}

var (
	// OrderNumeric compares x coerced to a number.
	OrderNumeric = SortOrder{kind: orderNumeric}
	// OrderAlpha compares the string form of x byte by byte.
	OrderAlpha = SortOrder{kind: orderAlpha}
	// OrderDate compares x as calendar dates.
	OrderDate = SortOrder{kind: orderDate}
	// OrderCollated compares the string form of x with the root-locale
	// Unicode collator: case and punctuation weigh less than letters.
	OrderCollated = SortOrder{kind: orderCollated}
)

// OrderCustom orders points by the rank returned by fn.
// A nil fn falls back to numeric ordering.
func OrderCustom(fn RankFunc) SortOrder {
	if fn == nil {
		return OrderNumeric
	}
	return SortOrder{kind: orderCustom, rank: fn}
}

// ParseOrder maps an order name to a SortOrder. Unrecognized names fall
// back to numeric ordering; ok is false in that case.
func ParseOrder(name string) (order SortOrder, ok bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "numeric":
		return OrderNumeric, true
	case "alpha":
		return OrderAlpha, true
	case "date":
		return OrderDate, true
	case "collate":
		return OrderCollated, true
	default:
		return OrderNumeric, false
	}
}

func (o SortOrder) String() string {
	switch o.kind {
	case orderAlpha:
		return "alpha"
	case orderDate:
		return "date"
	case orderCollated:
		return "collate"
	case orderCustom:
		return "custom"
	default:
		return "numeric"
	}
}

// IsCustom reports whether the order uses a rank function.
func (o SortOrder) IsCustom() bool {
	return o.kind == orderCustom
}

// Direction is the sort direction.
type Direction string

const (
	Ascending  Direction = "ASC"
	Descending Direction = "DESC"
)

// ParseDirection accepts ASC or DESC in any case. Empty means ascending.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "ASC":
		return Ascending, nil
	case "DESC":
		return Descending, nil
	default:
		return "", NewConfigurationError("direction", fmt.Errorf("unknown direction %q (must be ASC or DESC)", s))
	}
}

// Options configures the transformation pipeline applied by Get.
// Every option defaults to disabled.
type Options struct {
	FillNullDateValues bool
	Cumulative         bool
	Grouped            bool
	Sort               bool
	Order              SortOrder
	Direction          Direction
}

func (o Options) descending() bool {
	return o.Direction == Descending
}
