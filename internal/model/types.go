// Package model defines shared data structures.
package model

import (
	"encoding/json"
	"strconv"
	"time"
)

// KeyKind tags the dynamic type held by a Key.
type KeyKind uint8

const (
	// KeyNone marks an absent x value.
	KeyNone KeyKind = iota
	// KeyNumber holds a float64.
	KeyNumber
	// KeyString holds free text.
	KeyString
	// KeyDate holds a time.Time.
	KeyDate
)

func (k KeyKind) String() string {
	switch k {
	case KeyNumber:
		return "number"
	case KeyString:
		return "string"
	case KeyDate:
		return "date"
	default:
		return "none"
	}
}

// Key is the x value of a point: a number, a string, or a date.
type Key struct {
	kind KeyKind
	num  float64
	str  string
	t    time.Time
}

// NumberKey returns a numeric key.
func NumberKey(v float64) Key {
	return Key{kind: KeyNumber, num: v}
}

// StringKey returns a string key.
func StringKey(s string) Key {
	return Key{kind: KeyString, str: s}
}

// DateKey returns a date key.
func DateKey(t time.Time) Key {
	return Key{kind: KeyDate, t: t}
}

// Kind reports which value the key holds.
func (k Key) Kind() KeyKind {
	return k.kind
}

// IsZero reports whether the key is absent.
func (k Key) IsZero() bool {
	return k.kind == KeyNone
}

// Number returns the numeric value and whether the key is numeric.
func (k Key) Number() (float64, bool) {
	return k.num, k.kind == KeyNumber
}

// Text returns the string value and whether the key is a string.
func (k Key) Text() (string, bool) {
	return k.str, k.kind == KeyString
}

// Time returns the date value and whether the key is a date.
func (k Key) Time() (time.Time, bool) {
	return k.t, k.kind == KeyDate
}

// String returns the alphanumeric form of the key.
func (k Key) String() string {
	switch k.kind {
	case KeyNumber:
		return strconv.FormatFloat(k.num, 'f', -1, 64)
	case KeyString:
		return k.str
	case KeyDate:
		return k.t.Format(time.RFC3339)
	default:
		return ""
	}
}

// Equal reports exact equality: same kind and same value.
func (k Key) Equal(o Key) bool {
	if k.kind != o.kind {
		return false
	}
	switch k.kind {
	case KeyNumber:
		return k.num == o.num
	case KeyString:
		return k.str == o.str
	case KeyDate:
		return k.t.Equal(o.t)
	default:
		return true
	}
}

// MarshalJSON encodes numbers as JSON numbers and everything else as strings.
func (k Key) MarshalJSON() ([]byte, error) {
	switch k.kind {
	case KeyNumber:
		return json.Marshal(k.num)
	case KeyNone:
		return []byte("null"), nil
	default:
		return json.Marshal(k.String())
	}
}

// Point is a single x/y pair, optionally labeled.
type Point struct {
	X     Key     `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label,omitempty"`
	// Filled marks points synthesized by gap-filling.
	Filled bool `json:"filled,omitempty"`
	// Merged counts the raw points folded into this one by grouping.
	Merged int `json:"merged,omitempty"`
}

// XType forces how raw x cells are interpreted by loaders.
type XType string

const (
	XTypeAuto   XType = "auto"
	XTypeNumber XType = "number"
	XTypeString XType = "string"
	XTypeDate   XType = "date"
)

// InputConfig maps source columns to point fields.
type InputConfig struct {
	XColumn     string
	YColumn     string
	LabelColumn string
	XType       XType
	DateFormat  string
	Sheet       string
	Table       string
	Query       string
}

// Config defines the settings used to build and print a serie.
type Config struct {
	Name       string
	FillDates  bool
	Cumulative bool
	Grouped    bool
	Sort       bool
	Order      string
	Direction  string
	Format     string
	Pretty     bool
	Summary    bool
	Input      InputConfig
}
