// Package models defines data structures and domain types.
package models

import (
	"database/sql/driver"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the on-disk and display format of every date in the dataset.
const DateLayout = "2006-01-02"

// Float is a numeric cell that may be missing.
type Float struct {
	Float64 float64
	Valid   bool
}

// Some returns a present value.
func Some(v float64) Float {
	return Float{Float64: v, Valid: true}
}

// Missing returns an absent value.
func Missing() Float {
	return Float{}
}

// UnmarshalCSV parses a CSV cell. Empty cells and NaN spellings load as missing.
func (f *Float) UnmarshalCSV(s string) error {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "nan", "null", "na", "n/a":
		*f = Missing()
		return nil
	}

	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return fmt.Errorf("invalid number %q: %w", s, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		*f = Missing()
		return nil
	}
	*f = Some(v)
	return nil
}

// Value implements driver.Valuer so missing cells are stored as NULL.
func (f Float) Value() (driver.Value, error) {
	if !f.Valid {
		return nil, nil
	}
	return f.Float64, nil
}

// Scan implements sql.Scanner.
func (f *Float) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*f = Missing()
	case float64:
		*f = Some(v)
	case int64:
		*f = Some(float64(v))
	default:
		return fmt.Errorf("cannot scan %T into Float", src)
	}
	return nil
}

// Div returns f/d, missing when either side is missing or d is zero.
func (f Float) Div(d Float) Float {
	if !f.Valid || !d.Valid || d.Float64 == 0 {
		return Missing()
	}
	return Some(f.Float64 / d.Float64)
}

// Scale multiplies a present value by k.
func (f Float) Scale(k float64) Float {
	if !f.Valid {
		return f
	}
	return Some(f.Float64 * k)
}

// String renders the value or "-" when missing.
func (f Float) String() string {
	if !f.Valid {
		return "-"
	}
	return strconv.FormatFloat(f.Float64, 'f', -1, 64)
}

// Date is a calendar day parsed from DateLayout.
type Date struct {
	time.Time
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{Time: t}, nil
}

// MustDate is ParseDate for literals; it panics on malformed input.
func MustDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// UnmarshalCSV parses a CSV date cell.
func (d *Date) UnmarshalCSV(s string) error {
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// String formats the date using DateLayout.
func (d Date) String() string {
	return d.Format(DateLayout)
}

// Value implements driver.Valuer; dates are stored as sortable text.
func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

// Scan implements sql.Scanner.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return d.UnmarshalCSV(v)
	case []byte:
		return d.UnmarshalCSV(string(v))
	case time.Time:
		d.Time = v
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}
