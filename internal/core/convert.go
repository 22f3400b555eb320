package core

// convert.go provides coercion from raw CSV cells to nullable values.
//
// These functions handle the messy reality of published statistical extracts:
//   - Placeholder markers such as ".." or "n.a." in numeric columns
//   - Thousands separators in numbers
//   - Multiple date formats (ISO, US, EU)
//   - Common CSV artifacts (BOM, surrounding quotes, Excel formula prefixes)
//
// All To* functions return pgtype values with Valid=false for empty or
// invalid input. They never fail.

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// numericRegex validates that a string is a valid numeric format after cleanup.
// Matches integers, decimals, and scientific notation.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// dateLayouts are tried in order; the first successful parse wins.
var dateLayouts = []string{
	"2006-01-02", "2006/01/02", "2006-01-02T15:04:05Z07:00", "2006-01-02 15:04:05",
	"1/2/2006", "01/02/2006", "2 Jan 2006", "Jan 2, 2006",
	"20060102",
}

// ToText converts a string to pgtype.Text.
// Returns invalid if the string is empty or only whitespace.
func ToText(s string) pgtype.Text {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: s, Valid: true}
}

// ToFloat converts a string to pgtype.Float8.
// Thousands separators are removed; anything else that is not a plain
// number (including the ".." placeholder) is invalid.
func ToFloat(s string) pgtype.Float8 {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Float8{Valid: false}
	}

	s = strings.ReplaceAll(s, ",", "")

	if !numericRegex.MatchString(s) {
		return pgtype.Float8{Valid: false}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return pgtype.Float8{Valid: false}
	}
	return pgtype.Float8{Float64: f, Valid: true}
}

// ToDate converts a string to pgtype.Date.
func ToDate(s string) pgtype.Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Date{Valid: false}
	}

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			y, m, d := t.Date()
			return pgtype.Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Valid: true}
		}
	}

	return pgtype.Date{Valid: false}
}

// IsNumeric reports whether a cell coerces to a number.
func IsNumeric(s string) bool {
	return ToFloat(s).Valid
}

// Coerce converts a raw cell into a Value of the requested type.
func Coerce(raw string, ft FieldType) Value {
	switch ft {
	case FieldNumeric:
		return Value{Kind: KindNumber, Float: ToFloat(raw)}
	case FieldDate:
		return Value{Kind: KindDate, Date: ToDate(raw)}
	default:
		return TextValue(raw)
	}
}

// MakeHeaderIndex creates a HeaderIndex from a CSV header row.
// Keys are lowercased for case-insensitive matching. When a header name
// repeats, the first occurrence wins.
func MakeHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, h := range header {
		key := strings.ToLower(CleanCell(h))
		if _, dup := idx[key]; dup {
			continue
		}
		idx[key] = i
	}
	return idx
}

// CleanCell removes common CSV artifacts from a cell value:
// - Trims whitespace and a leading UTF-8 BOM
// - Removes Excel formula prefix (="...")
// - Removes surrounding quotes
func CleanCell(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	}

	s = strings.Trim(s, `"`)

	return strings.TrimSpace(s)
}
