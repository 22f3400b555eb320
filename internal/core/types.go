// Package core provides the data model and ingestion primitives for the
// country join pipeline. This package has no knowledge of specific sources.
package core

import (
	"fmt"
	"math"
	"strconv"

	"github.com/jackc/pgx/v5/pgtype"
)

// FieldType represents the expected data type for a CSV field.
type FieldType int

const (
	FieldText FieldType = iota
	FieldNumeric
	FieldDate
)

// FieldSpec maps one source column onto one canonical column.
type FieldSpec struct {
	Name       string              // Column header name in the source file
	Column     string              // Canonical column name after cleaning
	Type       FieldType           // Target type for coercion
	Normalizer func(string) string // Optional transformation applied before coercion
}

// SourceInfo contains descriptive information about an input source.
type SourceInfo struct {
	Key          string // Unique identifier: "vaccination"
	Label        string // Display name: "WHO vaccination coverage"
	File         string // Default file name inside the data directory
	HeaderOffset int    // Physical lines to skip before the header row
}

// CleanFunc runs the source-specific steps that follow column selection.
// It may return the same table or a new one.
type CleanFunc func(t *Table, env CleanEnv) (*Table, error)

// SourceDefinition contains everything needed to turn one raw file into a
// cleaned table.
type SourceDefinition struct {
	Info       SourceInfo
	FieldSpecs []FieldSpec
	Clean      CleanFunc
}

// Columns returns the canonical column names in field order.
func (d SourceDefinition) Columns() []string {
	cols := make([]string, len(d.FieldSpecs))
	for i, spec := range d.FieldSpecs {
		cols[i] = spec.Column
	}
	return cols
}

// HeaderIndex maps column names (lowercase) to their position in the CSV row.
type HeaderIndex map[string]int

// ValueKind tells which of the nullable payloads a Value carries.
type ValueKind uint8

const (
	KindText ValueKind = iota
	KindNumber
	KindDate
)

// Value is a single nullable cell. Missing data is always Valid=false on the
// payload matching Kind; there is no sentinel value.
type Value struct {
	Kind  ValueKind
	Text  pgtype.Text
	Float pgtype.Float8
	Date  pgtype.Date
}

// TextValue builds a text cell; empty strings become missing.
func TextValue(s string) Value {
	return Value{Kind: KindText, Text: ToText(s)}
}

// NumberValue builds a valid numeric cell. NaN and Inf become missing.
func NumberValue(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return MissingNumber()
	}
	return Value{Kind: KindNumber, Float: pgtype.Float8{Float64: f, Valid: true}}
}

// MissingNumber returns a numeric cell with no value.
func MissingNumber() Value {
	return Value{Kind: KindNumber}
}

// MissingText returns a text cell with no value.
func MissingText() Value {
	return Value{Kind: KindText}
}

// Valid reports whether the cell holds a value.
func (v Value) Valid() bool {
	switch v.Kind {
	case KindNumber:
		return v.Float.Valid
	case KindDate:
		return v.Date.Valid
	default:
		return v.Text.Valid
	}
}

// Float64 returns the numeric payload and whether it is present.
func (v Value) Float64() (float64, bool) {
	if v.Kind != KindNumber || !v.Float.Valid {
		return 0, false
	}
	return v.Float.Float64, true
}

// String formats the cell for CSV output. Missing cells format as "".
func (v Value) String() string {
	if !v.Valid() {
		return ""
	}
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Float.Float64, 'f', -1, 64)
	case KindDate:
		return v.Date.Time.Format("2006-01-02")
	default:
		return v.Text.String
	}
}

// Row is one record aligned with its table's Columns.
type Row []Value

// Table is an ordered sequence of rows sharing one column list.
type Table struct {
	Name    string
	Columns []string
	Rows    []Row
}

// NewTable creates an empty table with the given columns.
func NewTable(name string, columns []string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Name: name, Columns: cols}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Index returns the position of a column, or -1.
func (t *Table) Index(col string) int {
	for i, c := range t.Columns {
		if c == col {
			return i
		}
	}
	return -1
}

// Has reports whether the column exists.
func (t *Table) Has(col string) bool {
	return t.Index(col) >= 0
}

// Get returns the cell for a column, or a missing text cell when the column
// does not exist.
func (t *Table) Get(r Row, col string) Value {
	i := t.Index(col)
	if i < 0 || i >= len(r) {
		return MissingText()
	}
	return r[i]
}

// Float returns the numeric value of a column and whether it is present.
func (t *Table) Float(r Row, col string) (float64, bool) {
	return t.Get(r, col).Float64()
}

// Text returns the text value of a column and whether it is present.
func (t *Table) Text(r Row, col string) (string, bool) {
	v := t.Get(r, col)
	if !v.Valid() {
		return "", false
	}
	return v.String(), true
}

// Append adds a row. The row must match the column count.
func (t *Table) Append(r Row) error {
	if len(r) != len(t.Columns) {
		return fmt.Errorf("table %s: row has %d values, expected %d", t.Name, len(r), len(t.Columns))
	}
	t.Rows = append(t.Rows, r)
	return nil
}

// AddColumn appends a column computed from each row.
func (t *Table) AddColumn(name string, compute func(Row) Value) error {
	if t.Has(name) {
		return fmt.Errorf("table %s: column %q already exists", t.Name, name)
	}
	for i, r := range t.Rows {
		t.Rows[i] = append(r, compute(r))
	}
	t.Columns = append(t.Columns, name)
	return nil
}

// SetColumn overwrites an existing column in place.
func (t *Table) SetColumn(name string, compute func(Row) Value) error {
	idx := t.Index(name)
	if idx < 0 {
		return fmt.Errorf("table %s: column %q not found", t.Name, name)
	}
	for _, r := range t.Rows {
		r[idx] = compute(r)
	}
	return nil
}

// DropColumns removes the named columns. Unknown names are ignored.
func (t *Table) DropColumns(names ...string) {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	keep := make([]int, 0, len(t.Columns))
	cols := make([]string, 0, len(t.Columns))
	for i, c := range t.Columns {
		if !drop[c] {
			keep = append(keep, i)
			cols = append(cols, c)
		}
	}
	t.project(keep, cols)
}

// MoveToFront reorders columns so the named ones come first, in the given
// order. Unknown names are ignored.
func (t *Table) MoveToFront(names ...string) {
	keep := make([]int, 0, len(t.Columns))
	cols := make([]string, 0, len(t.Columns))
	front := make(map[int]bool, len(names))
	for _, n := range names {
		if i := t.Index(n); i >= 0 && !front[i] {
			front[i] = true
			keep = append(keep, i)
			cols = append(cols, n)
		}
	}
	for i, c := range t.Columns {
		if !front[i] {
			keep = append(keep, i)
			cols = append(cols, c)
		}
	}
	t.project(keep, cols)
}

func (t *Table) project(idx []int, cols []string) {
	for ri, r := range t.Rows {
		out := make(Row, len(idx))
		for j, i := range idx {
			out[j] = r[i]
		}
		t.Rows[ri] = out
	}
	t.Columns = cols
}

// Filter keeps rows for which keep returns true, preserving order.
func (t *Table) Filter(keep func(Row) bool) {
	out := t.Rows[:0]
	for _, r := range t.Rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	t.Rows = out
}
