package core

// validation.go asserts that a raw table carries the columns a source
// definition selects, and projects it onto the canonical schema.
//
// Selection is by header name, never by position: when an upstream file
// reorders or renames a column the run stops at load time with the full list
// of missing names instead of quietly reading the wrong data.

import (
	"fmt"
	"strings"
)

// MissingColumnsError lists the expected header names absent from a file.
type MissingColumnsError struct {
	Source  string
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s: missing required columns: %s", e.Source, strings.Join(e.Missing, ", "))
}

// ValidateHeaders validates that every spec'd column exists in the headers.
// Returns a mapping from column name to index, or an error listing missing columns.
func ValidateHeaders(source string, headers []string, specs []FieldSpec) (HeaderIndex, error) {
	idx := MakeHeaderIndex(headers)
	var missing []string

	for _, spec := range specs {
		if _, ok := idx[strings.ToLower(spec.Name)]; !ok {
			missing = append(missing, spec.Name)
		}
	}

	if len(missing) > 0 {
		return nil, &MissingColumnsError{Source: source, Missing: missing}
	}

	return idx, nil
}

// Select projects a raw table (all text cells, columns = file header) onto
// the spec'd columns: renamed to canonical names, in spec order, coerced.
func Select(raw *Table, def SourceDefinition) (*Table, error) {
	idx, err := ValidateHeaders(def.Info.Key, raw.Columns, def.FieldSpecs)
	if err != nil {
		return nil, err
	}

	out := NewTable(def.Info.Key, def.Columns())
	out.Rows = make([]Row, 0, len(raw.Rows))

	for _, r := range raw.Rows {
		row := make(Row, len(def.FieldSpecs))
		for i, spec := range def.FieldSpecs {
			cell := rawCell(r, idx[strings.ToLower(spec.Name)])
			if spec.Normalizer != nil && cell != "" {
				cell = spec.Normalizer(cell)
			}
			row[i] = Coerce(cell, spec.Type)
		}
		out.Rows = append(out.Rows, row)
	}

	return out, nil
}

func rawCell(r Row, pos int) string {
	if pos >= len(r) || !r[pos].Text.Valid {
		return ""
	}
	return CleanCell(r[pos].Text.String)
}

// fieldTypeName returns a human-readable name for a field type.
func fieldTypeName(ft FieldType) string {
	switch ft {
	case FieldText:
		return "text"
	case FieldNumeric:
		return "numeric"
	case FieldDate:
		return "date"
	default:
		return "value"
	}
}

// String implements fmt.Stringer.
func (ft FieldType) String() string {
	return fieldTypeName(ft)
}
