package core

// # Error Codes Reference
//
// Errors that end a run are mapped to a short user-facing message with a
// code, so a failed batch can be diagnosed from the last log line.
//
//	FILE001 - Input unreadable: an input file is missing or cannot be opened
//	          Action: Check PIPELINE_DATA_DIR and the per-source file names
//
//	FILE002 - Invalid CSV: an input file could not be parsed
//	          Action: Re-download the extract; check the header offset
//
//	VAL004  - Missing column: an expected header name is absent
//	          Action: The upstream layout changed; update the source field specs
//
//	JOIN001 - Join schema conflict: two sources produce the same column name
//	          Action: Rename one of the canonical columns
//
//	OUT001  - Output failed: the joined CSV or report could not be written
//	          Action: Check the output directory exists and is writable
//
//	RUN001  - Cancelled: the run was interrupted
//
//	ERR000  - Unexpected error

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// UserError is a coded, human-readable description of a failure.
type UserError struct {
	Code    string
	Message string
	Action  string
	Detail  string
}

func (e UserError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// String returns the full message including action and detail.
func (e UserError) String() string {
	var b strings.Builder
	b.WriteString(e.Error())
	if e.Action != "" {
		b.WriteString(". ")
		b.WriteString(e.Action)
	}
	if e.Detail != "" {
		b.WriteString(" (")
		b.WriteString(e.Detail)
		b.WriteString(")")
	}
	return b.String()
}

// JoinSchemaError reports a non-key column present on both sides of a join.
type JoinSchemaError struct {
	Step    string
	Columns []string
}

func (e *JoinSchemaError) Error() string {
	return fmt.Sprintf("join %s: duplicate columns %s", e.Step, strings.Join(e.Columns, ", "))
}

// OutputError reports a failure writing one of the run's outputs.
type OutputError struct {
	Path string
	Err  error
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *OutputError) Unwrap() error {
	return e.Err
}

// MapError converts an error into a UserError. Typed errors are matched
// first; nil maps to the zero UserError.
func MapError(err error) UserError {
	if err == nil {
		return UserError{}
	}

	var (
		fileErr   *FileAccessError
		colErr    *MissingColumnsError
		joinErr   *JoinSchemaError
		outputErr *OutputError
	)

	switch {
	case errors.As(err, &colErr):
		return UserError{
			Code:    "VAL004",
			Message: "Expected column is missing from " + colErr.Source,
			Action:  "The upstream layout changed; update the source field specs",
			Detail:  strings.Join(colErr.Missing, ", "),
		}
	case errors.As(err, &fileErr):
		if fileErr.Op == "open" {
			return UserError{
				Code:    "FILE001",
				Message: "Input file could not be opened",
				Action:  "Check PIPELINE_DATA_DIR and the per-source file names",
				Detail:  fileErr.Path,
			}
		}
		return UserError{
			Code:    "FILE002",
			Message: "Input file is not a valid CSV",
			Action:  "Re-download the extract and check the header offset",
			Detail:  fileErr.Error(),
		}
	case errors.As(err, &joinErr):
		return UserError{
			Code:    "JOIN001",
			Message: "Two sources produce the same column",
			Action:  "Rename one of the canonical columns",
			Detail:  joinErr.Error(),
		}
	case errors.As(err, &outputErr):
		return UserError{
			Code:    "OUT001",
			Message: "Output could not be written",
			Action:  "Check the output directory exists and is writable",
			Detail:  outputErr.Path,
		}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return UserError{Code: "RUN001", Message: "Run was cancelled"}
	default:
		return UserError{Code: "ERR000", Message: "Unexpected error", Detail: err.Error()}
	}
}
