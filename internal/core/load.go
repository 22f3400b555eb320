package core

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// FileAccessError reports an input file that could not be opened or parsed.
// It is fatal: the pipeline never continues with a partial set of sources.
type FileAccessError struct {
	Path string
	Op   string // "open", "parse", "header"
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error {
	return e.Err
}

// ErrEmptyFile is wrapped by FileAccessError when no header row is found.
var ErrEmptyFile = errors.New("empty file")

// LoadResult describes one loaded file.
type LoadResult struct {
	Table     *Table
	BytesRead int64
}

// LoadTable reads a CSV file into a table whose columns are exactly the
// file's header row. headerOffset physical lines, blank ones included, are
// skipped before the header. Every cell is loaded as text; empty cells are missing.
func LoadTable(path string, headerOffset int) (*LoadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileAccessError{Path: path, Op: "open", Err: err}
	}
	defer f.Close()

	counter := WrapInput(f)
	t, err := ReadTable(counter, path, headerOffset)
	if err != nil {
		return nil, err
	}

	return &LoadResult{Table: t, BytesRead: counter.BytesRead}, nil
}

// ReadTable parses CSV from r. name is used for the table name and errors.
func ReadTable(r io.Reader, name string, headerOffset int) (*Table, error) {
	br := bufio.NewReader(r)
	for i := 0; i < headerOffset; i++ {
		if _, err := br.ReadString('\n'); err != nil {
			if errors.Is(err, io.EOF) {
				err = ErrEmptyFile
			}
			return nil, &FileAccessError{Path: name, Op: "header", Err: err}
		}
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = ErrEmptyFile
		}
		return nil, &FileAccessError{Path: name, Op: "header", Err: err}
	}

	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = CleanCell(h)
	}
	t := NewTable(name, cols)

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &FileAccessError{Path: name, Op: "parse", Err: err}
		}

		row := make(Row, len(cols))
		for i := range cols {
			if i < len(record) {
				row[i] = TextValue(record[i])
			} else {
				row[i] = MissingText()
			}
		}
		t.Rows = append(t.Rows, row)
	}

	return t, nil
}
