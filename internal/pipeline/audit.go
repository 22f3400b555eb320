package pipeline

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/JonMunkholm/vaxecon/internal/core"
)

// AuditColumn is the downstream-only field whose absence after the joins
// signals a join miss.
const AuditColumn = "HDICountry"

// sampleKeys caps how many unmatched keys are printed per step.
const sampleKeys = 10

// Audit summarizes data quality after the joins.
type Audit struct {
	Steps       []JoinStats
	MissingRows int // joined rows with no AuditColumn value
	FinalRows   int
}

// CountMissing returns the number of rows whose column is missing. A column
// that does not exist counts every row.
func CountMissing(t *core.Table, col string) int {
	n := 0
	for _, r := range t.Rows {
		if !t.Get(r, col).Valid() {
			n++
		}
	}
	return n
}

// NewAudit builds the audit for a joined table.
func NewAudit(joined *core.Table, steps []JoinStats) Audit {
	return Audit{
		Steps:       steps,
		MissingRows: CountMissing(joined, AuditColumn),
		FinalRows:   joined.Len(),
	}
}

// Log writes the row-count table and any join-miss diagnostics.
func (a Audit) Log(logger *slog.Logger) {
	for _, s := range a.Steps {
		logger.Info("join step",
			"step", s.Step,
			"left_rows", s.LeftRows,
			"right_rows", s.RightRows,
			"matched", s.Matched,
			"dropped", s.Dropped(),
			"left_missing_key", s.LeftMissing,
		)
		if len(s.UnmatchedKeys) > 0 {
			logger.Debug("join step unmatched keys",
				"step", s.Step,
				"count", len(s.UnmatchedKeys),
				"sample", sample(s.UnmatchedKeys),
			)
		}
		if len(s.DuplicateKeys) > 0 {
			logger.Warn("join step duplicate right keys",
				"step", s.Step,
				"keys", strings.Join(s.DuplicateKeys, ","),
			)
		}
	}
	if a.MissingRows > 0 {
		logger.Warn("join miss detected", "column", AuditColumn, "rows", a.MissingRows)
	}
}

// Table renders the row-count table as fixed-width text.
func (a Audit) Table() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-12s %8s %8s %8s %8s\n", "step", "left", "right", "matched", "dropped")
	for _, s := range a.Steps {
		fmt.Fprintf(&b, "%-12s %8d %8d %8d %8d\n", s.Step, s.LeftRows, s.RightRows, s.Matched, s.Dropped())
	}
	fmt.Fprintf(&b, "%-12s %8d\n", "final", a.FinalRows)
	return b.String()
}

func sample(keys []string) string {
	if len(keys) > sampleKeys {
		return strings.Join(keys[:sampleKeys], ",") + ",..."
	}
	return strings.Join(keys, ",")
}
