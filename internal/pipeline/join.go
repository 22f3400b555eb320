package pipeline

import (
	"fmt"
	"sort"

	"github.com/JonMunkholm/vaxecon/internal/core"
	"github.com/JonMunkholm/vaxecon/internal/core/tables"
)

// JoinStats describes one inner-join step for the audit table.
type JoinStats struct {
	Step          string
	LeftRows      int
	RightRows     int
	Matched       int      // rows in the joined output
	LeftMissing   int      // left rows with no key
	UnmatchedKeys []string // left keys absent on the right, sorted
	DuplicateKeys []string // right keys appearing more than once, sorted
}

// Dropped returns the number of left rows that did not survive the join.
func (s JoinStats) Dropped() int {
	d := s.LeftRows - s.Matched
	if d < 0 {
		return 0
	}
	return d
}

// InnerJoin joins right onto left where left[leftKey] == right[rightKey].
//
// Output rows follow left order; a left row matching several right rows
// emits one row per match in right order. Rows whose key is missing on
// either side never match. The output carries every left column followed by
// every right column except rightKey. A non-key column name present on both
// sides returns a *core.JoinSchemaError.
func InnerJoin(step string, left, right *core.Table, leftKey, rightKey string) (*core.Table, JoinStats, error) {
	stats := JoinStats{Step: step, LeftRows: left.Len(), RightRows: right.Len()}

	li := left.Index(leftKey)
	ri := right.Index(rightKey)
	if li < 0 || ri < 0 {
		var missing []string
		if li < 0 {
			missing = append(missing, left.Name+"."+leftKey)
		}
		if ri < 0 {
			missing = append(missing, right.Name+"."+rightKey)
		}
		return nil, stats, &core.MissingColumnsError{Source: "join " + step, Missing: missing}
	}

	var (
		rightCols []int
		conflicts []string
	)
	cols := append([]string{}, left.Columns...)
	for i, c := range right.Columns {
		if i == ri {
			continue
		}
		if left.Has(c) {
			conflicts = append(conflicts, c)
			continue
		}
		rightCols = append(rightCols, i)
		cols = append(cols, c)
	}
	if len(conflicts) > 0 {
		return nil, stats, &core.JoinSchemaError{Step: step, Columns: conflicts}
	}

	byKey := make(map[string][]core.Row, right.Len())
	for _, r := range right.Rows {
		k, ok := keyOf(r, ri)
		if !ok {
			continue
		}
		byKey[k] = append(byKey[k], r)
	}
	for k, rows := range byKey {
		if len(rows) > 1 {
			stats.DuplicateKeys = append(stats.DuplicateKeys, k)
		}
	}
	sort.Strings(stats.DuplicateKeys)

	out := core.NewTable(left.Name, cols)
	unmatched := make(map[string]bool)
	for _, l := range left.Rows {
		k, ok := keyOf(l, li)
		if !ok {
			stats.LeftMissing++
			continue
		}
		matches, ok := byKey[k]
		if !ok {
			unmatched[k] = true
			continue
		}
		for _, r := range matches {
			row := make(core.Row, 0, len(cols))
			row = append(row, l...)
			for _, i := range rightCols {
				row = append(row, r[i])
			}
			out.Rows = append(out.Rows, row)
		}
	}

	for k := range unmatched {
		stats.UnmatchedKeys = append(stats.UnmatchedKeys, k)
	}
	sort.Strings(stats.UnmatchedKeys)
	stats.Matched = out.Len()

	return out, stats, nil
}

func keyOf(r core.Row, i int) (string, bool) {
	if i >= len(r) || !r[i].Valid() {
		return "", false
	}
	return r[i].String(), true
}

// JoinStep is one entry of the join plan.
type JoinStep struct {
	Source   string // registry key of the right-hand table
	LeftKey  string
	RightKey string
}

// JoinPlan is the fixed sequence of joins onto the vaccination spine.
var JoinPlan = []JoinStep{
	{Source: tables.Country, LeftKey: "ISO3", RightKey: "ISO3"},
	{Source: tables.GDP, LeftKey: "ISO3", RightKey: "ISO3"},
	{Source: tables.Population, LeftKey: "ISO3", RightKey: "ISO3"},
	{Source: tables.HDI, LeftKey: "ISO3", RightKey: "HDIISO3"},
	{Source: tables.Covid, LeftKey: "ISO2", RightKey: "ISO2"},
}

// JoinAll runs the plan starting from spine. sources maps registry keys to
// cleaned tables; each is consumed once.
func JoinAll(spine *core.Table, sources map[string]*core.Table, plan []JoinStep) (*core.Table, []JoinStats, error) {
	joined := spine
	all := make([]JoinStats, 0, len(plan))

	for _, step := range plan {
		right, ok := sources[step.Source]
		if !ok {
			return nil, all, fmt.Errorf("join plan: no cleaned table for %s", step.Source)
		}
		next, stats, err := InnerJoin(step.Source, joined, right, step.LeftKey, step.RightKey)
		if err != nil {
			return nil, all, err
		}
		delete(sources, step.Source)
		all = append(all, stats)
		joined = next
	}

	return joined, all, nil
}
