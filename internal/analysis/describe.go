package analysis

import (
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/JonMunkholm/vaxecon/internal/core"
)

// DescribeColumn is the column summarized after every run.
const DescribeColumn = "VaxFullPer100"

// Description holds summary statistics of one numeric column. Missing
// cells are excluded; with no values every statistic is NaN.
type Description struct {
	Column string
	Count  int
	Mean   float64
	Std    float64 // sample standard deviation
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
}

// Describe summarizes a numeric column.
func Describe(t *core.Table, col string) (Description, error) {
	if !t.Has(col) {
		return Description{}, &core.MissingColumnsError{Source: t.Name, Missing: []string{col}}
	}

	var data stats.Float64Data
	for _, r := range t.Rows {
		if v, ok := t.Float(r, col); ok {
			data = append(data, v)
		}
	}

	d := Description{Column: col, Count: len(data)}
	nan := math.NaN()
	d.Mean, d.Std, d.Min, d.Q1, d.Median, d.Q3, d.Max = nan, nan, nan, nan, nan, nan, nan
	if len(data) == 0 {
		return d, nil
	}

	d.Mean, _ = stats.Mean(data)
	d.Min, _ = stats.Min(data)
	d.Max, _ = stats.Max(data)
	if len(data) > 1 {
		d.Std, _ = stats.StandardDeviationSample(data)
	}

	sorted := append([]float64(nil), data...)
	sort.Float64s(sorted)
	d.Q1 = quantile(sorted, 0.25)
	d.Median = quantile(sorted, 0.50)
	d.Q3 = quantile(sorted, 0.75)

	return d, nil
}

// quantile interpolates linearly between the closest ranks at p*(n-1).
func quantile(sorted []float64, p float64) float64 {
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (pos-float64(lo))*(sorted[hi]-sorted[lo])
}

// Log writes the description as one structured entry.
func (d Description) Log(logger *slog.Logger) {
	logger.Info("column summary",
		"column", d.Column,
		"count", d.Count,
		"mean", d.Mean,
		"std", d.Std,
		"min", d.Min,
		"25%", d.Q1,
		"50%", d.Median,
		"75%", d.Q3,
		"max", d.Max,
	)
}

func (d Description) String() string {
	return fmt.Sprintf(
		"%s: count=%d mean=%.6g std=%.6g min=%.6g 25%%=%.6g 50%%=%.6g 75%%=%.6g max=%.6g",
		d.Column, d.Count, d.Mean, d.Std, d.Min, d.Q1, d.Median, d.Q3, d.Max,
	)
}
