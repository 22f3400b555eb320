package analysis

import (
	"errors"

	"github.com/JonMunkholm/vaxecon/internal/core"
)

// Spec names one regression of the battery.
type Spec struct {
	Y string
	X string
}

// Battery is the fixed list of regressions, in report order.
var Battery = []Spec{
	{Y: "VaxFullPer100", X: "GDP2020Per100"},
	{Y: "VaxFullPer100", X: "HDIValue"},
	{Y: "Vax1PlusPer100", X: "GDP2020Per100"},
	{Y: "Vax1PlusPer100", X: "HDIValue"},
	{Y: "CasesCumPer100", X: "GDP2020Per100"},
	{Y: "CasesCumPer100", X: "HDIValue"},
	{Y: "DeathsCumPer100", X: "GDP2020Per100"},
	{Y: "DeathsCumPer100", X: "HDIValue"},
	{Y: "VaxFullPer100", X: "NatLogGDP2020Per100"},
}

// Result is one battery entry: a fitted model, or the reason it could not
// be fitted.
type Result struct {
	Spec  Spec
	Model *Model
	Err   error
}

// RunBattery fits every spec against t. Degenerate data is recorded on the
// result; a missing column aborts since it means the table is malformed.
func RunBattery(t *core.Table, battery []Spec) ([]Result, error) {
	results := make([]Result, 0, len(battery))
	for _, s := range battery {
		m, err := Fit(t, s.Y, s.X)
		var colErr *core.MissingColumnsError
		if errors.As(err, &colErr) {
			return nil, err
		}
		results = append(results, Result{Spec: s, Model: m, Err: err})
	}
	return results, nil
}

// Fitted returns the number of results with a model.
func Fitted(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Model != nil {
			n++
		}
	}
	return n
}
