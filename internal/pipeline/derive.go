package pipeline

import (
	"math"

	"github.com/JonMunkholm/vaxecon/internal/core"
)

// Ratio is a per-100-population column definition.
type Ratio struct {
	Column      string
	Numerator   string
	Denominator string
}

// Per100 lists the normalized columns, in the order they are appended.
var Per100 = []Ratio{
	{Column: "GDP2019Per100", Numerator: "GDP2019", Denominator: "Pop2019"},
	{Column: "GDP2020Per100", Numerator: "GDP2020", Denominator: "Pop2020"},
	{Column: "CasesCumPer100", Numerator: "CasesCum", Denominator: "Pop2020"},
	{Column: "DeathsCumPer100", Numerator: "DeathsCum", Denominator: "Pop2020"},
}

// LogColumn is the natural-log transform appended after the drop step.
const (
	LogColumn = "NatLogGDP2020Per100"
	LogSource = "GDP2020Per100"
)

// DropColumns are removed from the joined table once derived columns exist:
// duplicate name/ID columns and raw counts superseded by per-100 columns.
var DropColumns = []string{
	"DataSource", "TotalVax", "Vax1Plus", "VaxFull", "VaxTypesUsed",
	"VaxTypesNum", "GDP2019", "GDP2020",
	"CasesCum", "DeathsCum", "WHORegion", "ShortName", "TableName",
	"LongName", "Country3", "Country4", "HDIRank", "HDICountry", "Country",
}

// Per100Value returns num / pop * 100, or missing when either input is
// missing or the population is not positive.
func Per100Value(num, pop float64, numOK, popOK bool) core.Value {
	if !numOK || !popOK || pop <= 0 {
		return core.MissingNumber()
	}
	return core.NumberValue(num / pop * 100)
}

// LogValue returns ln(v), or missing when v is missing or not positive.
func LogValue(v float64, ok bool) core.Value {
	if !ok || v <= 0 {
		return core.MissingNumber()
	}
	return core.NumberValue(math.Log(v))
}

// DeriveRatios appends the per-100 columns in Per100 order.
func DeriveRatios(t *core.Table) error {
	for _, ratio := range Per100 {
		ratio := ratio
		err := t.AddColumn(ratio.Column, func(r core.Row) core.Value {
			num, numOK := t.Float(r, ratio.Numerator)
			pop, popOK := t.Float(r, ratio.Denominator)
			return Per100Value(num, pop, numOK, popOK)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// DeriveLog appends LogColumn computed from LogSource.
func DeriveLog(t *core.Table) error {
	return t.AddColumn(LogColumn, func(r core.Row) core.Value {
		return LogValue(t.Float(r, LogSource))
	})
}

// Finalize derives ratios, drops superseded columns, appends the log
// column and moves the join keys to the front.
func Finalize(t *core.Table) error {
	if err := DeriveRatios(t); err != nil {
		return err
	}
	t.DropColumns(DropColumns...)
	if err := DeriveLog(t); err != nil {
		return err
	}
	t.MoveToFront("ISO3", "ISO2")
	return nil
}
