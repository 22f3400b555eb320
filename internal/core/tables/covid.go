package tables

import (
	"sort"

	"github.com/JonMunkholm/vaxecon/internal/core"
)

// CovidColumns is the aggregated schema, one row per ISO2 code.
var CovidColumns = []string{
	"ISO2", "Country", "WHORegion", "CasesCum", "DeathsCum", "FirstCaseDate", "FirstDeathDate",
}

func init() {
	registerCovid()
}

func registerCovid() {
	core.Register(core.SourceDefinition{
		Info: core.SourceInfo{
			Key:   Covid,
			Label: "WHO COVID-19 daily counts",
			File:  "WHO-COVID-19-global-data.csv",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "Date_reported", Column: "DateReported", Type: core.FieldDate},
			{Name: "Country_code", Column: "ISO2", Type: core.FieldText, Normalizer: NormalizeCode},
			{Name: "Country", Column: "Country", Type: core.FieldText},
			{Name: "WHO_region", Column: "WHORegion", Type: core.FieldText},
			{Name: "New_cases", Column: "CasesNew", Type: core.FieldNumeric},
			{Name: "Cumulative_cases", Column: "CasesCum", Type: core.FieldNumeric},
			{Name: "New_deaths", Column: "DeathsNew", Type: core.FieldNumeric},
			{Name: "Cumulative_deaths", Column: "DeathsCum", Type: core.FieldNumeric},
		},
		Clean: aggregateCovid,
	})
}

// covidGroup accumulates one country's time series.
type covidGroup struct {
	country, region     core.Value
	cases, deaths       core.Value
	firstCase, firstDie core.Value
}

// aggregateCovid collapses the daily series to one row per ISO2 code.
//
// Cumulative counts take the maximum seen rather than the last reported
// value. The two agree only while the series is non-decreasing; WHO does
// publish downward corrections, so a corrected country keeps its pre-
// correction peak.
func aggregateCovid(t *core.Table, env core.CleanEnv) (*core.Table, error) {
	groups := make(map[string]*covidGroup)
	var skipped int

	for _, r := range t.Rows {
		iso2, ok := t.Text(r, "ISO2")
		if !ok {
			skipped++
			continue
		}
		g, ok := groups[iso2]
		if !ok {
			g = &covidGroup{
				country:   core.MissingText(),
				region:    core.MissingText(),
				cases:     core.MissingNumber(),
				deaths:    core.MissingNumber(),
				firstCase: core.Value{Kind: core.KindDate},
				firstDie:  core.Value{Kind: core.KindDate},
			}
			groups[iso2] = g
		}

		g.country = minText(g.country, t.Get(r, "Country"))
		g.region = minText(g.region, t.Get(r, "WHORegion"))
		g.cases = maxNumber(g.cases, t.Get(r, "CasesCum"))
		g.deaths = maxNumber(g.deaths, t.Get(r, "DeathsCum"))

		date := t.Get(r, "DateReported")
		if v, ok := t.Float(r, "CasesCum"); ok && v > 0 {
			g.firstCase = minDate(g.firstCase, date)
		}
		if v, ok := t.Float(r, "DeathsCum"); ok && v > 0 {
			g.firstDie = minDate(g.firstDie, date)
		}
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := core.NewTable(t.Name, CovidColumns)
	out.Rows = make([]core.Row, 0, len(keys))
	for _, k := range keys {
		g := groups[k]
		out.Rows = append(out.Rows, core.Row{
			core.TextValue(k), g.country, g.region, g.cases, g.deaths, g.firstCase, g.firstDie,
		})
	}

	env.Log().Info("covid aggregated", "daily_rows", t.Len(), "countries", out.Len(), "skipped_no_code", skipped)
	return out, nil
}

func minText(cur, v core.Value) core.Value {
	if !v.Valid() {
		return cur
	}
	if !cur.Valid() || v.Text.String < cur.Text.String {
		return v
	}
	return cur
}

func maxNumber(cur, v core.Value) core.Value {
	f, ok := v.Float64()
	if !ok {
		return cur
	}
	if c, ok := cur.Float64(); !ok || f > c {
		return v
	}
	return cur
}

func minDate(cur, v core.Value) core.Value {
	if v.Kind != core.KindDate || !v.Date.Valid {
		return cur
	}
	if !cur.Date.Valid || v.Date.Time.Before(cur.Date.Time) {
		return v
	}
	return cur
}
