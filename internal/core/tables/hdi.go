package tables

import (
	"fmt"

	"github.com/JonMunkholm/vaxecon/internal/core"
)

// HDIPlaceholder is the literal the statistical annex prints for countries
// that are ranked-less but still listed.
const HDIPlaceholder = ".."

func init() {
	registerHDI()
}

func registerHDI() {
	core.Register(core.SourceDefinition{
		Info: core.SourceInfo{
			Key:   HDI,
			Label: "UNDP HDI statistical annex",
			File:  "2020_statistical_annex_all.csv",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "HDI rank", Column: "HDIRank", Type: core.FieldNumeric},
			{Name: "Country", Column: "HDICountry", Type: core.FieldText, Normalizer: NormalizeName},
			// Kept as text until the placeholder filter has run.
			{Name: "Human Development Index (HDI) Value", Column: "HDIValue", Type: core.FieldText},
		},
		Clean: cleanHDI,
	})
}

// cleanHDI keeps ranked rows followed by placeholder rows, coerces the index
// value, and appends HDIISO3 resolved from the free-text country name.
func cleanHDI(t *core.Table, env core.CleanEnv) (*core.Table, error) {
	if env.Resolver == nil {
		return nil, fmt.Errorf("hdi: no country resolver configured")
	}

	var ranked, placeholder []core.Row
	for _, r := range t.Rows {
		_, hasRank := t.Float(r, "HDIRank")
		value, _ := t.Text(r, "HDIValue")
		switch {
		case hasRank:
			ranked = append(ranked, r)
		case value == HDIPlaceholder:
			placeholder = append(placeholder, r)
		}
	}
	t.Rows = append(ranked, placeholder...)

	if err := t.SetColumn("HDIValue", func(r core.Row) core.Value {
		s, _ := t.Text(r, "HDIValue")
		return core.Coerce(s, core.FieldNumeric)
	}); err != nil {
		return nil, err
	}

	var fuzzy, unresolved int
	err := t.AddColumn("HDIISO3", func(r core.Row) core.Value {
		name, ok := t.Text(r, "HDICountry")
		if !ok {
			unresolved++
			return core.MissingText()
		}
		iso3, exact := env.Resolver.Resolve(name)
		if iso3 == "" {
			unresolved++
			env.Log().Debug("hdi country unresolved", "name", name)
			return core.MissingText()
		}
		if !exact {
			fuzzy++
			env.Log().Debug("hdi country fuzzy match", "name", name, "iso3", iso3)
		}
		return core.TextValue(iso3)
	})
	if err != nil {
		return nil, err
	}

	env.Log().Info("hdi cleaned",
		"ranked", len(ranked),
		"placeholder", len(placeholder),
		"fuzzy_matches", fuzzy,
		"unresolved", unresolved,
	)

	return t, nil
}
