package tables

import "github.com/JonMunkholm/vaxecon/internal/core"

// World Bank sources: country metadata, GDP (DataBank extract) and
// population (bulk indicator download).

func init() {
	registerCountry()
	registerGDP()
	registerPopulation()
}

func registerCountry() {
	core.Register(core.SourceDefinition{
		Info: core.SourceInfo{
			Key:   Country,
			Label: "WDI country metadata",
			File:  "WDICountry.csv",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "Country Code", Column: "ISO3", Type: core.FieldText, Normalizer: NormalizeCode},
			{Name: "Short Name", Column: "ShortName", Type: core.FieldText},
			{Name: "Table Name", Column: "TableName", Type: core.FieldText},
			{Name: "Long Name", Column: "LongName", Type: core.FieldText},
			{Name: "2-alpha code", Column: "ISO2", Type: core.FieldText, Normalizer: NormalizeCode},
			{Name: "Region", Column: "Region", Type: core.FieldText},
			{Name: "Income Group", Column: "IncomeGroup", Type: core.FieldText},
		},
	})
}

func registerGDP() {
	core.Register(core.SourceDefinition{
		Info: core.SourceInfo{
			Key:   GDP,
			Label: "WDI GDP (current US$)",
			File:  "c235b7d1-5b9f-48fe-ac64-babb9ca06872_Data.csv",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "Country Name", Column: "Country3", Type: core.FieldText},
			{Name: "Country Code", Column: "ISO3", Type: core.FieldText, Normalizer: NormalizeCode},
			{Name: PrevYear + " [YR" + PrevYear + "]", Column: "GDP" + PrevYear, Type: core.FieldNumeric},
			{Name: Year + " [YR" + Year + "]", Column: "GDP" + Year, Type: core.FieldNumeric},
		},
	})
}

func registerPopulation() {
	core.Register(core.SourceDefinition{
		Info: core.SourceInfo{
			Key:          Population,
			Label:        "WDI total population",
			File:         "API_SP.POP.TOTL_DS2_en_csv_v2_3731322.csv",
			HeaderOffset: 4,
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "Country Name", Column: "Country4", Type: core.FieldText},
			{Name: "Country Code", Column: "ISO3", Type: core.FieldText, Normalizer: NormalizeCode},
			{Name: PrevYear, Column: "Pop" + PrevYear, Type: core.FieldNumeric},
			{Name: Year, Column: "Pop" + Year, Type: core.FieldNumeric},
		},
	})
}
