package tables

import "github.com/JonMunkholm/vaxecon/internal/core"

func init() {
	registerVaccination()
}

func registerVaccination() {
	core.Register(core.SourceDefinition{
		Info: core.SourceInfo{
			Key:   Vaccination,
			Label: "WHO vaccination coverage",
			File:  "vaccination-data.csv",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "COUNTRY", Column: "Country2", Type: core.FieldText, Normalizer: NormalizeName},
			{Name: "ISO3", Column: "ISO3", Type: core.FieldText, Normalizer: NormalizeCode},
			{Name: "WHO_REGION", Column: "WHORegion2", Type: core.FieldText},
			{Name: "DATA_SOURCE", Column: "DataSource", Type: core.FieldText},
			{Name: "DATE_UPDATED", Column: "DateUpdated", Type: core.FieldDate},
			{Name: "TOTAL_VACCINATIONS", Column: "TotalVax", Type: core.FieldNumeric},
			{Name: "PERSONS_VACCINATED_1PLUS_DOSE", Column: "Vax1Plus", Type: core.FieldNumeric},
			{Name: "TOTAL_VACCINATIONS_PER100", Column: "VaxPer100", Type: core.FieldNumeric},
			{Name: "PERSONS_VACCINATED_1PLUS_DOSE_PER100", Column: "Vax1PlusPer100", Type: core.FieldNumeric},
			{Name: "PERSONS_FULLY_VACCINATED", Column: "VaxFull", Type: core.FieldNumeric},
			{Name: "PERSONS_FULLY_VACCINATED_PER100", Column: "VaxFullPer100", Type: core.FieldNumeric},
			{Name: "VACCINES_USED", Column: "VaxTypesUsed", Type: core.FieldText},
			{Name: "FIRST_VACCINE_DATE", Column: "VaxFirstDate", Type: core.FieldDate},
			{Name: "NUMBER_VACCINES_TYPES_USED", Column: "VaxTypesNum", Type: core.FieldNumeric},
		},
	})
}
