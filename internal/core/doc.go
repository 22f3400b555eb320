// Package core provides the data model and ingestion primitives for the
// country join pipeline.
//
// This package knows nothing about individual datasets. It can be used by the
// pipeline, by the command, or by tests without modification.
//
// # Architecture
//
//   - Values: every cell is a [Value], an explicit nullable wrapper over
//     pgtype.Text, pgtype.Float8 or pgtype.Date. Missing data is Valid=false.
//   - Tables: a [Table] is an ordered column list plus rows aligned to it.
//   - Source Definitions: registered via the registry, each input file has
//     field specs (source header name → canonical column) and a Clean step.
//
// # Source Registry
//
// Sources are registered at init time using [Register]:
//
//	core.Register(SourceDefinition{
//	    Info: SourceInfo{Key: "gdp", Label: "GDP", File: "gdp.csv"},
//	    FieldSpecs: []FieldSpec{
//	        {Name: "Country Code", Column: "ISO3", Type: FieldText},
//	        {Name: "2020 [YR2020]", Column: "GDP2020", Type: FieldNumeric},
//	    },
//	})
//
// # Loading
//
// [LoadTable] wraps the file with BOM skipping and UTF-8 sanitization, skips
// the configured header offset, and returns every cell as text. [Select]
// then asserts the spec'd header names exist (failing with
// [MissingColumnsError]) and coerces cells; coercion never fails, bad cells
// become missing.
//
// # Error Handling
//
// Technical errors are mapped to coded messages using [MapError]:
//
//   - FILE001-FILE002: input files
//   - VAL004: missing columns
//   - JOIN001: join schema conflicts
//   - OUT001: outputs
package core
