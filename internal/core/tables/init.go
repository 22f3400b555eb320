// Package tables registers all input source definitions with the core registry.
// Import this package to ensure all sources are registered.
package tables

// Registry keys, shared with the pipeline's join plan.
const (
	Vaccination = "vaccination"
	Covid       = "covid"
	Country     = "country"
	GDP         = "gdp"
	HDI         = "hdi"
	Population  = "population"
)

// Years carried through from the World Bank extracts.
const (
	PrevYear = "2019"
	Year     = "2020"
)
