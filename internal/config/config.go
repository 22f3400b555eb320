// Package config provides centralized configuration for a pipeline run.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import "path/filepath"

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Input    InputConfig
	Output   OutputConfig
	Resolver ResolverConfig
	Logging  LoggingConfig
}

// InputConfig locates the six source files.
type InputConfig struct {
	// DataDir is the directory relative file names are resolved against (default: .)
	DataDir string `env:"PIPELINE_DATA_DIR" default:"."`

	VaccinationFile string `env:"PIPELINE_VACCINATION_FILE" default:"vaccination-data.csv"`
	CovidFile       string `env:"PIPELINE_COVID_FILE" default:"WHO-COVID-19-global-data.csv"`
	CountryFile     string `env:"PIPELINE_COUNTRY_FILE" default:"WDICountry.csv"`
	GDPFile         string `env:"PIPELINE_GDP_FILE" default:"c235b7d1-5b9f-48fe-ac64-babb9ca06872_Data.csv"`
	HDIFile         string `env:"PIPELINE_HDI_FILE" default:"2020_statistical_annex_all.csv"`
	PopulationFile  string `env:"PIPELINE_POPULATION_FILE" default:"API_SP.POP.TOTL_DS2_en_csv_v2_3731322.csv"`

	// PopulationHeaderOffset is the number of preamble rows before the
	// population header (default: 4, the World Bank bulk download layout)
	PopulationHeaderOffset int `env:"PIPELINE_POPULATION_HEADER_OFFSET" default:"4"`
}

// OutputConfig holds output locations.
type OutputConfig struct {
	// CSVPath is the joined table (default: PKJoinedData.csv)
	CSVPath string `env:"PIPELINE_OUTPUT_CSV" default:"PKJoinedData.csv"`

	// ReportPath is the regression summary text file (default: PKAnalysisOutput.txt)
	ReportPath string `env:"PIPELINE_REPORT_PATH" default:"PKAnalysisOutput.txt"`

	// PlotPath is the scatterplot PNG; empty disables rendering
	PlotPath string `env:"PIPELINE_PLOT_PATH"`
}

// ResolverConfig holds country name resolution settings.
type ResolverConfig struct {
	// CountriesFile overrides the embedded reference list (TOML)
	CountriesFile string `env:"RESOLVER_COUNTRIES_FILE"`

	// CacheSize is the LRU size for resolved names (default: 1024)
	CacheSize int `env:"RESOLVER_CACHE_SIZE" default:"1024"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Path resolves a file name against DataDir. Absolute names are returned as-is.
func (c *InputConfig) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

// Files maps source registry keys to resolved paths.
func (c *InputConfig) Files() map[string]string {
	return map[string]string{
		"vaccination": c.Path(c.VaccinationFile),
		"covid":       c.Path(c.CovidFile),
		"country":     c.Path(c.CountryFile),
		"gdp":         c.Path(c.GDPFile),
		"hdi":         c.Path(c.HDIFile),
		"population":  c.Path(c.PopulationFile),
	}
}
