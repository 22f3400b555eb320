package config

import (
	"fmt"
	"os"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Load reads configuration from environment variables.
// It applies defaults for unset values and validates the result.
// Returns an error if required values are missing or validation fails.
func Load() (*Config, error) {
	return LoadFrom(os.LookupEnv)
}

// LoadFrom is Load with an explicit environment lookup.
func LoadFrom(lookup func(string) (string, bool)) (*Config, error) {
	cfg := &Config{}

	if err := loadStruct(reflect.ValueOf(cfg).Elem(), lookup); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// loadStruct recursively populates struct fields from environment variables.
func loadStruct(v reflect.Value, lookup func(string) (string, bool)) error {
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldVal := v.Field(i)

		if !fieldVal.CanSet() {
			continue
		}

		if field.Type.Kind() == reflect.Struct {
			if err := loadStruct(fieldVal, lookup); err != nil {
				return err
			}
			continue
		}

		envName := field.Tag.Get("env")
		if envName == "" {
			continue
		}

		value, _ := lookup(envName)
		value = strings.TrimSpace(value)
		if value == "" {
			if field.Tag.Get("required") == "true" {
				return fmt.Errorf("required environment variable %s is not set", envName)
			}
			value = field.Tag.Get("default")
		}
		if value == "" {
			continue
		}

		if err := setField(fieldVal, value); err != nil {
			return fmt.Errorf("invalid value for %s=%q: %w", envName, value, err)
		}
	}

	return nil
}

// setField sets a reflect.Value from a string based on its type.
func setField(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int64:
		i, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer: %w", err)
		}
		field.SetInt(i)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean: %w", err)
		}
		field.SetBool(b)

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	// Input validation
	if c.Input.DataDir == "" {
		errs = append(errs, "PIPELINE_DATA_DIR must not be empty")
	}
	files := map[string]string{
		"PIPELINE_VACCINATION_FILE": c.Input.VaccinationFile,
		"PIPELINE_COVID_FILE":       c.Input.CovidFile,
		"PIPELINE_COUNTRY_FILE":     c.Input.CountryFile,
		"PIPELINE_GDP_FILE":         c.Input.GDPFile,
		"PIPELINE_HDI_FILE":         c.Input.HDIFile,
		"PIPELINE_POPULATION_FILE":  c.Input.PopulationFile,
	}
	for _, name := range sortedKeys(files) {
		if files[name] == "" {
			errs = append(errs, name+" must not be empty")
		}
	}
	if c.Input.PopulationHeaderOffset < 0 {
		errs = append(errs, "PIPELINE_POPULATION_HEADER_OFFSET must be non-negative")
	}

	// Output validation
	if c.Output.CSVPath == "" {
		errs = append(errs, "PIPELINE_OUTPUT_CSV must not be empty")
	}
	if c.Output.ReportPath == "" {
		errs = append(errs, "PIPELINE_REPORT_PATH must not be empty")
	}
	if c.Output.CSVPath != "" && c.Output.CSVPath == c.Output.ReportPath {
		errs = append(errs, "PIPELINE_OUTPUT_CSV and PIPELINE_REPORT_PATH must differ")
	}

	// Resolver validation
	if c.Resolver.CacheSize <= 0 {
		errs = append(errs, "RESOLVER_CACHE_SIZE must be positive")
	}

	// Logging validation
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// String returns a one-line representation of the config for logging.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Config{")
	b.WriteString(fmt.Sprintf("Input: {DataDir: %q, PopulationHeaderOffset: %d}, ",
		c.Input.DataDir, c.Input.PopulationHeaderOffset))
	b.WriteString(fmt.Sprintf("Output: {CSV: %q, Report: %q, Plot: %q}, ",
		c.Output.CSVPath, c.Output.ReportPath, c.Output.PlotPath))
	b.WriteString(fmt.Sprintf("Resolver: {CountriesFile: %q, CacheSize: %d}, ",
		c.Resolver.CountriesFile, c.Resolver.CacheSize))
	b.WriteString(fmt.Sprintf("Logging: {Level: %q, Format: %q}",
		c.Logging.Level, c.Logging.Format))
	b.WriteString("}")
	return b.String()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
