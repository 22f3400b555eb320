package resolve

import (
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
)

//go:embed countries.toml
var defaultCountries []byte

// Country is one reference entry.
type Country struct {
	ISO3    string   `toml:"iso3"`
	Name    string   `toml:"name"`
	Aliases []string `toml:"aliases"`
}

type countryFile struct {
	Country []Country `toml:"country"`
}

// DefaultCountries returns the embedded reference list.
func DefaultCountries() ([]Country, error) {
	return parseCountries(defaultCountries)
}

// LoadCountries reads a reference list in the same TOML layout as the
// embedded one.
func LoadCountries(r io.Reader) ([]Country, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read countries: %w", err)
	}
	return parseCountries(data)
}

// LoadCountriesFile is LoadCountries for a path. An empty path returns the
// embedded list.
func LoadCountriesFile(path string) ([]Country, error) {
	if path == "" {
		return DefaultCountries()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open countries: %w", err)
	}
	defer f.Close()
	return LoadCountries(f)
}

func parseCountries(data []byte) ([]Country, error) {
	var cf countryFile
	if err := toml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse countries: %w", err)
	}
	for i, c := range cf.Country {
		if len(c.ISO3) != 3 || c.Name == "" {
			return nil, fmt.Errorf("parse countries: entry %d: iso3 and name are required", i)
		}
	}
	return cf.Country, nil
}
